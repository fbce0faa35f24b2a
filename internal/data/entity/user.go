package entity

type User struct {
	Base
	Username     string `db:"username"`
	Email        string `db:"email"`
	FullName     string `db:"full_name"`
	PasswordHash string `db:"password"`
	IsActive     bool   `db:"is_active"`
}

type AuthStatus string

const (
	AuthStatusLoading         AuthStatus = "LOADING"
	AuthStatusAuthenticated   AuthStatus = "AUTHENTICATED"
	AuthStatusUnauthenticated AuthStatus = "UNAUTHENTICATED"
)

// Identity is the answer of an identity provider at one point in time.
// Email is set only when Status is AuthStatusAuthenticated.
type Identity struct {
	Status AuthStatus
	Email  string
}
