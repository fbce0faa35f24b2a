package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"cinemate/internal/data/entity"
	"cinemate/internal/data/repository"
	"cinemate/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
	err   error
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[uuid.UUID]*entity.User)}
}

func (m *memUsers) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.users[id], nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email })
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Username == username })
}

func (m *memUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
	err      error
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]*entity.Session)}
}

func (m *memSessions) Create(_ context.Context, session *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *session
	m.sessions[session.Token.String()] = &s
	return nil
}

func (m *memSessions) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sessions[token]
	if !ok || s.RevokedAt != nil || s.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return s, nil
}

func (m *memSessions) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		now := time.Now()
		s.RevokedAt = &now
	}
	return nil
}

type movieFunc func(ctx context.Context, id int) (*entity.MovieMetadata, error)

func (f movieFunc) GetMovieByID(ctx context.Context, id int) (*entity.MovieMetadata, error) {
	return f(ctx, id)
}

func duneProvider() movieFunc {
	runtime := 155
	return func(context.Context, int) (*entity.MovieMetadata, error) {
		return &entity.MovieMetadata{
			ID:             438631,
			Title:          "Dune",
			RuntimeMinutes: &runtime,
			Genres:         []entity.Genre{{Name: "Sci-Fi"}},
		}, nil
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			MaxSeats:      10,
			SeatPrice:     decimal.RequireFromString("12.00"),
			Currency:      "EUR",
			Rows:          8,
			SeatsPerRow:   10,
			ReservedRatio: 0,
			Location:      "Deggendorf",
		},
		Session: utils.SessionConfig{
			ExpiryHours:        24,
			BookingIdleTimeout: time.Minute,
		},
	}
}

type testEnv struct {
	repo     *repository.Repository
	users    *memUsers
	sessions *memSessions
	config   *utils.Config
	log      *zap.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newMemUsers()
	sessions := newMemSessions()
	log := zap.NewNop()

	return &testEnv{
		repo: &repository.Repository{
			User:    users,
			Session: sessions,
			Ticket:  repository.NewTicketRepository(log),
		},
		users:    users,
		sessions: sessions,
		config:   testConfig(),
		log:      log,
	}
}

// signIn stores an active user with a live session and returns a context
// carrying its token.
func (e *testEnv) signIn(t *testing.T, email string) (context.Context, *entity.User) {
	t.Helper()

	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		Username: email,
		Email:    email,
		IsActive: true,
	}
	_ = e.users.Create(context.Background(), user)

	token := uuid.New()
	_ = e.sessions.Create(context.Background(), &entity.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	return utils.SetTokenContext(context.Background(), token.String()), user
}
