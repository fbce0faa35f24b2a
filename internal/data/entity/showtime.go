package entity

// CinemaShowtimes lists the start times (HH:MM) one cinema shows a movie on
// a given day.
type CinemaShowtimes struct {
	CinemaName string
	Showtimes  []string
}
