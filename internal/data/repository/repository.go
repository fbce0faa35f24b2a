package repository

import (
	"cinemate/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Movie    MovieRepository
	Showtime ShowtimeRepository
	Ticket   TicketRepository
}

// NewRepository builds the repositories. Showtimes come from the schedules
// table when scheduledShowtimes is set, otherwise from DefaultLineup.
func NewRepository(db database.PgxIface, scheduledShowtimes bool, log *zap.Logger) *Repository {
	showtimes := NewStaticShowtimeRepository(DefaultLineup())
	if scheduledShowtimes {
		showtimes = NewShowtimeRepository(db, log)
	}

	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Movie:    NewMovieRepository(db, log),
		Showtime: showtimes,
		Ticket:   NewTicketRepository(log),
	}
}
