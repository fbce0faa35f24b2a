package usecase

import (
	"cinemate/internal/data/repository"
	"cinemate/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Booking  BookingService
	Ticket   TicketService
	Movie    MovieService
	Showtime ShowtimeService
}

// NewService wires the services. movies is the metadata source chosen at
// startup (TMDB or the local catalogue, optionally cached).
func NewService(repo *repository.Repository, movies MovieCatalog, config *utils.Config, log *zap.Logger) (*Service, error) {
	bookingSrv, err := NewBookingService(repo, movies, NewSessionIdentity(repo, log), config, log)
	if err != nil {
		return nil, err
	}

	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo.User, log),
		Booking:  bookingSrv,
		Ticket:   NewTicketService(repo, config, log),
		Movie:    NewMovieService(movies, log),
		Showtime: NewShowtimeService(repo, movies, config, log),
	}, nil
}
