package adaptor

import (
	"cinemate/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Booking *BookingHandler
	Ticket  *TicketHandler
	Movie   *MovieHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Booking: NewBookingHandler(service.Booking, log),
		Ticket:  NewTicketHandler(service.Ticket, log),
		Movie:   NewMovieHandler(service.Movie, service.Showtime, log),
	}
}
