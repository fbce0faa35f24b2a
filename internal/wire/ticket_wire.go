package wire

import (
	"cinemate/internal/adaptor"
	"cinemate/internal/data/repository"
	"cinemate/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/tickets", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", ticketHandler.ListTickets)
		r.Get("/{id}", ticketHandler.GetTicket)
	})
}
