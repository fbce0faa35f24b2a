package wire

import (
	"cinemate/internal/adaptor"
	"cinemate/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// Anyone may select seats. The purchase decides whether a login is
	// needed, so the token is only attached, never enforced.
	r.Route("/api/bookings/sessions", func(r chi.Router) {
		r.Use(middleware.OptionalAuth())

		r.Post("/", bookingHandler.StartSession)
		r.Get("/{id}", bookingHandler.GetSession)
		r.Post("/{id}/seats/{seatId}/toggle", bookingHandler.ToggleSeat)
		r.Post("/{id}/purchase", bookingHandler.Purchase)
		r.Get("/{id}/events", bookingHandler.NextEvent)
		r.Delete("/{id}", bookingHandler.CloseSession)
	})
}
