package response

import (
	"time"

	"cinemate/internal/data/entity"
)

type TicketResponse struct {
	ID            string    `json:"id"`
	BookingNumber string    `json:"booking_number"`
	UserEmail     string    `json:"user_email"`
	MovieID       int       `json:"movie_id"`
	MovieTitle    string    `json:"movie_title"`
	PosterURL     string    `json:"poster_url"`
	Genre         string    `json:"genre"`
	Duration      string    `json:"duration"`
	CinemaName    string    `json:"cinema_name"`
	Location      string    `json:"location"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Seats         []string  `json:"seats"`
	TotalPrice    string    `json:"total_price"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

func TicketToResponse(ticket entity.Ticket, currency string) TicketResponse {
	seats := make([]string, len(ticket.Seats))
	for i, seat := range ticket.Seats {
		seats[i] = seat.ID()
	}

	return TicketResponse{
		ID:            ticket.ID.String(),
		BookingNumber: ticket.BookingNumber,
		UserEmail:     ticket.UserEmail,
		MovieID:       ticket.MovieID,
		MovieTitle:    ticket.MovieTitle,
		PosterURL:     ticket.PosterURL,
		Genre:         ticket.Genre,
		Duration:      ticket.Duration,
		CinemaName:    ticket.CinemaName,
		Location:      ticket.Location,
		Date:          ticket.Date.Format("2006-01-02"),
		Time:          ticket.Time,
		Seats:         seats,
		TotalPrice:    ticket.TotalPrice.StringFixed(2),
		Currency:      currency,
		CreatedAt:     ticket.CreatedAt,
	}
}

func TicketsToResponse(tickets []entity.Ticket, currency string) []TicketResponse {
	out := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		out[i] = TicketToResponse(t, currency)
	}
	return out
}
