package response

import (
	"cinemate/internal/booking"
	"cinemate/internal/data/entity"
)

type SeatResponse struct {
	ID     string `json:"id"`
	Row    string `json:"row"`
	Number int    `json:"number"`
	Status string `json:"status"`
}

// SessionResponse mirrors booking.SelectionState. Prices are decimal strings.
type SessionResponse struct {
	SessionID     string         `json:"session_id"`
	MovieID       int            `json:"movie_id"`
	CinemaName    string         `json:"cinema_name"`
	Date          string         `json:"date"`
	Time          string         `json:"time"`
	Phase         string         `json:"phase"`
	Seats         []SeatResponse `json:"seats"`
	SelectedSeats []string       `json:"selected_seats"`
	SelectedCount int            `json:"selected_count"`
	MaxSeats      int            `json:"max_seats"`
	UnitPrice     string         `json:"unit_price"`
	TotalPrice    string         `json:"total_price"`
	Currency      string         `json:"currency"`
	Error         string         `json:"error,omitempty"`
	TicketID      string         `json:"ticket_id,omitempty"`
}

// EventResponse carries one navigation event: "REQUIRE_LOGIN" or a ticket id.
type EventResponse struct {
	Event string `json:"event"`
}

type PurchaseResponse struct {
	Outcome string          `json:"outcome"`
	Event   string          `json:"event,omitempty"`
	Ticket  *TicketResponse `json:"ticket,omitempty"`
}

func SeatToResponse(seat entity.Seat) SeatResponse {
	return SeatResponse{
		ID:     seat.ID(),
		Row:    string(seat.Row),
		Number: seat.Number,
		Status: string(seat.Status),
	}
}

func SessionToResponse(state booking.SelectionState, currency string) SessionResponse {
	seats := make([]SeatResponse, len(state.Seats))
	for i, seat := range state.Seats {
		seats[i] = SeatToResponse(seat)
	}

	selected := make([]string, len(state.Selected))
	for i, seat := range state.Selected {
		selected[i] = seat.ID()
	}

	return SessionResponse{
		SessionID:     state.SessionID,
		MovieID:       state.Context.MovieID,
		CinemaName:    state.Context.CinemaName,
		Date:          state.Context.Date.Format("2006-01-02"),
		Time:          state.Context.Time,
		Phase:         string(state.Phase),
		Seats:         seats,
		SelectedSeats: selected,
		SelectedCount: len(selected),
		MaxSeats:      state.MaxSeats,
		UnitPrice:     state.UnitPrice.StringFixed(2),
		TotalPrice:    state.TotalPrice.StringFixed(2),
		Currency:      currency,
		Error:         state.Error,
		TicketID:      state.TicketID,
	}
}
