package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is the record of a completed booking. Seats is an independent copy
// of the selection at purchase time.
type Ticket struct {
	ID            uuid.UUID
	BookingNumber string
	UserEmail     string
	MovieID       int
	MovieTitle    string
	PosterURL     string
	Genre         string
	Duration      string
	CinemaName    string
	Location      string
	Date          time.Time
	Time          string
	Seats         []Seat
	TotalPrice    decimal.Decimal
	CreatedAt     time.Time
}

// Clone returns a copy that shares no slices with t.
func (t Ticket) Clone() Ticket {
	c := t
	c.Seats = append([]Seat(nil), t.Seats...)
	return c
}
