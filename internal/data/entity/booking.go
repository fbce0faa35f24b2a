package entity

import "time"

// BookingContext identifies one showtime a booking session is opened for.
// It is set once when the session is created and never changed.
type BookingContext struct {
	MovieID    int
	CinemaName string
	Date       time.Time // calendar date, time of day ignored
	Time       string    // HH:MM
}
