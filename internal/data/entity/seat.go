package entity

import "strconv"

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusReserved  SeatStatus = "RESERVED"
	SeatStatusSelected  SeatStatus = "SELECTED"
)

type Seat struct {
	Row    rune       // A..Z
	Number int        // 1-based
	Status SeatStatus
}

// ID returns the display identifier, e.g. "C11".
func (s Seat) ID() string {
	return string(s.Row) + strconv.Itoa(s.Number)
}
