package booking

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"cinemate/internal/data/entity"
)

const (
	DefaultRows          = 8
	DefaultSeatsPerRow   = 10
	DefaultReservedRatio = 0.25

	maxRows = 26
)

// SeatMap is the seat grid of one booking session. It is owned by a single
// Session and is not safe for concurrent use on its own.
type SeatMap struct {
	seats []entity.Seat
	index map[string]int
}

func newSeatMap(seats []entity.Seat) *SeatMap {
	m := &SeatMap{
		seats: seats,
		index: make(map[string]int, len(seats)),
	}
	for i, seat := range seats {
		m.index[seat.ID()] = i
	}
	return m
}

// Len returns the number of seats in the map.
func (m *SeatMap) Len() int {
	return len(m.seats)
}

// Seat returns a copy of the seat with the given id.
func (m *SeatMap) Seat(id string) (entity.Seat, bool) {
	i, ok := m.index[id]
	if !ok {
		return entity.Seat{}, false
	}
	return m.seats[i], true
}

// Seats returns a copy of all seats in row-major order.
func (m *SeatMap) Seats() []entity.Seat {
	return append([]entity.Seat(nil), m.seats...)
}

// Selected returns a copy of the selected seats in row-major order.
func (m *SeatMap) Selected() []entity.Seat {
	selected := make([]entity.Seat, 0)
	for _, seat := range m.seats {
		if seat.Status == entity.SeatStatusSelected {
			selected = append(selected, seat)
		}
	}
	return selected
}

func (m *SeatMap) selectedCount() int {
	n := 0
	for _, seat := range m.seats {
		if seat.Status == entity.SeatStatusSelected {
			n++
		}
	}
	return n
}

// Generator builds fresh seat maps with a random reservation pattern.
type Generator struct {
	rows          int
	seatsPerRow   int
	reservedRatio float64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator validates the grid shape. A nil source seeds from the clock.
func NewGenerator(rows, seatsPerRow int, reservedRatio float64, src rand.Source) (*Generator, error) {
	if rows < 1 || rows > maxRows {
		return nil, fmt.Errorf("rows must be between 1 and %d, got %d", maxRows, rows)
	}
	if seatsPerRow < 1 {
		return nil, fmt.Errorf("seats per row must be positive, got %d", seatsPerRow)
	}
	if reservedRatio < 0 || reservedRatio > 1 {
		return nil, fmt.Errorf("reserved ratio must be within [0, 1], got %v", reservedRatio)
	}
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}

	return &Generator{
		rows:          rows,
		seatsPerRow:   seatsPerRow,
		reservedRatio: reservedRatio,
		rnd:           rand.New(src),
	}, nil
}

// Generate returns a new map of rows x seatsPerRow seats. Each seat is
// independently RESERVED with probability reservedRatio.
func (g *Generator) Generate() *SeatMap {
	g.mu.Lock()
	defer g.mu.Unlock()

	seats := make([]entity.Seat, 0, g.rows*g.seatsPerRow)
	for r := 0; r < g.rows; r++ {
		row := rune('A' + r)
		for n := 1; n <= g.seatsPerRow; n++ {
			status := entity.SeatStatusAvailable
			if g.rnd.Float64() < g.reservedRatio {
				status = entity.SeatStatusReserved
			}
			seats = append(seats, entity.Seat{Row: row, Number: n, Status: status})
		}
	}

	return newSeatMap(seats)
}
