package booking

import (
	"math/rand"
	"testing"

	"cinemate/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_GridShape(t *testing.T) {
	gen, err := NewGenerator(DefaultRows, DefaultSeatsPerRow, 0, nil)
	require.NoError(t, err)

	m := gen.Generate()
	seats := m.Seats()
	require.Len(t, seats, 80)
	assert.Equal(t, 80, m.Len())

	assert.Equal(t, "A1", seats[0].ID())
	assert.Equal(t, "A10", seats[9].ID())
	assert.Equal(t, "B1", seats[10].ID())
	assert.Equal(t, "H10", seats[79].ID())

	for i, seat := range seats {
		assert.Equal(t, rune('A'+i/10), seat.Row)
		assert.Equal(t, i%10+1, seat.Number)
		assert.Equal(t, entity.SeatStatusAvailable, seat.Status)
	}
}

func TestGenerator_ReservedRatioBounds(t *testing.T) {
	none, err := NewGenerator(8, 10, 0, rand.NewSource(1))
	require.NoError(t, err)
	for _, seat := range none.Generate().Seats() {
		assert.Equal(t, entity.SeatStatusAvailable, seat.Status)
	}

	all, err := NewGenerator(8, 10, 1, rand.NewSource(1))
	require.NoError(t, err)
	for _, seat := range all.Generate().Seats() {
		assert.Equal(t, entity.SeatStatusReserved, seat.Status)
	}
}

func TestGenerator_ReservedFractionIsRoughlyAQuarter(t *testing.T) {
	gen, err := NewGenerator(DefaultRows, DefaultSeatsPerRow, DefaultReservedRatio, rand.NewSource(42))
	require.NoError(t, err)

	total, reserved := 0, 0
	for i := 0; i < 200; i++ {
		for _, seat := range gen.Generate().Seats() {
			total++
			if seat.Status == entity.SeatStatusReserved {
				reserved++
			}
			assert.NotEqual(t, entity.SeatStatusSelected, seat.Status)
		}
	}

	fraction := float64(reserved) / float64(total)
	assert.InDelta(t, 0.25, fraction, 0.03)
}

func TestGenerator_SameSeedSameMap(t *testing.T) {
	a, err := NewGenerator(8, 10, 0.25, rand.NewSource(7))
	require.NoError(t, err)
	b, err := NewGenerator(8, 10, 0.25, rand.NewSource(7))
	require.NoError(t, err)

	assert.Equal(t, a.Generate().Seats(), b.Generate().Seats())
}

func TestNewGenerator_RejectsBadShape(t *testing.T) {
	tests := []struct {
		name         string
		rows, perRow int
		ratio        float64
	}{
		{"no rows", 0, 10, 0.25},
		{"too many rows", 27, 10, 0.25},
		{"no seats per row", 8, 0, 0.25},
		{"negative ratio", 8, 10, -0.1},
		{"ratio above one", 8, 10, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGenerator(tt.rows, tt.perRow, tt.ratio, nil)
			assert.Error(t, err)
			assert.Nil(t, gen)
		})
	}
}

func TestSeatMap_CopiesDoNotAlias(t *testing.T) {
	gen, err := NewGenerator(2, 3, 0, nil)
	require.NoError(t, err)
	m := gen.Generate()

	seats := m.Seats()
	seats[0].Status = entity.SeatStatusSelected

	seat, ok := m.Seat("A1")
	require.True(t, ok)
	assert.Equal(t, entity.SeatStatusAvailable, seat.Status)
	assert.Empty(t, m.Selected())
	assert.NotNil(t, m.Selected())

	_, ok = m.Seat("C1")
	assert.False(t, ok)
}
