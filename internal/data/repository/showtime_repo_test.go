package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestShowtimeRepository_GroupsByCinema(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{rows: [][]any{
		{"CineMax MediaMarkt", "17:30"},
		{"CineMax MediaMarkt", "21:00"},
		{"Sanelite Cinema", "13:00"},
	}}}
	repo := NewShowtimeRepository(db, zap.NewNop())

	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	showtimes, err := repo.FindByMovieAndDate(context.Background(), 438631, date)
	require.NoError(t, err)
	assert.Equal(t, []any{438631, "2025-03-14"}, db.args)

	require.Len(t, showtimes, 2)
	assert.Equal(t, "CineMax MediaMarkt", showtimes[0].CinemaName)
	assert.Equal(t, []string{"17:30", "21:00"}, showtimes[0].Showtimes)
	assert.Equal(t, "Sanelite Cinema", showtimes[1].CinemaName)
	assert.Equal(t, []string{"13:00"}, showtimes[1].Showtimes)
}

func TestShowtimeRepository_Empty(t *testing.T) {
	repo := NewShowtimeRepository(&fakeDB{rows: &fakeRows{}}, zap.NewNop())

	showtimes, err := repo.FindByMovieAndDate(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.NotNil(t, showtimes)
	assert.Empty(t, showtimes)
}

func TestShowtimeRepository_QueryFailure(t *testing.T) {
	boom := errors.New("relation \"schedules\" does not exist")
	repo := NewShowtimeRepository(&fakeDB{queryErr: boom}, zap.NewNop())

	_, err := repo.FindByMovieAndDate(context.Background(), 1, time.Now())
	assert.ErrorIs(t, err, boom)
}

func TestStaticShowtimeRepository_ReturnsCopies(t *testing.T) {
	repo := NewStaticShowtimeRepository(DefaultLineup())

	first, err := repo.FindByMovieAndDate(context.Background(), 1, time.Now())
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, "Lichtspielhaus Deggendorf", first[0].CinemaName)

	first[0].Showtimes[0] = "00:00"
	second, err := repo.FindByMovieAndDate(context.Background(), 2, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "10:30", second[0].Showtimes[0])
}
