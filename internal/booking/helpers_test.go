package booking

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"cinemate/internal/data/entity"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type identityFunc func(ctx context.Context) (entity.Identity, error)

func (f identityFunc) CurrentIdentity(ctx context.Context) (entity.Identity, error) {
	return f(ctx)
}

type movieFunc func(ctx context.Context, id int) (*entity.MovieMetadata, error)

func (f movieFunc) GetMovieByID(ctx context.Context, id int) (*entity.MovieMetadata, error) {
	return f(ctx, id)
}

type recordingLedger struct {
	mu      sync.Mutex
	tickets []entity.Ticket
}

func (l *recordingLedger) Append(ticket entity.Ticket) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tickets = append(l.tickets, ticket.Clone())
}

func (l *recordingLedger) all() []entity.Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]entity.Ticket(nil), l.tickets...)
}

func signedIn(email string) identityFunc {
	return func(context.Context) (entity.Identity, error) {
		return entity.Identity{Status: entity.AuthStatusAuthenticated, Email: email}, nil
	}
}

func signedOut() identityFunc {
	return func(context.Context) (entity.Identity, error) {
		return entity.Identity{Status: entity.AuthStatusUnauthenticated}, nil
	}
}

func duneMovie() *entity.MovieMetadata {
	return &entity.MovieMetadata{
		ID:             438631,
		Title:          "Dune",
		PosterURL:      "https://image.tmdb.org/t/p/w500/dune.jpg",
		RuntimeMinutes: intPtr(155),
		Genres:         []entity.Genre{{ID: 878, Name: "Sci-Fi"}},
	}
}

func movieOf(movie *entity.MovieMetadata) movieFunc {
	return func(context.Context, int) (*entity.MovieMetadata, error) {
		return movie, nil
	}
}

var testContext = entity.BookingContext{
	MovieID:    438631,
	CinemaName: "Cineplex",
	Date:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	Time:       "20:15",
}

// newTestSession opens a session on an 8x10 map with the given reserved
// ratio. Missing deps default to a signed-in user and Dune.
func newTestSession(t *testing.T, ratio float64, deps Deps) (*Session, *recordingLedger) {
	t.Helper()

	gen, err := NewGenerator(DefaultRows, DefaultSeatsPerRow, ratio, rand.NewSource(3))
	require.NoError(t, err)

	ledger := &recordingLedger{}
	if deps.Ledger == nil {
		deps.Ledger = ledger
	}
	if deps.Identity == nil {
		deps.Identity = signedIn("paul@arrakis.test")
	}
	if deps.Movies == nil {
		deps.Movies = movieOf(duneMovie())
	}

	s := NewSession(testContext, gen, deps, Config{Location: "Deggendorf"}, zap.NewNop())
	t.Cleanup(s.Close)
	return s, ledger
}

func selectSeats(t *testing.T, s *Session, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := s.ToggleSeat(id)
		require.NoError(t, err)
	}
}

func seatIDs(seats []entity.Seat) []string {
	ids := make([]string, len(seats))
	for i, seat := range seats {
		ids[i] = seat.ID()
	}
	return ids
}
