package booking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cinemate/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPurchase_CreatesTicket(t *testing.T) {
	s, ledger := newTestSession(t, 0, Deps{})
	selectSeats(t, s, "C7", "C5", "C6")

	outcome, err := s.RequestPurchase(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeTicketCreated, outcome.Kind)
	require.NotNil(t, outcome.Ticket)

	ticket := outcome.Ticket
	assert.Equal(t, "Dune", ticket.MovieTitle)
	assert.Equal(t, "Sci-Fi", ticket.Genre)
	assert.Equal(t, "2h 35m", ticket.Duration)
	assert.Equal(t, "36.00", ticket.TotalPrice.StringFixed(2))
	assert.Equal(t, []string{"C5", "C6", "C7"}, seatIDs(ticket.Seats))
	assert.Equal(t, "Cineplex", ticket.CinemaName)
	assert.Equal(t, "Deggendorf", ticket.Location)
	assert.Equal(t, "paul@arrakis.test", ticket.UserEmail)
	assert.Equal(t, testContext.Date, ticket.Date)
	assert.Equal(t, "20:15", ticket.Time)

	stored := ledger.all()
	require.Len(t, stored, 1)
	assert.Equal(t, ticket.ID, stored[0].ID)

	event, ok := s.Outbox().Poll()
	require.True(t, ok)
	assert.Equal(t, Event(ticket.ID.String()), event)
	_, ok = s.Outbox().Poll()
	assert.False(t, ok)

	state := s.State()
	assert.Equal(t, PhaseCommitted, state.Phase)
	assert.Equal(t, ticket.ID.String(), state.TicketID)
}

func TestRequestPurchase_LabelsFromMetadata(t *testing.T) {
	movie := &entity.MovieMetadata{
		ID:     1,
		Title:  "Heat",
		Genres: []entity.Genre{{Name: "Action"}, {Name: "Drama"}},
	}
	s, _ := newTestSession(t, 0, Deps{Movies: movieOf(movie)})
	selectSeats(t, s, "A1")

	outcome, err := s.RequestPurchase(context.Background())
	require.NoError(t, err)
	require.NotNil(t, outcome.Ticket)
	assert.Equal(t, "Action, Drama", outcome.Ticket.Genre)
	assert.Equal(t, DurationUnknown, outcome.Ticket.Duration)
	assert.Equal(t, "12.00", outcome.Ticket.TotalPrice.StringFixed(2))
}

func TestRequestPurchase_NoSelection(t *testing.T) {
	var identityCalls atomic.Int32
	identity := identityFunc(func(context.Context) (entity.Identity, error) {
		identityCalls.Add(1)
		return entity.Identity{Status: entity.AuthStatusAuthenticated, Email: "a@b.test"}, nil
	})
	s, ledger := newTestSession(t, 0, Deps{Identity: identity})

	outcome, err := s.RequestPurchase(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoSelection, outcome.Kind)
	assert.Nil(t, outcome.Ticket)

	assert.Zero(t, identityCalls.Load())
	assert.Empty(t, ledger.all())
	assert.Zero(t, s.Outbox().Pending())
	assert.Equal(t, PhaseSelecting, s.State().Phase)
}

func TestRequestPurchase_RequiresLogin(t *testing.T) {
	s, ledger := newTestSession(t, 0, Deps{Identity: signedOut()})
	selectSeats(t, s, "A1", "A2")

	outcome, err := s.RequestPurchase(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeRequireLogin, outcome.Kind)
	assert.Nil(t, outcome.Ticket)
	assert.Empty(t, ledger.all())

	event, ok := s.Outbox().Poll()
	require.True(t, ok)
	assert.Equal(t, EventRequireLogin, event)
	assert.Equal(t, Event("REQUIRE_LOGIN"), event)

	state := s.State()
	assert.Equal(t, PhaseAwaitingLogin, state.Phase)
	assert.Len(t, state.Selected, 2)
}

func TestRequestPurchase_AuthenticatedWithoutEmailRequiresLogin(t *testing.T) {
	identity := identityFunc(func(context.Context) (entity.Identity, error) {
		return entity.Identity{Status: entity.AuthStatusAuthenticated}, nil
	})
	s, ledger := newTestSession(t, 0, Deps{Identity: identity})
	selectSeats(t, s, "A1")

	outcome, err := s.RequestPurchase(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeRequireLogin, outcome.Kind)
	assert.Empty(t, ledger.all())
}

func TestRequestPurchase_IdentityCheckedOnEveryAttempt(t *testing.T) {
	var loggedIn atomic.Bool
	var calls atomic.Int32
	identity := identityFunc(func(context.Context) (entity.Identity, error) {
		calls.Add(1)
		if loggedIn.Load() {
			return entity.Identity{Status: entity.AuthStatusAuthenticated, Email: "chani@arrakis.test"}, nil
		}
		return entity.Identity{Status: entity.AuthStatusUnauthenticated}, nil
	})
	s, ledger := newTestSession(t, 0, Deps{Identity: identity})
	selectSeats(t, s, "B3")

	outcome, err := s.RequestPurchase(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeRequireLogin, outcome.Kind)

	loggedIn.Store(true)

	outcome, err = s.RequestPurchase(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeTicketCreated, outcome.Kind)
	assert.Equal(t, "chani@arrakis.test", outcome.Ticket.UserEmail)
	assert.Equal(t, int32(2), calls.Load())
	assert.Len(t, ledger.all(), 1)

	events := []Event{}
	for {
		e, ok := s.Outbox().Poll()
		if !ok {
			break
		}
		events = append(events, e)
	}
	assert.Equal(t, []Event{EventRequireLogin, Event(outcome.Ticket.ID.String())}, events)
}

func TestRequestPurchase_ToggleAfterLoginPromptResumesSelecting(t *testing.T) {
	s, _ := newTestSession(t, 0, Deps{Identity: signedOut()})
	selectSeats(t, s, "A1")

	_, err := s.RequestPurchase(context.Background())
	require.NoError(t, err)
	require.Equal(t, PhaseAwaitingLogin, s.State().Phase)

	state, err := s.ToggleSeat("A2")
	require.NoError(t, err)
	assert.Equal(t, PhaseSelecting, state.Phase)
}

func TestRequestPurchase_MetadataFailure(t *testing.T) {
	boom := errors.New("tmdb unavailable")
	var fail atomic.Bool
	fail.Store(true)
	movies := movieFunc(func(context.Context, int) (*entity.MovieMetadata, error) {
		if fail.Load() {
			return nil, boom
		}
		return duneMovie(), nil
	})
	s, ledger := newTestSession(t, 0, Deps{Movies: movies})
	selectSeats(t, s, "E1", "E2")

	outcome, err := s.RequestPurchase(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMetadataFetch)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, PurchaseOutcome{}, outcome)
	assert.Empty(t, ledger.all())
	assert.Zero(t, s.Outbox().Pending())

	state := s.State()
	assert.Equal(t, PhaseSelecting, state.Phase)
	assert.Equal(t, ErrMetadataFetch.Error(), state.Error)
	assert.Len(t, state.Selected, 2)

	// the failure is not sticky
	fail.Store(false)
	outcome, err = s.RequestPurchase(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeTicketCreated, outcome.Kind)
	assert.Empty(t, s.State().Error)
}

func TestRequestPurchase_UpstreamDetailStaysOutOfState(t *testing.T) {
	leaky := errors.New(`Get "http://tmdb.test/3/movie/1?api_key=TOPSECRETKEY": connection refused`)
	movies := movieFunc(func(context.Context, int) (*entity.MovieMetadata, error) {
		return nil, leaky
	})
	s, _ := newTestSession(t, 0, Deps{Movies: movies})
	selectSeats(t, s, "A1")

	_, err := s.RequestPurchase(context.Background())
	require.ErrorIs(t, err, leaky)

	state := s.State()
	assert.Equal(t, "movie metadata unavailable", state.Error)
	assert.NotContains(t, state.Error, "TOPSECRETKEY")
}

func TestRequestPurchase_OutcomeCarriesEvent(t *testing.T) {
	s, _ := newTestSession(t, 0, Deps{Identity: signedOut()})
	selectSeats(t, s, "A1")

	outcome, err := s.RequestPurchase(context.Background())
	require.NoError(t, err)
	assert.Equal(t, EventRequireLogin, outcome.Event)

	// a poller takes the event before the caller reads the outcome
	polled, ok := s.Outbox().Poll()
	require.True(t, ok)
	assert.Equal(t, outcome.Event, polled)
	assert.False(t, s.Outbox().Claim(outcome.Event))

	s2, _ := newTestSession(t, 0, Deps{})
	selectSeats(t, s2, "A1")

	outcome, err = s2.RequestPurchase(context.Background())
	require.NoError(t, err)
	require.NotNil(t, outcome.Ticket)
	assert.Equal(t, Event(outcome.Ticket.ID.String()), outcome.Event)
	assert.True(t, s2.Outbox().Claim(outcome.Event))
	assert.Zero(t, s2.Outbox().Pending())
}

func TestRequestPurchase_MissingMovie(t *testing.T) {
	s, ledger := newTestSession(t, 0, Deps{Movies: movieOf(nil)})
	selectSeats(t, s, "A1")

	_, err := s.RequestPurchase(context.Background())
	assert.ErrorIs(t, err, ErrMetadataFetch)
	assert.Empty(t, ledger.all())
	assert.Zero(t, s.Outbox().Pending())
}

func TestRequestPurchase_IdentityFailure(t *testing.T) {
	boom := errors.New("session store down")
	identity := identityFunc(func(context.Context) (entity.Identity, error) {
		return entity.Identity{}, boom
	})
	s, ledger := newTestSession(t, 0, Deps{Identity: identity})
	selectSeats(t, s, "A1")

	_, err := s.RequestPurchase(context.Background())
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, ledger.all())
	assert.Zero(t, s.Outbox().Pending())
	assert.Equal(t, PhaseSelecting, s.State().Phase)
}

func TestRequestPurchase_IdentityPending(t *testing.T) {
	identity := identityFunc(func(context.Context) (entity.Identity, error) {
		return entity.Identity{Status: entity.AuthStatusLoading}, nil
	})
	s, ledger := newTestSession(t, 0, Deps{Identity: identity})
	selectSeats(t, s, "A1")

	_, err := s.RequestPurchase(context.Background())
	assert.ErrorIs(t, err, ErrIdentityPending)
	assert.Empty(t, ledger.all())
	assert.Zero(t, s.Outbox().Pending())
}

func TestRequestPurchase_TeardownDiscardsInFlightAttempt(t *testing.T) {
	started := make(chan struct{})
	movies := movieFunc(func(ctx context.Context, _ int) (*entity.MovieMetadata, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	s, ledger := newTestSession(t, 0, Deps{Movies: movies})
	selectSeats(t, s, "A1")

	done := make(chan error, 1)
	go func() {
		_, err := s.RequestPurchase(context.Background())
		done <- err
	}()

	<-started
	s.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrSessionClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("purchase did not stop after teardown")
	}

	assert.Empty(t, ledger.all())
	assert.Zero(t, s.Outbox().Pending())
	assert.Equal(t, PhaseClosed, s.State().Phase)
}

func TestRequestPurchase_LateResultAfterTeardownIsDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	movies := movieFunc(func(context.Context, int) (*entity.MovieMetadata, error) {
		close(started)
		<-release
		return duneMovie(), nil
	})
	s, ledger := newTestSession(t, 0, Deps{Movies: movies})
	selectSeats(t, s, "A1")

	done := make(chan error, 1)
	go func() {
		_, err := s.RequestPurchase(context.Background())
		done <- err
	}()

	<-started
	s.Close()
	close(release)

	assert.ErrorIs(t, <-done, ErrSessionClosed)
	assert.Empty(t, ledger.all())
	assert.Zero(t, s.Outbox().Pending())
}

func TestRequestPurchase_RejectsConcurrentAttempt(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	movies := movieFunc(func(context.Context, int) (*entity.MovieMetadata, error) {
		close(started)
		<-release
		return duneMovie(), nil
	})
	s, ledger := newTestSession(t, 0, Deps{Movies: movies})
	selectSeats(t, s, "A1")

	done := make(chan PurchaseOutcome, 1)
	go func() {
		outcome, err := s.RequestPurchase(context.Background())
		assert.NoError(t, err)
		done <- outcome
	}()

	<-started
	assert.Equal(t, PhasePurchasing, s.State().Phase)

	_, err := s.RequestPurchase(context.Background())
	assert.ErrorIs(t, err, ErrPurchaseInFlight)

	close(release)
	outcome := <-done
	assert.Equal(t, OutcomeTicketCreated, outcome.Kind)
	assert.Len(t, ledger.all(), 1)
	assert.Equal(t, 1, s.Outbox().Pending())
}

func TestRequestPurchase_OnlyOnceCommitted(t *testing.T) {
	s, ledger := newTestSession(t, 0, Deps{})
	selectSeats(t, s, "A1")

	_, err := s.RequestPurchase(context.Background())
	require.NoError(t, err)

	_, err = s.RequestPurchase(context.Background())
	assert.ErrorIs(t, err, ErrSessionCommitted)
	assert.Len(t, ledger.all(), 1)
}

func TestRequestPurchase_TicketIgnoresLaterToggles(t *testing.T) {
	s, ledger := newTestSession(t, 0, Deps{})
	selectSeats(t, s, "C5", "C6", "C7")

	outcome, err := s.RequestPurchase(context.Background())
	require.NoError(t, err)

	selectSeats(t, s, "C5", "D1")

	assert.Equal(t, []string{"C5", "C6", "C7"}, seatIDs(outcome.Ticket.Seats))
	assert.Equal(t, []string{"C5", "C6", "C7"}, seatIDs(ledger.all()[0].Seats))
	assert.Equal(t, "36.00", ledger.all()[0].TotalPrice.StringFixed(2))

	outcome.Ticket.Seats[0].Number = 42
	assert.Equal(t, 5, ledger.all()[0].Seats[0].Number)
}

func TestRequestPurchase_CancelledCaller(t *testing.T) {
	s, ledger := newTestSession(t, 0, Deps{})
	selectSeats(t, s, "A1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.RequestPurchase(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ledger.all())
	assert.Equal(t, PhaseSelecting, s.State().Phase)
}

func TestRequestPurchase_ListenersSeePhases(t *testing.T) {
	s, _ := newTestSession(t, 0, Deps{})
	selectSeats(t, s, "A1")

	var mu sync.Mutex
	var phases []Phase
	s.Subscribe(func(state SelectionState) {
		mu.Lock()
		phases = append(phases, state.Phase)
		mu.Unlock()
	})

	_, err := s.RequestPurchase(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Phase{PhasePurchasing, PhaseCommitted}, phases)
}

func TestRequestPurchase_SharedLedgerAcrossSessions(t *testing.T) {
	ledger := &recordingLedger{}
	const sessions = 20

	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		s, _ := newTestSession(t, 0, Deps{Ledger: ledger})
		selectSeats(t, s, "A1", "A2")

		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := s.RequestPurchase(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, OutcomeTicketCreated, outcome.Kind)
		}()
	}
	wg.Wait()

	tickets := ledger.all()
	require.Len(t, tickets, sessions)
	ids := make(map[string]bool, sessions)
	for _, ticket := range tickets {
		ids[ticket.ID.String()] = true
	}
	assert.Len(t, ids, sessions)
}
