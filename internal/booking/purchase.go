package booking

import (
	"context"
	"errors"
	"fmt"

	"cinemate/internal/data/entity"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type OutcomeKind string

const (
	OutcomeNoSelection   OutcomeKind = "NO_SELECTION"
	OutcomeRequireLogin  OutcomeKind = "REQUIRE_LOGIN"
	OutcomeTicketCreated OutcomeKind = "TICKET_CREATED"
)

// PurchaseOutcome is the result of one purchase attempt. Event is the
// navigation event the attempt pushed to the outbox, empty for
// OutcomeNoSelection. Ticket is set only for OutcomeTicketCreated.
type PurchaseOutcome struct {
	Kind   OutcomeKind
	Event  Event
	Ticket *entity.Ticket
}

// errNotAuthenticated stops the metadata fetch once the identity check has
// already decided the attempt.
var errNotAuthenticated = errors.New("not authenticated")

// RequestPurchase runs one purchase attempt. The identity check and the
// metadata fetch run in parallel and a ticket is assembled only after both
// have answered. Every attempt asks the identity provider again.
//
// An empty selection returns OutcomeNoSelection and emits no event. A
// missing identity emits EventRequireLogin; a created ticket emits its id.
// External failures return an error and leave the session SELECTING with
// the failure recorded in its state.
func (s *Session) RequestPurchase(ctx context.Context) (PurchaseOutcome, error) {
	s.mu.Lock()
	switch s.phase {
	case PhaseClosed:
		s.mu.Unlock()
		return PurchaseOutcome{}, ErrSessionClosed
	case PhaseCommitted:
		s.mu.Unlock()
		return PurchaseOutcome{}, ErrSessionCommitted
	case PhasePurchasing:
		s.mu.Unlock()
		return PurchaseOutcome{}, ErrPurchaseInFlight
	}
	if s.seats.selectedCount() == 0 {
		s.mu.Unlock()
		return PurchaseOutcome{Kind: OutcomeNoSelection}, nil
	}

	s.phase = PhasePurchasing
	s.lastErr = nil
	s.attempt++
	attempt := s.attempt
	state := s.stateLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()
	notify(listeners, state)

	// the attempt ends with the caller or with the session
	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.done, cancel)
	defer stop()

	var (
		identity    entity.Identity
		identityErr error
		movie       *entity.MovieMetadata
		movieErr    error
	)

	g, gctx := errgroup.WithContext(attemptCtx)
	g.Go(func() error {
		identity, identityErr = s.deps.Identity.CurrentIdentity(gctx)
		if identityErr != nil || identity.Status != entity.AuthStatusAuthenticated {
			return errNotAuthenticated
		}
		return nil
	})
	g.Go(func() error {
		movie, movieErr = s.deps.Movies.GetMovieByID(gctx, s.bctx.MovieID)
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	if s.phase == PhaseClosed || s.attempt != attempt {
		s.mu.Unlock()
		s.log.Info("Purchase discarded after session teardown")
		return PurchaseOutcome{}, ErrSessionClosed
	}

	if err := ctx.Err(); err != nil {
		return s.failLocked(fmt.Errorf("purchase cancelled: %w", err))
	}

	switch {
	case identityErr != nil:
		return s.failLocked(fmt.Errorf("%w: %w", ErrIdentityUnavailable, identityErr))
	case identity.Status == entity.AuthStatusLoading:
		return s.failLocked(ErrIdentityPending)
	case identity.Status != entity.AuthStatusAuthenticated || identity.Email == "":
		return s.requireLoginLocked()
	case movieErr != nil:
		return s.failLocked(fmt.Errorf("%w: %w", ErrMetadataFetch, movieErr))
	case movie == nil:
		return s.failLocked(fmt.Errorf("%w: movie %d not found", ErrMetadataFetch, s.bctx.MovieID))
	}

	current := s.stateLocked()
	if len(current.Selected) == 0 {
		s.phase = PhaseSelecting
		state := s.stateLocked()
		listeners := s.listenersLocked()
		s.mu.Unlock()
		notify(listeners, state)
		return PurchaseOutcome{Kind: OutcomeNoSelection}, nil
	}

	ticket := AssembleTicket(current, movie, TicketOptions{
		Location:  s.cfg.Location,
		UserEmail: identity.Email,
		Now:       s.now(),
	})
	s.deps.Ledger.Append(ticket)

	s.phase = PhaseCommitted
	s.ticket = &ticket
	s.outbox.push(Event(ticket.ID.String()))
	state = s.stateLocked()
	listeners = s.listenersLocked()
	s.mu.Unlock()

	s.log.Info("Ticket created",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("booking_number", ticket.BookingNumber),
		zap.String("email", ticket.UserEmail),
		zap.Int("seat_count", len(ticket.Seats)),
		zap.String("total_price", ticket.TotalPrice.StringFixed(2)),
	)
	notify(listeners, state)

	out := ticket.Clone()
	return PurchaseOutcome{Kind: OutcomeTicketCreated, Event: Event(ticket.ID.String()), Ticket: &out}, nil
}

// failLocked records err, returns the session to SELECTING and unlocks.
func (s *Session) failLocked(err error) (PurchaseOutcome, error) {
	s.phase = PhaseSelecting
	s.lastErr = err
	state := s.stateLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.log.Warn("Purchase failed", zap.Error(err))
	notify(listeners, state)
	return PurchaseOutcome{}, err
}

func (s *Session) requireLoginLocked() (PurchaseOutcome, error) {
	s.phase = PhaseAwaitingLogin
	s.outbox.push(EventRequireLogin)
	state := s.stateLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.log.Info("Purchase requires login")
	notify(listeners, state)
	return PurchaseOutcome{Kind: OutcomeRequireLogin, Event: EventRequireLogin}, nil
}
