package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"cinemate/internal/booking"
	"cinemate/internal/data/entity"
	"cinemate/internal/data/repository"
	"cinemate/internal/dto/request"
	"cinemate/internal/dto/response"
	"cinemate/pkg/utils"

	"go.uber.org/zap"
)

type BookingService interface {
	StartSession(ctx context.Context, req *request.StartBookingRequest) (*response.SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*response.SessionResponse, error)
	ToggleSeat(ctx context.Context, sessionID, seatID string) (*response.SessionResponse, error)
	Purchase(ctx context.Context, sessionID string) (*response.PurchaseResponse, error)
	NextEvent(ctx context.Context, sessionID string) (*response.EventResponse, error)
	CloseSession(ctx context.Context, sessionID string) error

	// SweepIdle closes sessions untouched for longer than the idle timeout.
	SweepIdle(now time.Time) int
	// Run sweeps idle sessions until ctx is done, then closes the rest.
	Run(ctx context.Context)
}

type bookingEntry struct {
	session     *booking.Session
	lastSeen    atomic.Int64
	unsubscribe func()
}

func (e *bookingEntry) touch(t time.Time) {
	e.lastSeen.Store(t.UnixNano())
}

type bookingService struct {
	gen         *booking.Generator
	deps        booking.Deps
	cfg         booking.Config
	currency    string
	idleTimeout time.Duration
	log         *zap.Logger
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*bookingEntry
}

func NewBookingService(
	repo *repository.Repository,
	movies booking.MovieProvider,
	identity booking.IdentityProvider,
	config *utils.Config,
	log *zap.Logger,
) (BookingService, error) {
	gen, err := booking.NewGenerator(
		config.Booking.Rows,
		config.Booking.SeatsPerRow,
		config.Booking.ReservedRatio,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("seat map generator: %w", err)
	}

	idle := config.Session.BookingIdleTimeout
	if idle <= 0 {
		idle = 30 * time.Minute
	}

	return &bookingService{
		gen: gen,
		deps: booking.Deps{
			Movies:   movies,
			Identity: identity,
			Ledger:   repo.Ticket,
		},
		cfg: booking.Config{
			MaxSeats:  config.Booking.MaxSeats,
			UnitPrice: config.Booking.SeatPrice,
			Location:  config.Booking.Location,
		},
		currency:    config.Booking.Currency,
		idleTimeout: idle,
		log:         log.With(zap.String("service", "booking")),
		now:         time.Now,
		sessions:    make(map[string]*bookingEntry),
	}, nil
}

func (s *bookingService) StartSession(ctx context.Context, req *request.StartBookingRequest) (*response.SessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Start session validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, req.Date)
	}

	bctx := entity.BookingContext{
		MovieID:    req.MovieID,
		CinemaName: req.CinemaName,
		Date:       date,
		Time:       req.Time,
	}

	session := booking.NewSession(bctx, s.gen, s.deps, s.cfg, s.log)
	entry := &bookingEntry{session: session}
	entry.touch(s.now())
	entry.unsubscribe = session.Subscribe(func(booking.SelectionState) {
		entry.touch(s.now())
	})

	s.mu.Lock()
	s.sessions[session.ID()] = entry
	active := len(s.sessions)
	s.mu.Unlock()

	s.log.Info("Booking session started",
		zap.String("session_id", session.ID()),
		zap.Int("movie_id", bctx.MovieID),
		zap.String("cinema", bctx.CinemaName),
		zap.Int("active_sessions", active),
	)

	resp := response.SessionToResponse(session.State(), s.currency)
	return &resp, nil
}

func (s *bookingService) GetSession(ctx context.Context, sessionID string) (*response.SessionResponse, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	resp := response.SessionToResponse(session.State(), s.currency)
	return &resp, nil
}

func (s *bookingService) ToggleSeat(ctx context.Context, sessionID, seatID string) (*response.SessionResponse, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	state, err := session.ToggleSeat(seatID)
	if err != nil {
		return nil, err
	}

	resp := response.SessionToResponse(state, s.currency)
	return &resp, nil
}

// Purchase runs a purchase attempt and hands back the navigation event it
// produced. The event is withdrawn from the session outbox unless a poller
// has already taken it.
func (s *bookingService) Purchase(ctx context.Context, sessionID string) (*response.PurchaseResponse, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	outcome, err := session.RequestPurchase(ctx)
	if err != nil {
		return nil, err
	}

	resp := &response.PurchaseResponse{
		Outcome: string(outcome.Kind),
		Event:   string(outcome.Event),
	}
	if outcome.Event != "" {
		session.Outbox().Claim(outcome.Event)
	}
	if outcome.Ticket != nil {
		ticket := response.TicketToResponse(*outcome.Ticket, s.currency)
		resp.Ticket = &ticket
	}

	return resp, nil
}

// NextEvent returns nil when no event is pending.
func (s *bookingService) NextEvent(ctx context.Context, sessionID string) (*response.EventResponse, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	event, ok := session.Outbox().Poll()
	if !ok {
		return nil, nil
	}
	return &response.EventResponse{Event: string(event)}, nil
}

func (s *bookingService) CloseSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	entry.unsubscribe()
	entry.session.Close()
	s.log.Info("Booking session closed", zap.String("session_id", sessionID))
	return nil
}

func (s *bookingService) SweepIdle(now time.Time) int {
	cutoff := now.Add(-s.idleTimeout).UnixNano()

	var idle []*bookingEntry
	s.mu.Lock()
	for id, entry := range s.sessions {
		if entry.lastSeen.Load() < cutoff {
			idle = append(idle, entry)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, entry := range idle {
		entry.unsubscribe()
		entry.session.Close()
	}

	if len(idle) > 0 {
		s.log.Info("Idle booking sessions closed", zap.Int("count", len(idle)))
	}
	return len(idle)
}

func (s *bookingService) Run(ctx context.Context) {
	interval := s.idleTimeout / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case <-ticker.C:
			s.SweepIdle(s.now())
		}
	}
}

func (s *bookingService) closeAll() {
	s.mu.Lock()
	entries := s.sessions
	s.sessions = make(map[string]*bookingEntry)
	s.mu.Unlock()

	for _, entry := range entries {
		entry.unsubscribe()
		entry.session.Close()
	}
	s.log.Info("Booking sessions shut down", zap.Int("count", len(entries)))
}

func (s *bookingService) lookup(sessionID string) (*booking.Session, error) {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	s.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.touch(s.now())
	return entry.session, nil
}
