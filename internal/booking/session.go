package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cinemate/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultMaxSeats = 10

// DefaultUnitPrice is the price of one seat.
var DefaultUnitPrice = decimal.RequireFromString("12.00")

type Phase string

const (
	PhaseSelecting     Phase = "SELECTING"
	PhasePurchasing    Phase = "PURCHASING"
	PhaseAwaitingLogin Phase = "AWAITING_LOGIN"
	PhaseCommitted     Phase = "COMMITTED"
	PhaseClosed        Phase = "CLOSED"
)

// SelectionState is a point-in-time copy of a session. It never aliases the
// session's seat map.
type SelectionState struct {
	SessionID  string
	Context    entity.BookingContext
	Phase      Phase
	Seats      []entity.Seat
	Selected   []entity.Seat
	MaxSeats   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Error      string
	TicketID   string
}

type Listener func(SelectionState)

type MovieProvider interface {
	GetMovieByID(ctx context.Context, id int) (*entity.MovieMetadata, error)
}

type IdentityProvider interface {
	CurrentIdentity(ctx context.Context) (entity.Identity, error)
}

type Ledger interface {
	Append(ticket entity.Ticket)
}

type Config struct {
	MaxSeats  int
	UnitPrice decimal.Decimal
	Location  string
}

type Deps struct {
	Movies   MovieProvider
	Identity IdentityProvider
	Ledger   Ledger
}

// Session is the seat-selection state machine of one booking context.
// Seat toggles are expected from a single owner; purchase attempts may run
// concurrently with reads and are guarded internally.
type Session struct {
	id   string
	bctx entity.BookingContext
	cfg  Config
	deps Deps
	log  *zap.Logger
	now  func() time.Time

	mu           sync.Mutex
	seats        *SeatMap
	phase        Phase
	lastErr      error
	ticket       *entity.Ticket
	attempt      uint64
	listeners    map[int]Listener
	nextListener int
	outbox       Outbox

	done   context.Context
	cancel context.CancelFunc
}

// NewSession opens a booking session with a freshly generated seat map.
func NewSession(bctx entity.BookingContext, gen *Generator, deps Deps, cfg Config, log *zap.Logger) *Session {
	if cfg.MaxSeats <= 0 {
		cfg.MaxSeats = DefaultMaxSeats
	}
	if !cfg.UnitPrice.IsPositive() {
		cfg.UnitPrice = DefaultUnitPrice
	}

	done, cancel := context.WithCancel(context.Background())
	id := uuid.New().String()

	return &Session{
		id:        id,
		bctx:      bctx,
		cfg:       cfg,
		deps:      deps,
		log:       log.With(zap.String("booking_session", id)),
		now:       time.Now,
		seats:     gen.Generate(),
		phase:     PhaseSelecting,
		listeners: make(map[int]Listener),
		done:      done,
		cancel:    cancel,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Context() entity.BookingContext {
	return s.bctx
}

// Outbox returns the session's navigation event queue.
func (s *Session) Outbox() *Outbox {
	return &s.outbox
}

// State returns a snapshot of the session.
func (s *Session) State() SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() SelectionState {
	selected := s.seats.Selected()
	state := SelectionState{
		SessionID:  s.id,
		Context:    s.bctx,
		Phase:      s.phase,
		Seats:      s.seats.Seats(),
		Selected:   selected,
		MaxSeats:   s.cfg.MaxSeats,
		UnitPrice:  s.cfg.UnitPrice,
		TotalPrice: s.cfg.UnitPrice.Mul(decimal.NewFromInt(int64(len(selected)))),
	}
	if s.lastErr != nil {
		state.Error = PublicMessage(s.lastErr)
	}
	if s.ticket != nil {
		state.TicketID = s.ticket.ID.String()
	}
	return state
}

// ToggleSeat flips an AVAILABLE seat to SELECTED or back. Reserved seats and
// selections beyond MaxSeats are ignored and return the unchanged state.
func (s *Session) ToggleSeat(seatID string) (SelectionState, error) {
	s.mu.Lock()

	if s.phase == PhaseClosed {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, ErrSessionClosed
	}
	i, ok := s.seats.index[seatID]
	if !ok {
		state := s.stateLocked()
		s.mu.Unlock()
		return state, fmt.Errorf("%w: %q", ErrInvalidSeatID, seatID)
	}

	seat := &s.seats.seats[i]
	changed := false

	switch seat.Status {
	case entity.SeatStatusAvailable:
		if s.seats.selectedCount() < s.cfg.MaxSeats {
			seat.Status = entity.SeatStatusSelected
			changed = true
		}
	case entity.SeatStatusSelected:
		seat.Status = entity.SeatStatusAvailable
		changed = true
	}

	if changed && s.phase == PhaseAwaitingLogin {
		s.phase = PhaseSelecting
	}

	status := seat.Status
	state := s.stateLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	if changed {
		s.log.Debug("Seat toggled",
			zap.String("seat", seatID),
			zap.String("status", string(status)),
			zap.Int("selected", len(state.Selected)),
			zap.String("total_price", state.TotalPrice.StringFixed(2)),
		)
		notify(listeners, state)
	}

	return state, nil
}

// Subscribe registers l to receive the state after every change. The
// returned function removes the listener.
func (s *Session) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close tears the session down. A purchase still in flight is discarded and
// will not reach the ledger.
func (s *Session) Close() {
	s.mu.Lock()
	if s.phase == PhaseClosed {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseClosed
	s.cancel()
	state := s.stateLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	s.log.Debug("Booking session closed")
	notify(listeners, state)
}

func (s *Session) listenersLocked() []Listener {
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	return ls
}

func notify(listeners []Listener, state SelectionState) {
	for _, l := range listeners {
		l(state)
	}
}
