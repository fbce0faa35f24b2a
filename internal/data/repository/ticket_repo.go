package repository

import (
	"sync"

	"cinemate/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TicketRepository is the in-memory ticket ledger. Tickets are append-only
// and listed newest first. It lives as long as the process.
type TicketRepository interface {
	Append(ticket entity.Ticket)
	FindByID(id uuid.UUID) (*entity.Ticket, bool)
	List(offset, limit int) []entity.Ticket
	ListByEmail(email string, offset, limit int) []entity.Ticket
	Count() int
	CountByEmail(email string) int
}

type ticketRepository struct {
	mu      sync.RWMutex
	tickets []entity.Ticket // oldest first, read in reverse
	log     *zap.Logger
}

func NewTicketRepository(log *zap.Logger) TicketRepository {
	return &ticketRepository{
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) Append(ticket entity.Ticket) {
	r.mu.Lock()
	r.tickets = append(r.tickets, ticket.Clone())
	n := len(r.tickets)
	r.mu.Unlock()

	r.log.Debug("Ticket appended",
		zap.String("ticket_id", ticket.ID.String()),
		zap.Int("ledger_size", n),
	)
}

func (r *ticketRepository) FindByID(id uuid.UUID) (*entity.Ticket, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.tickets) - 1; i >= 0; i-- {
		if r.tickets[i].ID == id {
			t := r.tickets[i].Clone()
			return &t, true
		}
	}
	return nil, false
}

// List returns at most limit tickets, newest first, skipping offset.
// A limit <= 0 returns everything after offset.
func (r *ticketRepository) List(offset, limit int) []entity.Ticket {
	return r.collect(offset, limit, func(entity.Ticket) bool { return true })
}

func (r *ticketRepository) ListByEmail(email string, offset, limit int) []entity.Ticket {
	return r.collect(offset, limit, func(t entity.Ticket) bool { return t.UserEmail == email })
}

func (r *ticketRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tickets)
}

func (r *ticketRepository) CountByEmail(email string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, t := range r.tickets {
		if t.UserEmail == email {
			n++
		}
	}
	return n
}

func (r *ticketRepository) collect(offset, limit int, match func(entity.Ticket) bool) []entity.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}

	out := make([]entity.Ticket, 0)
	skipped := 0
	for i := len(r.tickets) - 1; i >= 0; i-- {
		if !match(r.tickets[i]) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, r.tickets[i].Clone())
	}
	return out
}
