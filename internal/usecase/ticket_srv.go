package usecase

import (
	"context"
	"fmt"
	"strings"

	"cinemate/internal/data/repository"
	"cinemate/internal/dto/request"
	"cinemate/internal/dto/response"
	"cinemate/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TicketService reads the ledger on behalf of a signed-in user. Tickets of
// other users are never visible.
type TicketService interface {
	ListTickets(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
	GetTicket(ctx context.Context, userID uuid.UUID, ticketID string) (*response.TicketResponse, error)
}

type ticketService struct {
	repo     *repository.Repository
	currency string
	log      *zap.Logger
}

func NewTicketService(repo *repository.Repository, config *utils.Config, log *zap.Logger) TicketService {
	return &ticketService{
		repo:     repo,
		currency: config.Booking.Currency,
		log:      log.With(zap.String("service", "ticket")),
	}
}

// ListTickets returns the caller's tickets newest first.
func (s *ticketService) ListTickets(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	normalizePage(req)

	email, err := s.ownerEmail(ctx, userID)
	if err != nil {
		return nil, err
	}

	tickets := s.repo.Ticket.ListByEmail(email, req.Offset(), req.Limit())
	total := int64(s.repo.Ticket.CountByEmail(email))

	s.log.Debug("User tickets retrieved",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(tickets)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(
		response.TicketsToResponse(tickets, s.currency),
		req.Page, req.Limit(), total,
	), nil
}

// GetTicket returns ErrTicketNotFound for tickets booked by someone else.
func (s *ticketService) GetTicket(ctx context.Context, userID uuid.UUID, ticketID string) (*response.TicketResponse, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ticket id", ErrValidation)
	}

	email, err := s.ownerEmail(ctx, userID)
	if err != nil {
		return nil, err
	}

	ticket, ok := s.repo.Ticket.FindByID(id)
	if !ok || !strings.EqualFold(ticket.UserEmail, email) {
		return nil, ErrTicketNotFound
	}

	resp := response.TicketToResponse(*ticket, s.currency)
	return &resp, nil
}

func (s *ticketService) ownerEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return "", fmt.Errorf("failed to get user tickets: %w", err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	return user.Email, nil
}

func normalizePage(req *request.PaginatedRequest) {
	if req.Page < 1 {
		req.Page = 1
	}
}
