package usecase

import (
	"context"
	"fmt"

	"cinemate/internal/data/entity"
	"cinemate/internal/data/repository"
	"cinemate/pkg/utils"

	"go.uber.org/zap"
)

// SessionIdentity resolves the caller from the bearer token carried in the
// request context. A missing, unknown or expired token is UNAUTHENTICATED;
// storage failures are returned as errors.
type SessionIdentity struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	log      *zap.Logger
}

func NewSessionIdentity(repo *repository.Repository, log *zap.Logger) *SessionIdentity {
	return &SessionIdentity{
		sessions: repo.Session,
		users:    repo.User,
		log:      log.With(zap.String("service", "identity")),
	}
}

func (p *SessionIdentity) CurrentIdentity(ctx context.Context) (entity.Identity, error) {
	anonymous := entity.Identity{Status: entity.AuthStatusUnauthenticated}

	token, ok := utils.GetTokenFromContext(ctx)
	if !ok || token == "" {
		return anonymous, nil
	}
	if _, err := utils.ParseUUID(token); err != nil {
		return anonymous, nil
	}

	session, err := p.sessions.FindValidSession(ctx, token)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("resolve session: %w", err)
	}
	if session == nil {
		return anonymous, nil
	}

	user, err := p.users.FindByID(ctx, session.UserID)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil || !user.IsActive {
		p.log.Debug("Session points at a missing or inactive user",
			zap.String("user_id", session.UserID.String()))
		return anonymous, nil
	}

	return entity.Identity{Status: entity.AuthStatusAuthenticated, Email: user.Email}, nil
}
