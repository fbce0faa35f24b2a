package wire

import (
	"cinemate/internal/adaptor"
	"cinemate/internal/data/repository"
	"cinemate/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/me", userHandler.Me)
}
