package wire

import (
	"net/http"

	"cinemate/internal/adaptor"
	"cinemate/internal/data/repository"
	"cinemate/internal/usecase"
	"cinemate/pkg/middleware"
	"cinemate/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services that need a lifecycle.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes. movies is the metadata
// provider selected at startup.
func Wiring(repo *repository.Repository, movies usecase.MovieCatalog, config *utils.Config, logger *zap.Logger) (*App, error) {
	service, err := usecase.NewService(repo, movies, config, logger)
	if err != nil {
		return nil, err
	}
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router:  router,
		Service: service,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wireBooking(r, handler.Booking)
	wireTicket(r, handler.Ticket, repo, logger)
	wireMovie(r, handler.Movie)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
