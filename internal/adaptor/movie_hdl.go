package adaptor

import (
	"net/http"

	"cinemate/internal/usecase"
	"cinemate/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	movies    usecase.MovieService
	showtimes usecase.ShowtimeService
	log       *zap.Logger
}

func NewMovieHandler(movies usecase.MovieService, showtimes usecase.ShowtimeService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		movies:    movies,
		showtimes: showtimes,
		log:       log.With(zap.String("handler", "movie")),
	}
}

// ListMovies handles GET /api/movies?list=&page=
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	movies, err := h.movies.ListMovies(r.Context(), query.Get("list"), utils.ParseInt(query.Get("page"), 1))
	if err != nil {
		handleServiceError(w, h.log, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovie handles GET /api/movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.movies.GetMovie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// GetShowtimes handles GET /api/movies/{id}/showtimes?date=
func (h *MovieHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	showtimes, err := h.showtimes.GetShowtimes(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("date"))
	if err != nil {
		handleServiceError(w, h.log, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}
