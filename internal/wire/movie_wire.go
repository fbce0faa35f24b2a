package wire

import (
	"cinemate/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", movieHandler.ListMovies)
		r.Get("/{id}", movieHandler.GetMovie)
		r.Get("/{id}/showtimes", movieHandler.GetShowtimes)
	})
}
