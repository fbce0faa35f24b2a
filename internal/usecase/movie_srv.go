package usecase

import (
	"context"
	"fmt"
	"strconv"

	"cinemate/internal/booking"
	"cinemate/internal/data/entity"
	"cinemate/internal/dto/response"

	"go.uber.org/zap"
)

// MovieCatalog is the read side of the movie source: the booking metadata
// lookup plus the listings and the detail page.
type MovieCatalog interface {
	booking.MovieProvider
	GetMovieDetail(ctx context.Context, id int) (*entity.MovieDetail, error)
	ListMovies(ctx context.Context, list entity.MovieList, page int) (*entity.MoviePage, error)
}

type MovieService interface {
	ListMovies(ctx context.Context, list string, page int) (*response.MovieListResponse, error)
	GetMovie(ctx context.Context, movieID string) (*response.MovieDetailResponse, error)
}

type movieService struct {
	catalog MovieCatalog
	log     *zap.Logger
}

func NewMovieService(catalog MovieCatalog, log *zap.Logger) MovieService {
	return &movieService{
		catalog: catalog,
		log:     log.With(zap.String("service", "movie")),
	}
}

// ListMovies returns one page of a listing. An empty list name means now
// playing.
func (s *movieService) ListMovies(ctx context.Context, list string, page int) (*response.MovieListResponse, error) {
	name := entity.MovieList(list)
	if name == "" {
		name = entity.MovieListNowPlaying
	}
	if !name.Valid() {
		return nil, fmt.Errorf("%w: unknown movie list %q", ErrValidation, list)
	}
	if page < 1 {
		page = 1
	}

	movies, err := s.catalog.ListMovies(ctx, name, page)
	if err != nil {
		s.log.Error("Failed to list movies",
			zap.Error(err),
			zap.String("list", string(name)),
			zap.Int("page", page),
		)
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	s.log.Debug("Movies retrieved",
		zap.String("list", string(name)),
		zap.Int("page", page),
		zap.Int("count", len(movies.Results)),
	)

	return response.MoviePageToResponse(name, movies), nil
}

func (s *movieService) GetMovie(ctx context.Context, movieID string) (*response.MovieDetailResponse, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	detail, err := s.catalog.GetMovieDetail(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie detail", zap.Error(err), zap.Int("movie_id", id))
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if detail == nil {
		return nil, ErrMovieNotFound
	}

	return response.MovieDetailToResponse(detail), nil
}

func parseMovieID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid movie id %q", ErrValidation, raw)
	}
	return id, nil
}
