package repository

import (
	"context"
	"fmt"
	"time"

	"cinemate/internal/data/entity"
	"cinemate/pkg/database"
	"cinemate/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieRepository reads the local movie catalogue. Movies are keyed by
// their TMDB id so the catalogue and the TMDB client are interchangeable.
type MovieRepository interface {
	GetMovieByID(ctx context.Context, id int) (*entity.MovieMetadata, error)
	GetMovieDetail(ctx context.Context, id int) (*entity.MovieDetail, error)
	ListMovies(ctx context.Context, list entity.MovieList, page int) (*entity.MoviePage, error)
}

// moviePageSize matches the page size of the TMDB listings.
const moviePageSize = 20

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

// GetMovieByID returns nil, nil when the movie is not in the catalogue.
func (r *movieRepository) GetMovieByID(ctx context.Context, id int) (*entity.MovieMetadata, error) {
	query := `
		SELECT tmdb_id, title, COALESCE(poster_url, ''), duration_in_minutes
		FROM movies
		WHERE tmdb_id = $1 AND deleted_at IS NULL
	`

	var movie entity.MovieMetadata
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.PosterURL,
		&movie.RuntimeMinutes,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	genres, err := r.findGenres(ctx, id)
	if err != nil {
		return nil, err
	}
	movie.Genres = genres

	return &movie, nil
}

func (r *movieRepository) findGenres(ctx context.Context, movieID int) ([]entity.Genre, error) {
	query := `
		SELECT g.name
		FROM genres g
		JOIN movie_genres mg ON mg.genre_id = g.id
		JOIN movies m ON m.id = mg.movie_id
		WHERE m.tmdb_id = $1
		ORDER BY g.name
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find movie genres",
			zap.Error(err),
			zap.Int("movie_id", movieID),
		)
		return nil, fmt.Errorf("failed to find movie genres: %w", err)
	}
	defer rows.Close()

	genres := make([]entity.Genre, 0)
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.Name); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate genres: %w", err)
	}

	return genres, nil
}

// GetMovieDetail returns nil, nil when the movie is not in the catalogue.
// The catalogue keeps no credits, so Cast and Crew are empty.
func (r *movieRepository) GetMovieDetail(ctx context.Context, id int) (*entity.MovieDetail, error) {
	query := `
		SELECT tmdb_id, title, COALESCE(poster_url, ''), duration_in_minutes,
			COALESCE(description, ''), rating, release_date
		FROM movies
		WHERE tmdb_id = $1 AND deleted_at IS NULL
	`

	var (
		detail      entity.MovieDetail
		releaseDate time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.Title,
		&detail.PosterURL,
		&detail.RuntimeMinutes,
		&detail.Overview,
		&detail.Rating,
		&releaseDate,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie detail",
			zap.Error(err),
			zap.Int("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie detail: %w", err)
	}

	genres, err := r.findGenres(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Genres = genres
	detail.ReleaseDate = releaseDate.Format("2006-01-02")
	detail.Cast = make([]entity.CastMember, 0)
	detail.Crew = make([]entity.CrewMember, 0)

	return &detail, nil
}

// ListMovies pages through the catalogue. Trending is every released or
// upcoming movie by rating; the other lists follow release_status.
func (r *movieRepository) ListMovies(ctx context.Context, list entity.MovieList, page int) (*entity.MoviePage, error) {
	var filter string
	switch list {
	case entity.MovieListTrending:
		// no filter
	case entity.MovieListNowPlaying:
		filter = "now_playing"
	case entity.MovieListUpcoming:
		filter = "coming_soon"
	default:
		return nil, fmt.Errorf("unknown movie list %q", list)
	}
	if page < 1 {
		page = 1
	}

	query := `
		SELECT tmdb_id, title, COALESCE(poster_url, ''), rating, release_date, COALESCE(description, '')
		FROM movies
		WHERE deleted_at IS NULL AND ($1 = '' OR release_status = $1)
		ORDER BY rating DESC, release_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, filter, moviePageSize, (page-1)*moviePageSize)
	if err != nil {
		r.log.Error("Failed to list movies",
			zap.Error(err),
			zap.String("list", string(list)),
			zap.Int("page", page),
		)
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	results := make([]entity.MovieSummary, 0)
	for rows.Next() {
		var (
			movie       entity.MovieSummary
			releaseDate time.Time
		)
		if err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.PosterURL,
			&movie.Rating,
			&releaseDate,
			&movie.Overview,
		); err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movie.ReleaseDate = releaseDate.Format("2006-01-02")
		results = append(results, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movies: %w", err)
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM movies
		WHERE deleted_at IS NULL AND ($1 = '' OR release_status = $1)
	`
	if err := r.db.QueryRow(ctx, countQuery, filter).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err), zap.String("list", string(list)))
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}

	return &entity.MoviePage{
		Page:         page,
		TotalPages:   utils.CalculateTotalPages(int64(total), moviePageSize),
		TotalResults: total,
		Results:      results,
	}, nil
}
