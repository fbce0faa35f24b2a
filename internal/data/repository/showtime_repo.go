package repository

import (
	"context"
	"fmt"
	"time"

	"cinemate/internal/data/entity"
	"cinemate/pkg/database"

	"go.uber.org/zap"
)

// ShowtimeRepository lists which cinemas show a movie on a given day.
type ShowtimeRepository interface {
	FindByMovieAndDate(ctx context.Context, movieID int, date time.Time) ([]entity.CinemaShowtimes, error)
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

// NewShowtimeRepository reads showtimes from the schedules table.
func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) FindByMovieAndDate(ctx context.Context, movieID int, date time.Time) ([]entity.CinemaShowtimes, error) {
	query := `
		SELECT c.name, to_char(s.show_time, 'HH24:MI')
		FROM schedules s
		JOIN halls h ON h.id = s.hall_id
		JOIN cinemas c ON c.id = h.cinema_id
		JOIN movies m ON m.id = s.movie_id
		WHERE m.tmdb_id = $1 AND s.show_date = $2 AND c.deleted_at IS NULL
		ORDER BY c.name, s.show_time
	`

	rows, err := r.db.Query(ctx, query, movieID, date.Format("2006-01-02"))
	if err != nil {
		r.log.Error("Failed to find showtimes",
			zap.Error(err),
			zap.Int("movie_id", movieID),
			zap.Time("show_date", date),
		)
		return nil, fmt.Errorf("find showtimes for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	showtimes := make([]entity.CinemaShowtimes, 0)
	for rows.Next() {
		var cinema, showTime string
		if err := rows.Scan(&cinema, &showTime); err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime: %w", err)
		}

		// rows arrive grouped by cinema
		last := len(showtimes) - 1
		if last < 0 || showtimes[last].CinemaName != cinema {
			showtimes = append(showtimes, entity.CinemaShowtimes{CinemaName: cinema})
			last++
		}
		showtimes[last].Showtimes = append(showtimes[last].Showtimes, showTime)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate showtimes: %w", err)
	}

	return showtimes, nil
}

// DefaultLineup is the fixed programme served when no schedules table is
// configured: the same three Deggendorf cinemas every day.
func DefaultLineup() []entity.CinemaShowtimes {
	return []entity.CinemaShowtimes{
		{CinemaName: "Lichtspielhaus Deggendorf", Showtimes: []string{"10:30", "13:00", "14:30", "18:00", "19:30"}},
		{CinemaName: "CineMax MediaMarkt", Showtimes: []string{"17:30", "18:00", "21:00", "22:30"}},
		{CinemaName: "Sanelite Cinema", Showtimes: []string{"13:00", "15:00", "21:30"}},
	}
}

type staticShowtimeRepository struct {
	lineup []entity.CinemaShowtimes
}

// NewStaticShowtimeRepository serves lineup for every movie and date.
func NewStaticShowtimeRepository(lineup []entity.CinemaShowtimes) ShowtimeRepository {
	return &staticShowtimeRepository{lineup: lineup}
}

func (r *staticShowtimeRepository) FindByMovieAndDate(context.Context, int, time.Time) ([]entity.CinemaShowtimes, error) {
	out := make([]entity.CinemaShowtimes, len(r.lineup))
	for i, c := range r.lineup {
		out[i] = entity.CinemaShowtimes{
			CinemaName: c.CinemaName,
			Showtimes:  append([]string(nil), c.Showtimes...),
		}
	}
	return out, nil
}
