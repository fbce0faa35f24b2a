package usecase

import (
	"context"
	"fmt"
	"time"

	"cinemate/internal/booking"
	"cinemate/internal/data/repository"
	"cinemate/internal/dto/request"
	"cinemate/internal/dto/response"
	"cinemate/pkg/utils"

	"go.uber.org/zap"
)

const defaultShowtimeDays = 7

type ShowtimeService interface {
	GetShowtimes(ctx context.Context, movieID, date string) (*response.ShowtimesResponse, error)
}

type showtimeService struct {
	repo   *repository.Repository
	movies booking.MovieProvider
	days   int
	now    func() time.Time
	log    *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, movies booking.MovieProvider, config *utils.Config, log *zap.Logger) ShowtimeService {
	days := config.Showtime.Days
	if days < 1 {
		days = defaultShowtimeDays
	}

	return &showtimeService{
		repo:   repo,
		movies: movies,
		days:   days,
		now:    time.Now,
		log:    log.With(zap.String("service", "showtime")),
	}
}

// GetShowtimes lists the screenings of a movie on one of the upcoming days,
// today first. An empty date selects today. Every showtime carries the
// request that opens its booking session.
func (s *showtimeService) GetShowtimes(ctx context.Context, movieID, date string) (*response.ShowtimesResponse, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	dates := s.upcomingDates()
	selected := dates[0]
	if date != "" {
		found := false
		for _, d := range dates {
			if d == date {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: date must be one of the next %d days", ErrValidation, s.days)
		}
		selected = date
	}

	movie, err := s.movies.GetMovieByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie for showtimes", zap.Error(err), zap.Int("movie_id", id))
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	day, _ := time.Parse("2006-01-02", selected)
	lineup, err := s.repo.Showtime.FindByMovieAndDate(ctx, id, day)
	if err != nil {
		return nil, fmt.Errorf("get showtimes: %w", err)
	}

	cinemas := make([]response.CinemaShowtimesResponse, len(lineup))
	for i, c := range lineup {
		showtimes := make([]response.ShowtimeResponse, len(c.Showtimes))
		for j, t := range c.Showtimes {
			showtimes[j] = response.ShowtimeResponse{
				Time: t,
				Booking: request.StartBookingRequest{
					MovieID:    id,
					CinemaName: c.CinemaName,
					Date:       selected,
					Time:       t,
				},
			}
		}
		cinemas[i] = response.CinemaShowtimesResponse{
			CinemaName: c.CinemaName,
			Showtimes:  showtimes,
		}
	}

	s.log.Debug("Showtimes retrieved",
		zap.Int("movie_id", id),
		zap.String("date", selected),
		zap.Int("cinemas", len(cinemas)),
	)

	return &response.ShowtimesResponse{
		MovieID:      id,
		MovieTitle:   movie.Title,
		Dates:        dates,
		SelectedDate: selected,
		Cinemas:      cinemas,
	}, nil
}

func (s *showtimeService) upcomingDates() []string {
	today := s.now()
	dates := make([]string, s.days)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i).Format("2006-01-02")
	}
	return dates
}
