package booking

import (
	"fmt"
	"strings"
	"time"

	"cinemate/internal/data/entity"
	"cinemate/pkg/utils"

	"github.com/google/uuid"
)

// DurationUnknown is used when the movie runtime is not known.
const DurationUnknown = "unknown"

type TicketOptions struct {
	Location  string
	UserEmail string
	Now       time.Time
}

// AssembleTicket builds the ticket for the current selection. The seat list
// is copied from state, so later toggles never reach the ticket.
func AssembleTicket(state SelectionState, movie *entity.MovieMetadata, opts TicketOptions) entity.Ticket {
	return entity.Ticket{
		ID:            uuid.New(),
		BookingNumber: utils.GenerateBookingNumber(),
		UserEmail:     opts.UserEmail,
		MovieID:       movie.ID,
		MovieTitle:    movie.Title,
		PosterURL:     movie.PosterURL,
		Genre:         GenreLabel(movie.Genres),
		Duration:      DurationLabel(movie.RuntimeMinutes),
		CinemaName:    state.Context.CinemaName,
		Location:      opts.Location,
		Date:          state.Context.Date,
		Time:          state.Context.Time,
		Seats:         append([]entity.Seat(nil), state.Selected...),
		TotalPrice:    state.TotalPrice,
		CreatedAt:     opts.Now,
	}
}

// DurationLabel formats a runtime as "2h 35m".
func DurationLabel(runtimeMinutes *int) string {
	if runtimeMinutes == nil || *runtimeMinutes < 0 {
		return DurationUnknown
	}
	return fmt.Sprintf("%dh %dm", *runtimeMinutes/60, *runtimeMinutes%60)
}

// GenreLabel joins genre names with ", ".
func GenreLabel(genres []entity.Genre) string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}
