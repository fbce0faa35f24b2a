package response

import "cinemate/internal/dto/request"

// ShowtimeResponse carries the body that opens a booking session for this
// screening via POST /api/bookings/sessions.
type ShowtimeResponse struct {
	Time    string                      `json:"time"`
	Booking request.StartBookingRequest `json:"booking"`
}

type CinemaShowtimesResponse struct {
	CinemaName string             `json:"cinema_name"`
	Showtimes  []ShowtimeResponse `json:"showtimes"`
}

type ShowtimesResponse struct {
	MovieID      int                       `json:"movie_id"`
	MovieTitle   string                    `json:"movie_title"`
	Dates        []string                  `json:"dates"`
	SelectedDate string                    `json:"selected_date"`
	Cinemas      []CinemaShowtimesResponse `json:"cinemas"`
}
