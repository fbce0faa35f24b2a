package request

// StartBookingRequest opens a seat-selection session for one screening.
type StartBookingRequest struct {
	MovieID    int    `json:"movie_id" validate:"required,gt=0"`
	CinemaName string `json:"cinema_name" validate:"required,max=100"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,datetime=15:04"`
}
