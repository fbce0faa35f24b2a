package response

import (
	"cinemate/internal/booking"
	"cinemate/internal/data/entity"
)

type MovieSummaryResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"poster_url"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
}

type MovieListResponse struct {
	List         string                 `json:"list"`
	Page         int                    `json:"page"`
	TotalPages   int                    `json:"total_pages"`
	TotalResults int                    `json:"total_results"`
	Results      []MovieSummaryResponse `json:"results"`
}

type CastResponse struct {
	Name       string `json:"name"`
	ProfileURL string `json:"profile_url"`
}

type CrewResponse struct {
	Name       string `json:"name"`
	Job        string `json:"job"`
	ProfileURL string `json:"profile_url"`
}

type MovieDetailResponse struct {
	ID             int            `json:"id"`
	Title          string         `json:"title"`
	PosterURL      string         `json:"poster_url"`
	Overview       string         `json:"overview"`
	Tagline        string         `json:"tagline"`
	ReleaseDate    string         `json:"release_date"`
	Rating         float64        `json:"rating"`
	RuntimeMinutes *int           `json:"runtime_minutes"`
	Duration       string         `json:"duration"`
	Genres         []string       `json:"genres"`
	Cast           []CastResponse `json:"cast"`
	Crew           []CrewResponse `json:"crew"`
}

func MoviePageToResponse(list entity.MovieList, page *entity.MoviePage) *MovieListResponse {
	results := make([]MovieSummaryResponse, len(page.Results))
	for i, m := range page.Results {
		results[i] = MovieSummaryResponse{
			ID:          m.ID,
			Title:       m.Title,
			PosterURL:   m.PosterURL,
			Rating:      m.Rating,
			ReleaseDate: m.ReleaseDate,
			Overview:    m.Overview,
		}
	}

	return &MovieListResponse{
		List:         string(list),
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalResults: page.TotalResults,
		Results:      results,
	}
}

func MovieDetailToResponse(detail *entity.MovieDetail) *MovieDetailResponse {
	genres := make([]string, len(detail.Genres))
	for i, g := range detail.Genres {
		genres[i] = g.Name
	}
	cast := make([]CastResponse, len(detail.Cast))
	for i, c := range detail.Cast {
		cast[i] = CastResponse{Name: c.Name, ProfileURL: c.ProfileURL}
	}
	crew := make([]CrewResponse, len(detail.Crew))
	for i, c := range detail.Crew {
		crew[i] = CrewResponse{Name: c.Name, Job: c.Job, ProfileURL: c.ProfileURL}
	}

	return &MovieDetailResponse{
		ID:             detail.ID,
		Title:          detail.Title,
		PosterURL:      detail.PosterURL,
		Overview:       detail.Overview,
		Tagline:        detail.Tagline,
		ReleaseDate:    detail.ReleaseDate,
		Rating:         detail.Rating,
		RuntimeMinutes: detail.RuntimeMinutes,
		Duration:       booking.DurationLabel(detail.RuntimeMinutes),
		Genres:         genres,
		Cast:           cast,
		Crew:           crew,
	}
}
