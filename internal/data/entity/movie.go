package entity

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieMetadata is the subset of movie details a ticket is built from.
type MovieMetadata struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	PosterURL      string  `json:"poster_url"`
	RuntimeMinutes *int    `json:"runtime_minutes,omitempty"`
	Genres         []Genre `json:"genres"`
}

// MovieList names one of the catalogue listings.
type MovieList string

const (
	MovieListTrending   MovieList = "trending"
	MovieListNowPlaying MovieList = "now_playing"
	MovieListUpcoming   MovieList = "upcoming"
)

// Valid reports whether l is a known listing.
func (l MovieList) Valid() bool {
	switch l {
	case MovieListTrending, MovieListNowPlaying, MovieListUpcoming:
		return true
	}
	return false
}

type MovieSummary struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"poster_url"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
}

// MoviePage is one page of a listing. Page numbers start at 1.
type MoviePage struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	Results      []MovieSummary `json:"results"`
}

type CastMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ProfileURL string `json:"profile_url"`
}

type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	ProfileURL string `json:"profile_url"`
}

// MovieDetail is the full movie page: metadata plus credits.
type MovieDetail struct {
	MovieMetadata
	Overview    string       `json:"overview"`
	Tagline     string       `json:"tagline"`
	ReleaseDate string       `json:"release_date"`
	Rating      float64      `json:"rating"`
	Cast        []CastMember `json:"cast"`
	Crew        []CrewMember `json:"crew"`
}
