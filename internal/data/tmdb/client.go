package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinemate/internal/data/entity"
	"cinemate/pkg/utils"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	defaultRegion       = "DE"
	defaultMaxAttempts  = 3
	maxCast             = 6
	defaultRetryBase    = 200 * time.Millisecond
	defaultRetryCap     = 1200 * time.Millisecond
)

// APIError is returned when TMDB responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "tmdb api error"
	}
	return fmt.Sprintf("tmdb api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether err is a 404 from TMDB.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// Client fetches movie metadata from the TMDB v3 API.
type Client struct {
	httpClient   *http.Client
	apiKey       string
	baseURL      string
	imageBaseURL string
	region       string
	maxAttempts  int
	retryBase    time.Duration
	retryCap     time.Duration
	log          *zap.Logger
}

// NewClient builds a client from config. If httpClient is nil a client with
// the configured timeout is used.
func NewClient(config utils.TMDBConfig, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	imageBaseURL := strings.TrimRight(config.ImageBaseURL, "/")
	if imageBaseURL == "" {
		imageBaseURL = defaultImageBaseURL
	}

	region := config.Region
	if region == "" {
		region = defaultRegion
	}

	return &Client{
		httpClient:   httpClient,
		apiKey:       config.APIKey,
		baseURL:      baseURL,
		imageBaseURL: imageBaseURL,
		region:       region,
		maxAttempts:  defaultMaxAttempts,
		retryBase:    defaultRetryBase,
		retryCap:     defaultRetryCap,
		log:          log.With(zap.String("client", "tmdb")),
	}
}

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type movieDetails struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Overview    string     `json:"overview"`
	Tagline     string     `json:"tagline"`
	PosterPath  string     `json:"poster_path"`
	ReleaseDate string     `json:"release_date"`
	VoteAverage float64    `json:"vote_average"`
	Runtime     *int       `json:"runtime"`
	Genres      []genreDTO `json:"genres"`
}

type movieResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
}

type movieList struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type movieCredits struct {
	Cast []struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		ProfilePath string `json:"profile_path"`
	} `json:"cast"`
	Crew []struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Job         string `json:"job"`
		ProfilePath string `json:"profile_path"`
	} `json:"crew"`
}

var listPaths = map[entity.MovieList]string{
	entity.MovieListTrending:   "/trending/movie/week",
	entity.MovieListNowPlaying: "/movie/now_playing",
	entity.MovieListUpcoming:   "/movie/upcoming",
}

// GetMovieByID returns nil, nil when TMDB does not know the movie.
func (c *Client) GetMovieByID(ctx context.Context, id int) (*entity.MovieMetadata, error) {
	var details movieDetails
	if err := c.getJSON(ctx, c.endpoint("/movie/"+strconv.Itoa(id), nil), &details); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		c.log.Warn("Failed to fetch movie", zap.Int("movie_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}

	movie := c.toMetadata(details)
	return &movie, nil
}

// ListMovies fetches one page of a listing. Now playing and upcoming are
// restricted to the configured region.
func (c *Client) ListMovies(ctx context.Context, list entity.MovieList, page int) (*entity.MoviePage, error) {
	path, ok := listPaths[list]
	if !ok {
		return nil, fmt.Errorf("unknown movie list %q", list)
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if list != entity.MovieListTrending {
		params.Set("region", c.region)
	}

	var res movieList
	if err := c.getJSON(ctx, c.endpoint(path, params), &res); err != nil {
		c.log.Warn("Failed to fetch movie list",
			zap.String("list", string(list)),
			zap.Int("page", page),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to fetch %s movies: %w", list, err)
	}

	out := &entity.MoviePage{
		Page:         res.Page,
		TotalPages:   res.TotalPages,
		TotalResults: res.TotalResults,
		Results:      make([]entity.MovieSummary, 0, len(res.Results)),
	}
	for _, m := range res.Results {
		out.Results = append(out.Results, entity.MovieSummary{
			ID:          m.ID,
			Title:       m.Title,
			PosterURL:   c.imageURL(m.PosterPath),
			Rating:      m.VoteAverage,
			ReleaseDate: m.ReleaseDate,
			Overview:    m.Overview,
		})
	}
	return out, nil
}

// GetMovieDetail fetches details and credits concurrently. It returns nil,
// nil when TMDB does not know the movie.
func (c *Client) GetMovieDetail(ctx context.Context, id int) (*entity.MovieDetail, error) {
	var (
		details movieDetails
		credits movieCredits
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(gctx, c.endpoint("/movie/"+strconv.Itoa(id), nil), &details)
	})
	g.Go(func() error {
		return c.getJSON(gctx, c.endpoint("/movie/"+strconv.Itoa(id)+"/credits", nil), &credits)
	})
	if err := g.Wait(); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		c.log.Warn("Failed to fetch movie detail", zap.Int("movie_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch movie detail %d: %w", id, err)
	}

	detail := &entity.MovieDetail{
		MovieMetadata: c.toMetadata(details),
		Overview:      details.Overview,
		Tagline:       details.Tagline,
		ReleaseDate:   details.ReleaseDate,
		Rating:        details.VoteAverage,
		Cast:          make([]entity.CastMember, 0, maxCast),
		Crew:          make([]entity.CrewMember, 0),
	}
	for i, p := range credits.Cast {
		if i == maxCast {
			break
		}
		detail.Cast = append(detail.Cast, entity.CastMember{
			ID:         p.ID,
			Name:       p.Name,
			ProfileURL: c.imageURL(p.ProfilePath),
		})
	}
	for _, p := range credits.Crew {
		switch p.Job {
		case "Director", "Producer", "Screenplay":
			detail.Crew = append(detail.Crew, entity.CrewMember{
				ID:         p.ID,
				Name:       p.Name,
				Job:        p.Job,
				ProfileURL: c.imageURL(p.ProfilePath),
			})
		}
	}

	return detail, nil
}

func (c *Client) toMetadata(details movieDetails) entity.MovieMetadata {
	movie := entity.MovieMetadata{
		ID:             details.ID,
		Title:          details.Title,
		PosterURL:      c.imageURL(details.PosterPath),
		RuntimeMinutes: details.Runtime,
		Genres:         make([]entity.Genre, 0, len(details.Genres)),
	}
	for _, g := range details.Genres {
		movie.Genres = append(movie.Genres, entity.Genre{ID: g.ID, Name: g.Name})
	}
	return movie
}

func (c *Client) imageURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	return c.baseURL + path + "?" + params.Encode()
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryBase
	b.MaxInterval = c.retryCap

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, c.fetchOnce(ctx, endpoint, out)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(maxAttempts)),
	)
	return err
}

// fetchOnce performs a single request. Errors that should not be retried
// are wrapped with backoff.Permanent.
func (c *Client) fetchOnce(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create request: %w", redactURLError(err, endpoint)))
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("request failed: %w", redactURLError(err, endpoint))
		if !shouldRetryNetworkError(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))

		apiErr := &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Endpoint:   redactKey(endpoint),
			Body:       strings.TrimSpace(string(snippet)),
		}
		if !shouldRetryStatus(res.StatusCode) {
			return backoff.Permanent(apiErr)
		}
		return apiErr
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return backoff.Permanent(fmt.Errorf("decode movie response: %w", err))
	}
	return nil
}

func shouldRetryStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func shouldRetryNetworkError(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// redactURLError strips the api key from the URL that net/http puts into
// transport errors.
func redactURLError(err error, endpoint string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = redactKey(endpoint)
	}
	return err
}

func redactKey(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "redacted")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
