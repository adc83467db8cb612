package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cinelog/internal/logging"
	"cinelog/internal/movie"
)

// ErrNotFound reports that OMDb has no movie matching the requested title.
var ErrNotFound = errors.New("omdb: movie not found")

// TransportError wraps any failure to obtain a usable answer from OMDb.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("omdb %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Fetcher looks up movie metadata by title.
type Fetcher interface {
	Fetch(ctx context.Context, title string) (movie.Movie, error)
}

// Response models the subset of the OMDb title lookup payload cinelog uses.
type Response struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
}

// Found reports whether OMDb flagged the response as a match.
func (r Response) Found() bool {
	return strings.EqualFold(strings.TrimSpace(r.Response), "true")
}

// Movie converts the response into a catalog record.
func (r Response) Movie() movie.Movie {
	return movie.Movie{
		Title:      strings.TrimSpace(r.Title),
		Year:       notAvailable(r.Year),
		Rating:     movie.ParseRating(r.ImdbRating),
		PosterURL:  notAvailable(r.Poster),
		ExternalID: notAvailable(r.ImdbID),
	}
}

// notAvailable maps OMDb's "N/A" placeholder to an empty string.
func notAvailable(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

// Client queries the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "omdb")
	return client, nil
}

// Fetch looks up a single movie by title.
func (c *Client) Fetch(ctx context.Context, title string) (movie.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return movie.Movie{}, errors.New("title must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return movie.Movie{}, &TransportError{Op: "parse url", Err: err}
	}
	params := endpoint.Query()
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return movie.Movie{}, &TransportError{Op: "build request", Err: err}
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return movie.Movie{}, &TransportError{Op: "request", Err: fmt.Errorf("latency=%v: %w", latency, err)}
	}
	defer resp.Body.Close()

	var payload Response
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode != http.StatusOK {
		detail := strings.TrimSpace(payload.Error)
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return movie.Movie{}, &TransportError{
			Op:  "request",
			Err: fmt.Errorf("status %d: %s (latency=%v)", resp.StatusCode, detail, latency),
		}
	}
	if decodeErr != nil {
		return movie.Movie{}, &TransportError{Op: "decode response", Err: decodeErr}
	}

	c.logger.Debug("omdb lookup completed",
		logging.String("title", title),
		logging.Bool("found", payload.Found()),
		logging.Duration("latency", latency))

	if !payload.Found() {
		if isNoMatch(payload.Error) {
			return movie.Movie{}, fmt.Errorf("%w: %q", ErrNotFound, title)
		}
		return movie.Movie{}, &TransportError{Op: "lookup", Err: errors.New(strings.TrimSpace(payload.Error))}
	}

	result := payload.Movie()
	if result.Title == "" {
		return movie.Movie{}, &TransportError{Op: "decode response", Err: errors.New("response missing title")}
	}
	return result, nil
}

// isNoMatch reports whether an OMDb error message means the title is unknown.
// An empty message is treated as a miss as well.
func isNoMatch(message string) bool {
	message = strings.ToLower(strings.TrimSpace(message))
	return message == "" || strings.Contains(message, "not found")
}
