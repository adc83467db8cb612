package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"cinelog/internal/logging"
	"cinelog/internal/movie"
	"cinelog/internal/omdb"
	"cinelog/internal/storage"
)

// Picker returns an index in [0, n).
type Picker func(n int) int

// Service manages the movie catalog.
type Service struct {
	store  storage.Backend
	lookup omdb.Fetcher
	pick   Picker
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPicker overrides the random index source used by RandomPick.
func WithPicker(pick Picker) Option {
	return func(s *Service) {
		if pick != nil {
			s.pick = pick
		}
	}
}

// New constructs a Service. lookup may be nil, in which case Add reports
// ErrLookupUnavailable.
func New(store storage.Backend, lookup omdb.Fetcher, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("catalog: storage backend required")
	}
	s := &Service{
		store:  store,
		lookup: lookup,
		pick:   rand.IntN,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "catalog")
	return s, nil
}

// Listing is the full catalog with its size.
type Listing struct {
	Movies []movie.Movie
	Count  int
}

// List returns every movie in catalog order.
func (s *Service) List(ctx context.Context) (Listing, error) {
	movies, err := s.load(ctx)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Movies: movies, Count: len(movies)}, nil
}

// Add looks up title and appends the result unless a movie with the same
// normalized title is already present.
func (s *Service) Add(ctx context.Context, title string) (movie.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return movie.Movie{}, ErrEmptyTitle
	}
	if s.lookup == nil {
		return movie.Movie{}, ErrLookupUnavailable
	}
	logger := logging.WithContext(ctx, s.logger)

	found, err := s.lookup.Fetch(ctx, title)
	if err != nil {
		if errors.Is(err, omdb.ErrNotFound) {
			logging.WarnWithContext(logger, "lookup found no match", "catalog_lookup_not_found",
				logging.String("title", title))
			return movie.Movie{}, fmt.Errorf("%w: %q", ErrNotFound, title)
		}
		logging.WarnWithContext(logger, "lookup failed", "catalog_lookup_failed",
			logging.String("title", title),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network access and omdb.api_key"))
		return movie.Movie{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	if strings.TrimSpace(found.Title) == "" {
		found.Title = title
	}

	movies, err := s.load(ctx)
	if err != nil {
		return movie.Movie{}, err
	}
	if existing, ok := findTitle(movies, found.Title); ok {
		logging.WarnWithContext(logger, "duplicate title rejected", "catalog_duplicate",
			logging.String("title", existing.Title))
		return existing, fmt.Errorf("%w: %q", ErrDuplicateTitle, existing.Title)
	}

	movies = append(movies, found)
	if err := s.save(ctx, movies); err != nil {
		return movie.Movie{}, err
	}
	logger.Info("movie added",
		logging.String("title", found.Title),
		logging.String("external_id", found.ExternalID),
		logging.Int("movie_count", len(movies)))
	return found, nil
}

// Delete removes the first movie whose normalized title matches title.
func (s *Service) Delete(ctx context.Context, title string) (movie.Movie, error) {
	if strings.TrimSpace(title) == "" {
		return movie.Movie{}, ErrEmptyTitle
	}
	logger := logging.WithContext(ctx, s.logger)

	movies, err := s.load(ctx)
	if err != nil {
		return movie.Movie{}, err
	}
	key := movie.NormalizeTitle(title)
	for i, m := range movies {
		if m.Key() != key {
			continue
		}
		remaining := make([]movie.Movie, 0, len(movies)-1)
		remaining = append(remaining, movies[:i]...)
		remaining = append(remaining, movies[i+1:]...)
		if err := s.save(ctx, remaining); err != nil {
			return movie.Movie{}, err
		}
		logger.Info("movie deleted",
			logging.String("title", m.Title),
			logging.Int("movie_count", len(remaining)))
		return m, nil
	}
	return movie.Movie{}, fmt.Errorf("%w: %q", ErrNotInCatalog, strings.TrimSpace(title))
}

// RandomPick returns a uniformly chosen movie.
func (s *Service) RandomPick(ctx context.Context) (movie.Movie, error) {
	movies, err := s.load(ctx)
	if err != nil {
		return movie.Movie{}, err
	}
	if len(movies) == 0 {
		return movie.Movie{}, ErrEmptyCatalog
	}
	return movies[s.pick(len(movies))], nil
}

func (s *Service) load(ctx context.Context) ([]movie.Movie, error) {
	movies, err := s.store.Load(ctx)
	if err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "catalog load failed", "catalog_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check catalog.path and file permissions"))
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	s.logger.Debug("catalog loaded", logging.Int("movie_count", len(movies)))
	return movies, nil
}

func (s *Service) save(ctx context.Context, movies []movie.Movie) error {
	if err := s.store.Save(ctx, movies); err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "catalog save failed", "catalog_save_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check catalog.path and file permissions"))
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func findTitle(movies []movie.Movie, title string) (movie.Movie, bool) {
	key := movie.NormalizeTitle(title)
	for _, m := range movies {
		if m.Key() == key {
			return m, true
		}
	}
	return movie.Movie{}, false
}
