package testsupport

import (
	"context"
	"fmt"

	"cinelog/internal/movie"
	"cinelog/internal/omdb"
)

// StubFetcher is an omdb.Fetcher backed by a fixed title table.
type StubFetcher struct {
	Results map[string]movie.Movie
	Err     error
	Calls   []string
}

// NewStubFetcher returns a StubFetcher that knows the given movies, keyed by
// normalized title.
func NewStubFetcher(movies ...movie.Movie) *StubFetcher {
	results := make(map[string]movie.Movie, len(movies))
	for _, m := range movies {
		results[m.Key()] = m
	}
	return &StubFetcher{Results: results}
}

// Fetch returns the configured error, the known movie, or omdb.ErrNotFound.
func (f *StubFetcher) Fetch(_ context.Context, title string) (movie.Movie, error) {
	f.Calls = append(f.Calls, title)
	if f.Err != nil {
		return movie.Movie{}, f.Err
	}
	if m, ok := f.Results[movie.NormalizeTitle(title)]; ok {
		return m, nil
	}
	return movie.Movie{}, fmt.Errorf("%w: %q", omdb.ErrNotFound, title)
}

// Movie is a shorthand constructor for test records.
func Movie(title, year string, rating float64) movie.Movie {
	return movie.Movie{
		Title:      title,
		Year:       year,
		Rating:     movie.ClampRating(rating),
		ExternalID: "tt" + fmt.Sprintf("%07d", len(title)),
	}
}
