package testsupport

import (
	"context"
	"slices"

	"cinelog/internal/movie"
)

// MemoryStore is an in-memory storage.Backend for tests.
type MemoryStore struct {
	Movies  []movie.Movie
	Saves   int
	LoadErr error
	SaveErr error
}

// NewMemoryStore seeds a MemoryStore with movies.
func NewMemoryStore(movies ...movie.Movie) *MemoryStore {
	return &MemoryStore{Movies: slices.Clone(movies)}
}

// Load returns a copy of the stored movies.
func (s *MemoryStore) Load(context.Context) ([]movie.Movie, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.Movies == nil {
		return []movie.Movie{}, nil
	}
	return slices.Clone(s.Movies), nil
}

// Save replaces the stored movies and counts the call.
func (s *MemoryStore) Save(_ context.Context, movies []movie.Movie) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saves++
	s.Movies = slices.Clone(movies)
	return nil
}

// Titles returns the stored titles in order.
func (s *MemoryStore) Titles() []string {
	titles := make([]string, 0, len(s.Movies))
	for _, m := range s.Movies {
		titles = append(titles, m.Title)
	}
	return titles
}
