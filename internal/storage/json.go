package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"cinelog/internal/fileutil"
	"cinelog/internal/movie"
)

// JSONStore keeps the catalog as an indented JSON array.
type JSONStore struct {
	path string
}

var _ Backend = (*JSONStore)(nil)

// NewJSONStore returns a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file path.
func (s *JSONStore) Path() string { return s.path }

// Load reads the catalog. A missing or empty file yields an empty catalog.
func (s *JSONStore) Load(ctx context.Context) ([]movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok, err := fileutil.ReadFileIfExists(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if !ok || len(bytes.TrimSpace(data)) == 0 {
		return []movie.Movie{}, nil
	}
	var movies []movie.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", s.path, err)
	}
	if movies == nil {
		movies = []movie.Movie{}
	}
	return movies, nil
}

// Save replaces the catalog file.
func (s *JSONStore) Save(ctx context.Context, movies []movie.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if movies == nil {
		movies = []movie.Movie{}
	}
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
