package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"cinelog/internal/fileutil"
	"cinelog/internal/movie"
)

var csvHeader = []string{"title", "year", "rating", "poster_url", "external_id"}

// CSVStore keeps the catalog as a comma-separated table with a header row.
type CSVStore struct {
	path string
}

var _ Backend = (*CSVStore)(nil)

// NewCSVStore returns a store backed by the file at path.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load reads the catalog. Columns are located by header name so files with
// reordered or extra columns still load; a missing or empty file yields an
// empty catalog.
func (s *CSVStore) Load(ctx context.Context) ([]movie.Movie, error) {
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

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("parse catalog header %s: %w", s.path, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	if _, ok := columns["title"]; !ok {
		return nil, fmt.Errorf("parse catalog %s: missing title column", s.path)
	}
	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	movies := []movie.Movie{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", s.path, err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		movies = append(movies, movie.Movie{
			Title:      field(row, "title"),
			Year:       field(row, "year"),
			Rating:     movie.ParseRating(field(row, "rating")),
			PosterURL:  field(row, "poster_url"),
			ExternalID: firstNonEmpty(field(row, "external_id"), field(row, "imdb_id")),
		})
	}
	return movies, nil
}

// Save replaces the catalog file.
func (s *CSVStore) Save(ctx context.Context, movies []movie.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	for _, m := range movies {
		row := []string{m.Title, m.Year, m.Rating.String(), m.PosterURL, m.ExternalID}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
