package storage

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"cinelog/internal/fileutil"
	"cinelog/internal/movie"
)

// YAMLStore keeps the catalog as a YAML sequence.
type YAMLStore struct {
	path string
}

var _ Backend = (*YAMLStore)(nil)

// NewYAMLStore returns a store backed by the file at path.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

type yamlRecord struct {
	Title      string     `yaml:"title"`
	Year       string     `yaml:"year,omitempty"`
	Rating     yamlRating `yaml:"rating"`
	PosterURL  string     `yaml:"poster_url,omitempty"`
	ExternalID string     `yaml:"external_id,omitempty"`
}

// yamlRating decodes any scalar through movie.ParseRating so hand-edited
// values such as "N/A" coerce to zero instead of failing the whole file.
type yamlRating float64

func (r *yamlRating) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*r = 0
		return nil
	}
	*r = yamlRating(movie.ParseRating(node.Value))
	return nil
}

// Load reads the catalog. A missing or empty file yields an empty catalog.
func (s *YAMLStore) Load(ctx context.Context) ([]movie.Movie, error) {
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
	var records []yamlRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", s.path, err)
	}
	movies := make([]movie.Movie, 0, len(records))
	for _, rec := range records {
		movies = append(movies, movie.Movie{
			Title:      rec.Title,
			Year:       rec.Year,
			Rating:     movie.Rating(rec.Rating),
			PosterURL:  rec.PosterURL,
			ExternalID: rec.ExternalID,
		})
	}
	return movies, nil
}

// Save replaces the catalog file.
func (s *YAMLStore) Save(ctx context.Context, movies []movie.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	records := make([]yamlRecord, 0, len(movies))
	for _, m := range movies {
		records = append(records, yamlRecord{
			Title:      m.Title,
			Year:       m.Year,
			Rating:     yamlRating(m.Rating),
			PosterURL:  m.PosterURL,
			ExternalID: m.ExternalID,
		})
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
