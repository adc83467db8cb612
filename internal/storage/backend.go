package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cinelog/internal/config"
	"cinelog/internal/movie"
)

// Backend loads and saves the complete catalog.
type Backend interface {
	Load(ctx context.Context) ([]movie.Movie, error)
	Save(ctx context.Context, movies []movie.Movie) error
}

// Format names a catalog encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

// ErrUnknownFormat is returned for unsupported catalog formats.
var ErrUnknownFormat = errors.New("unknown catalog format")

// ParseFormat validates a format name. An empty name infers the format from
// the catalog path extension.
func ParseFormat(name, path string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return InferFormat(path)
	}
	switch Format(name) {
	case FormatJSON, FormatYAML, FormatCSV, FormatSQLite:
		return Format(name), nil
	case "yml":
		return FormatYAML, nil
	case "sqlite3", "db":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// InferFormat maps a file extension to a format.
func InferFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: cannot infer from %q", ErrUnknownFormat, path)
}

// New constructs the backend for format at path.
func New(format Format, path string) (Backend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog path required")
	}
	switch format {
	case FormatJSON:
		return NewJSONStore(path), nil
	case FormatYAML:
		return NewYAMLStore(path), nil
	case FormatCSV:
		return NewCSVStore(path), nil
	case FormatSQLite:
		return OpenSQLiteStore(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Open constructs the backend described by the catalog configuration.
func Open(cfg *config.Config) (Backend, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	format, err := ParseFormat(cfg.Catalog.Format, cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	return New(format, cfg.Catalog.Path)
}

// Close releases backend resources when the backend holds any.
func Close(backend Backend) error {
	if closer, ok := backend.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
