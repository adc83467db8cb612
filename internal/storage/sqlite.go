package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"cinelog/internal/movie"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS movies (
    position    INTEGER PRIMARY KEY,
    title       TEXT NOT NULL,
    year        TEXT NOT NULL DEFAULT '',
    rating      REAL NOT NULL DEFAULT 0,
    poster_url  TEXT NOT NULL DEFAULT '',
    external_id TEXT NOT NULL DEFAULT ''
)`

// SQLiteStore keeps the catalog in a SQLite table, one row per movie, ordered
// by position.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Backend = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (creating if needed) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create movies table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns every row in position order.
func (s *SQLiteStore) Load(ctx context.Context) ([]movie.Movie, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, year, rating, poster_url, external_id FROM movies ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	movies := []movie.Movie{}
	for rows.Next() {
		var (
			m      movie.Movie
			rating float64
		)
		if err := rows.Scan(&m.Title, &m.Year, &rating, &m.PosterURL, &m.ExternalID); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		m.Rating = movie.ClampRating(rating)
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

// Save replaces all rows inside a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, movies []movie.Movie) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return fmt.Errorf("clear movies: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO movies (position, title, year, rating, poster_url, external_id) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range movies {
		if _, err = stmt.ExecContext(ctx, i, m.Title, m.Year, m.Rating.Float(), m.PosterURL, m.ExternalID); err != nil {
			return fmt.Errorf("insert %q: %w", m.Title, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
