package catalog

import (
	"context"
	"errors"
	"math"
	"testing"

	"cinelog/internal/movie"
	"cinelog/internal/testsupport"
)

func TestStatsTiesGoToFirstRecord(t *testing.T) {
	store := testsupport.NewMemoryStore(
		testsupport.Movie("A", "2000", 9),
		testsupport.Movie("B", "2001", 9),
		testsupport.Movie("C", "2002", 1),
	)
	svc := newService(t, store, nil)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Count != 3 {
		t.Fatalf("Count = %d", stats.Count)
	}
	if math.Abs(stats.Mean-19.0/3.0) > 1e-9 {
		t.Fatalf("Mean = %v", stats.Mean)
	}
	if stats.RoundedMean() != 6.333 {
		t.Fatalf("RoundedMean = %v, want 6.333", stats.RoundedMean())
	}
	if stats.Median != 9 {
		t.Fatalf("Median = %v, want 9", stats.Median)
	}
	if stats.Best != (Ranked{Title: "A", Rating: 9}) {
		t.Fatalf("Best = %+v", stats.Best)
	}
	if stats.Worst != (Ranked{Title: "C", Rating: 1}) {
		t.Fatalf("Worst = %+v", stats.Worst)
	}
}

func TestStatsMedianEvenCount(t *testing.T) {
	store := testsupport.NewMemoryStore(
		testsupport.Movie("A", "", 8),
		testsupport.Movie("B", "", 2),
		testsupport.Movie("C", "", 6),
		testsupport.Movie("D", "", 4),
	)
	svc := newService(t, store, nil)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Median != 5 {
		t.Fatalf("Median = %v, want 5", stats.Median)
	}
	if stats.Best.Title != "A" || stats.Worst.Title != "B" {
		t.Fatalf("best=%q worst=%q", stats.Best.Title, stats.Worst.Title)
	}
	if got := store.Titles(); got[0] != "A" || got[1] != "B" {
		t.Fatalf("Stats reordered the catalog: %v", got)
	}
}

func TestStatsSingleRecord(t *testing.T) {
	store := testsupport.NewMemoryStore(testsupport.Movie("Solo", "2018", 6.9))
	svc := newService(t, store, nil)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Mean != 6.9 || stats.Median != 6.9 {
		t.Fatalf("mean=%v median=%v", stats.Mean, stats.Median)
	}
	if stats.Best.Title != "Solo" || stats.Worst.Title != "Solo" {
		t.Fatalf("best=%q worst=%q", stats.Best.Title, stats.Worst.Title)
	}
}

func TestStatsCoercedRatingsCountAsZero(t *testing.T) {
	store := testsupport.NewMemoryStore(
		movie.Movie{Title: "Good", Rating: movie.ParseRating("8.0")},
		movie.Movie{Title: "Broken", Rating: movie.ParseRating("N/A")},
	)
	svc := newService(t, store, nil)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Mean != 4 {
		t.Fatalf("Mean = %v, want 4", stats.Mean)
	}
	if stats.Worst.Title != "Broken" || stats.Worst.Rating != 0 {
		t.Fatalf("Worst = %+v", stats.Worst)
	}
}

func TestStatsEmptyCatalog(t *testing.T) {
	svc := newService(t, testsupport.NewMemoryStore(), nil)
	if _, err := svc.Stats(context.Background()); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}
