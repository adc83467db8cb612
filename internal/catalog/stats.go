package catalog

import (
	"context"
	"math"
	"slices"

	"cinelog/internal/movie"
)

// Ranked pairs a title with its rating.
type Ranked struct {
	Title  string
	Rating movie.Rating
}

// Stats summarizes catalog ratings.
type Stats struct {
	Count  int
	Mean   float64
	Median float64
	Best   Ranked
	Worst  Ranked
}

// RoundedMean returns the mean rounded to three decimal places for display.
func (s Stats) RoundedMean() float64 {
	return math.Round(s.Mean*1000) / 1000
}

// Stats computes mean, median, best, and worst over every movie's rating.
// Ties for best or worst go to the movie that appears first in the catalog.
// An empty catalog yields ErrEmptyCatalog.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	movies, err := s.load(ctx)
	if err != nil {
		return Stats{}, err
	}
	return computeStats(movies)
}

func computeStats(movies []movie.Movie) (Stats, error) {
	if len(movies) == 0 {
		return Stats{}, ErrEmptyCatalog
	}

	ratings := make([]float64, len(movies))
	var sum float64
	best, worst := movies[0], movies[0]
	for i, m := range movies {
		r := m.Rating.Float()
		ratings[i] = r
		sum += r
		if r > best.Rating.Float() {
			best = m
		}
		if r < worst.Rating.Float() {
			worst = m
		}
	}

	return Stats{
		Count:  len(movies),
		Mean:   sum / float64(len(movies)),
		Median: median(ratings),
		Best:   Ranked{Title: best.Title, Rating: best.Rating},
		Worst:  Ranked{Title: worst.Title, Rating: worst.Rating},
	}, nil
}

func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
