package catalog

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"cinelog/internal/movie"
	"cinelog/internal/textutil"
)

// SearchThreshold is the minimum token-sort similarity (0-100) for a title to
// match a search query.
const SearchThreshold = 50

// Search returns, in catalog order, the movies whose title scores at least
// SearchThreshold against query under textutil.TokenSortRatio. No match is
// not an error.
func (s *Service) Search(ctx context.Context, query string) ([]movie.Movie, error) {
	movies, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	matches := []movie.Movie{}
	if query == "" {
		return matches, nil
	}
	for _, m := range movies {
		if textutil.TokenSortRatio(query, m.Title) >= SearchThreshold {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// SortedByRating returns every movie ordered by rating, highest first. Movies
// with equal ratings keep their catalog order.
func (s *Service) SortedByRating(ctx context.Context) ([]movie.Movie, error) {
	movies, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(movies)
	slices.SortStableFunc(sorted, func(a, b movie.Movie) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	return sorted, nil
}
