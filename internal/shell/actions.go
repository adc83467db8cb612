package shell

import (
	"context"
	"errors"
	"fmt"

	"cinelog/internal/logging"
)

// List prints the movie count followed by every movie.
func (s *Shell) List(ctx context.Context) error {
	listing, err := s.catalog.List(ctx)
	if err != nil {
		return err
	}
	fprintln(s.out, fmt.Sprintf("%d movies in total", listing.Count))
	if listing.Count > 0 {
		fprintln(s.out, renderMovieTable(listing.Movies))
	}
	return nil
}

// Add looks up title and adds it to the catalog.
func (s *Shell) Add(ctx context.Context, title string) error {
	added, err := s.catalog.Add(ctx, title)
	if err != nil {
		return err
	}
	fprintln(s.out, renderStatusLine(statusOK,
		fmt.Sprintf("Movie '%s' was added to the catalog.", added.Title), s.colorize))
	fprintln(s.out, added.String())
	return nil
}

// Delete removes title from the catalog.
func (s *Shell) Delete(ctx context.Context, title string) error {
	removed, err := s.catalog.Delete(ctx, title)
	if err != nil {
		return err
	}
	fprintln(s.out, renderStatusLine(statusOK,
		fmt.Sprintf("Movie '%s' successfully deleted.", removed.Title), s.colorize))
	return nil
}

// Stats prints average, median, best, and worst ratings.
func (s *Shell) Stats(ctx context.Context) error {
	stats, err := s.catalog.Stats(ctx)
	if err != nil {
		return err
	}
	lines := []string{
		fmt.Sprintf("Average rating: %s", formatDecimal(stats.RoundedMean())),
		fmt.Sprintf("Median rating: %s", formatDecimal(stats.Median)),
		fmt.Sprintf("Best Movie: %s, %s", stats.Best.Title, stats.Best.Rating),
		fmt.Sprintf("Worst Movie: %s, %s", stats.Worst.Title, stats.Worst.Rating),
	}
	for _, line := range lines {
		fprintln(s.out, renderStatusLine(statusInfo, line, s.colorize))
	}
	return nil
}

// Random prints one randomly chosen movie.
func (s *Shell) Random(ctx context.Context) error {
	picked, err := s.catalog.RandomPick(ctx)
	if err != nil {
		return err
	}
	fprintln(s.out, renderStatusLine(statusInfo,
		fmt.Sprintf("Your movie for tonight: %s, it's rated %s", picked.Title, picked.Rating), s.colorize))
	return nil
}

// Search prints the movies whose titles resemble query.
func (s *Shell) Search(ctx context.Context, query string) error {
	matches, err := s.catalog.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fprintln(s.out, "No movies found.")
		return nil
	}
	fprintln(s.out, fmt.Sprintf("Found %d movies:", len(matches)))
	fprintln(s.out, renderMovieTable(matches))
	return nil
}

// Sorted prints every movie, highest rated first.
func (s *Shell) Sorted(ctx context.Context) error {
	sorted, err := s.catalog.SortedByRating(ctx)
	if err != nil {
		return err
	}
	if len(sorted) == 0 {
		fprintln(s.out, "0 movies in total")
		return nil
	}
	fprintln(s.out, renderMovieTable(sorted))
	return nil
}

// GenerateSite renders the catalog to the configured HTML page.
func (s *Shell) GenerateSite(ctx context.Context) error {
	if s.site == nil {
		return errors.New("site generation is not configured")
	}
	listing, err := s.catalog.List(ctx)
	if err != nil {
		return err
	}
	path, err := s.site.Generate(ctx, listing.Movies)
	if err != nil {
		return err
	}
	logging.WithContext(ctx, s.logger).Debug("site written", logging.String("output_path", path))
	fprintln(s.out, renderStatusLine(statusOK, "Website was generated successfully.", s.colorize))
	fprintln(s.out, path)
	return nil
}
