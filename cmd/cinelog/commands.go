package main

import (
	"strings"

	"github.com/spf13/cobra"

	"cinelog/internal/catalog"
	"cinelog/internal/movie"
)

type listJSON struct {
	Count  int           `json:"count"`
	Movies []movie.Movie `json:"movies"`
}

type rankedJSON struct {
	Title  string       `json:"title"`
	Rating movie.Rating `json:"rating"`
}

type statsJSON struct {
	Count  int        `json:"count"`
	Mean   float64    `json:"mean"`
	Median float64    `json:"median"`
	Best   rankedJSON `json:"best"`
	Worst  rankedJSON `json:"worst"`
}

func newCatalogCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newListCommand(ctx),
		newAddCommand(ctx),
		newDeleteCommand(ctx),
		newStatsCommand(ctx),
		newRandomCommand(ctx),
		newSearchCommand(ctx),
		newSortedCommand(ctx),
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every movie in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				if !asJSON {
					return s.shell.List(cmd.Context())
				}
				listing, err := s.catalog.List(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd, listJSON{Count: listing.Count, Movies: listing.Movies})
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add TITLE",
		Short: "Look up a movie on OMDb and add it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				return s.shell.Add(cmd.Context(), strings.Join(args, " "))
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete TITLE",
		Aliases: []string{"rm"},
		Short:   "Remove a movie by title",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				return s.shell.Delete(cmd.Context(), strings.Join(args, " "))
			})
		},
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show rating statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				if !asJSON {
					return s.shell.Stats(cmd.Context())
				}
				stats, err := s.catalog.Stats(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd, toStatsJSON(stats))
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func toStatsJSON(stats catalog.Stats) statsJSON {
	return statsJSON{
		Count:  stats.Count,
		Mean:   stats.RoundedMean(),
		Median: stats.Median,
		Best:   rankedJSON{Title: stats.Best.Title, Rating: stats.Best.Rating},
		Worst:  rankedJSON{Title: stats.Worst.Title, Rating: stats.Worst.Rating},
	}
}

func newRandomCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Pick a random movie for tonight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				return s.shell.Random(cmd.Context())
			})
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Fuzzy-search titles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return ctx.withSession(cmd, func(s *session) error {
				if !asJSON {
					return s.shell.Search(cmd.Context(), query)
				}
				matches, err := s.catalog.Search(cmd.Context(), query)
				if err != nil {
					return err
				}
				return writeJSON(cmd, listJSON{Count: len(matches), Movies: matches})
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newSortedCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "sorted",
		Short: "List movies by rating, highest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd, func(s *session) error {
				if !asJSON {
					return s.shell.Sorted(cmd.Context())
				}
				sorted, err := s.catalog.SortedByRating(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd, listJSON{Count: len(sorted), Movies: sorted})
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
