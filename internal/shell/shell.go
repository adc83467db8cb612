package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"cinelog/internal/catalog"
	"cinelog/internal/logging"
	"cinelog/internal/movie"
	"cinelog/internal/site"
)

// Catalog is the subset of catalog.Service the shell drives.
type Catalog interface {
	List(ctx context.Context) (catalog.Listing, error)
	Add(ctx context.Context, title string) (movie.Movie, error)
	Delete(ctx context.Context, title string) (movie.Movie, error)
	Stats(ctx context.Context) (catalog.Stats, error)
	RandomPick(ctx context.Context) (movie.Movie, error)
	Search(ctx context.Context, query string) ([]movie.Movie, error)
	SortedByRating(ctx context.Context) ([]movie.Movie, error)
}

// SiteGenerator renders the catalog to an HTML page.
type SiteGenerator interface {
	Generate(ctx context.Context, movies []movie.Movie) (string, error)
}

var (
	_ Catalog       = (*catalog.Service)(nil)
	_ SiteGenerator = (*site.Generator)(nil)
)

// Shell renders catalog operations for a terminal.
type Shell struct {
	catalog  Catalog
	site     SiteGenerator
	in       *bufio.Reader
	out      io.Writer
	colorize bool
	logger   *slog.Logger
	newID    func() string
}

// Option configures a Shell.
type Option func(*Shell)

// WithInput sets the reader menu choices and prompts are read from.
func WithInput(r io.Reader) Option {
	return func(s *Shell) {
		if r != nil {
			s.in = bufio.NewReader(r)
		}
	}
}

// WithOutput sets the writer all output goes to. Colours follow the writer
// unless WithColor is also given.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) {
		if w != nil {
			s.out = w
			s.colorize = shouldColorize(w)
		}
	}
}

// WithColor forces colour output on or off.
func WithColor(enabled bool) Option {
	return func(s *Shell) {
		s.colorize = enabled
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSite attaches the site generator used by GenerateSite.
func WithSite(gen SiteGenerator) Option {
	return func(s *Shell) {
		if gen != nil {
			s.site = gen
		}
	}
}

// New constructs a Shell reading stdin and writing stdout by default.
func New(cat Catalog, opts ...Option) *Shell {
	s := &Shell{
		catalog:  cat,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		colorize: shouldColorize(os.Stdout),
		logger:   logging.NewNop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "shell")
	return s
}

type menuItem struct {
	label  string
	action string
	run    func(ctx context.Context) error
}

func (s *Shell) menu() []menuItem {
	return []menuItem{
		{label: "Exit", action: "exit"},
		{label: "List movies", action: "list", run: s.List},
		{label: "Add movie", action: "add", run: func(ctx context.Context) error {
			title, err := s.prompt("Enter movie title: ")
			if err != nil {
				return err
			}
			return s.Add(ctx, title)
		}},
		{label: "Delete movie", action: "delete", run: func(ctx context.Context) error {
			title, err := s.prompt("Enter movie name to delete: ")
			if err != nil {
				return err
			}
			return s.Delete(ctx, title)
		}},
		{label: "Stats", action: "stats", run: s.Stats},
		{label: "Random movie", action: "random", run: s.Random},
		{label: "Search movie", action: "search", run: func(ctx context.Context) error {
			query, err := s.prompt("Enter part of movie name: ")
			if err != nil {
				return err
			}
			return s.Search(ctx, query)
		}},
		{label: "Movies sorted by rating", action: "sorted", run: s.Sorted},
		{label: "Generate website", action: "site", run: s.GenerateSite},
	}
}

// Run shows the menu until the user exits, input ends, or a non-recoverable
// error occurs. Exit and end of input both return nil.
func (s *Shell) Run(ctx context.Context) error {
	items := s.menu()
	maxChoice := len(items) - 1

	fprintln(s.out, paint(ansiGreen, "********** My Movies Database **********", s.colorize))
	fprintln(s.out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printMenu(items)

		line, err := s.prompt(fmt.Sprintf("Enter choice (0-%d): ", maxChoice))
		if err != nil {
			return s.finish(err)
		}
		fprintln(s.out)

		choice, err := strconv.Atoi(line)
		if err != nil || choice < 0 || choice > maxChoice {
			fprintln(s.out, renderStatusLine(statusWarn,
				fmt.Sprintf("Invalid choice %q. Enter a number between 0 and %d.", line, maxChoice), s.colorize))
			fprintln(s.out)
			continue
		}
		if choice == 0 {
			fprintln(s.out, "Bye!")
			return nil
		}

		if err := s.dispatch(ctx, items[choice]); err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return s.finish(err)
			case catalog.IsRecoverable(err):
				fprintln(s.out, renderStatusLine(errorStatus(err), Describe(err), s.colorize))
			default:
				return err
			}
		}

		if _, err := s.prompt("Press enter to continue"); err != nil {
			return s.finish(err)
		}
		fprintln(s.out)
	}
}

func (s *Shell) printMenu(items []menuItem) {
	var b strings.Builder
	b.WriteString(" Menu:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "    %d. %s\n", i, item.label)
	}
	fprintln(s.out, paint(ansiYellow, strings.TrimRight(b.String(), "\n"), s.colorize))
	fprintln(s.out)
}

func (s *Shell) dispatch(ctx context.Context, item menuItem) error {
	requestID := s.newID()
	ctx = logging.WithRequestID(ctx, requestID)
	ctx = logging.WithAction(ctx, item.action)
	logger := logging.WithContext(ctx, s.logger)

	start := time.Now()
	logger.Debug("menu action started")
	err := item.run(ctx)
	switch {
	case err == nil:
		logger.Info("menu action completed", logging.Duration("elapsed", time.Since(start)))
	case catalog.IsRecoverable(err), errors.Is(err, io.EOF):
		logger.Info("menu action declined",
			logging.Duration("elapsed", time.Since(start)),
			logging.String("reason", err.Error()))
	default:
		logging.ErrorWithContext(logger, "menu action failed", "menu_action_failed",
			logging.Duration("elapsed", time.Since(start)),
			logging.Error(err))
	}
	return err
}

// finish ends the session: end of input is a normal exit.
func (s *Shell) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fprintln(s.out)
		fprintln(s.out, "Bye!")
		return nil
	}
	return err
}

// prompt prints label and reads one line without its line terminator. A
// final line without a newline is returned normally; io.EOF is returned only
// when no input remains.
func (s *Shell) prompt(label string) (string, error) {
	_, _ = io.WriteString(s.out, paint(ansiCyan, label, s.colorize))
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
