package site

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cinelog/internal/config"
	"cinelog/internal/fileutil"
	"cinelog/internal/logging"
	"cinelog/internal/movie"
)

//go:embed assets/index_template.html
var defaultTemplate string

// ErrTemplateExists is returned by WriteDefaultTemplate when the target file
// exists and overwrite was not requested.
var ErrTemplateExists = errors.New("template already exists")

// DefaultTemplate returns the embedded gallery template.
func DefaultTemplate() string {
	return defaultTemplate
}

// Generator writes the gallery to disk.
type Generator struct {
	templatePath string
	outputPath   string
	detailURL    string
	logger       *slog.Logger
}

// NewGenerator builds a Generator from the site configuration.
func NewGenerator(cfg config.Site, logger *slog.Logger) (*Generator, error) {
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return nil, errors.New("site: output path required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{
		templatePath: cfg.TemplatePath,
		outputPath:   cfg.OutputPath,
		detailURL:    cfg.DetailURL,
		logger:       logging.NewComponentLogger(logger, "site"),
	}, nil
}

// OutputPath returns where Generate writes the gallery.
func (g *Generator) OutputPath() string {
	return g.outputPath
}

// Generate renders movies into the template and replaces the output file.
// It returns the written path.
func (g *Generator) Generate(ctx context.Context, movies []movie.Movie) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	logger := logging.WithContext(ctx, g.logger)
	start := time.Now()

	tmpl, source, err := g.loadTemplate()
	if err != nil {
		logging.ErrorWithContext(logger, "template load failed", "site_template_failed",
			logging.String("template_path", g.templatePath),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run `cinelog site init-template` or fix site.template_path"))
		return "", err
	}
	if !strings.Contains(tmpl, Placeholder) {
		logging.WarnWithContext(logger, "template has no movie grid placeholder", "site_placeholder_missing",
			logging.String("template", source),
			logging.String("placeholder", Placeholder),
			logging.String(logging.FieldImpact, "generated page will not list any movies"))
	}

	page := Render(tmpl, movies, RenderOptions{DetailURL: g.detailURL})
	if err := fileutil.WriteFileAtomic(g.outputPath, []byte(page), 0o644); err != nil {
		return "", fmt.Errorf("write site %s: %w", g.outputPath, err)
	}

	logger.Info("site generated",
		logging.String("output_path", g.outputPath),
		logging.String("template", source),
		logging.Int("movie_count", len(movies)),
		logging.Duration("elapsed", time.Since(start)))
	return g.outputPath, nil
}

func (g *Generator) loadTemplate() (string, string, error) {
	if strings.TrimSpace(g.templatePath) == "" {
		return defaultTemplate, "embedded", nil
	}
	data, err := os.ReadFile(g.templatePath)
	if err != nil {
		return "", "", fmt.Errorf("read template %s: %w", g.templatePath, err)
	}
	return string(data), g.templatePath, nil
}

// WriteDefaultTemplate writes the embedded template to path so it can be
// customized.
func WriteDefaultTemplate(path string, overwrite bool) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("template path required")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrTemplateExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat template: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create template directory: %w", err)
	}
	return fileutil.WriteFileAtomic(path, []byte(defaultTemplate), 0o644)
}
