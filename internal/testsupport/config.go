package testsupport

import (
	"path/filepath"
	"testing"

	"cinelog/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Catalog.Path = filepath.Join(base, "data", "movies.json")
	cfgVal.Catalog.Format = "json"
	cfgVal.OMDb.APIKey = "test"
	cfgVal.Site.OutputPath = filepath.Join(base, "site", "index.html")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCatalog points the catalog at a file named name inside the test
// directory and sets its format.
func WithCatalog(name, format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Path = filepath.Join(b.baseDir, "data", name)
		b.cfg.Catalog.Format = format
	}
}

// WithOMDb sets the lookup API key and base URL on the test config.
func WithOMDb(apiKey, baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OMDb.APIKey = apiKey
		if baseURL != "" {
			b.cfg.OMDb.BaseURL = baseURL
		}
	}
}

// WithTemplate sets the site template path.
func WithTemplate(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Site.TemplatePath = path
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Catalog.Path))
}
