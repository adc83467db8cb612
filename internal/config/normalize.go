package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	c.normalizeOMDb()
	if err := c.normalizeSite(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

// envOverride returns the trimmed value of name when it is set and non-blank.
// Non-blank environment values take precedence over the config file.
func envOverride(name string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(name))
	return value, value != ""
}

func (c *Config) normalizeCatalog() error {
	var err error
	if value, ok := envOverride("CINELOG_CATALOG"); ok {
		c.Catalog.Path = value
	}
	if strings.TrimSpace(c.Catalog.Path) == "" {
		c.Catalog.Path = defaultCatalogPath
	}
	if c.Catalog.Path, err = expandPath(strings.TrimSpace(c.Catalog.Path)); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	c.Catalog.Format = strings.ToLower(strings.TrimSpace(c.Catalog.Format))
	return nil
}

func (c *Config) normalizeOMDb() {
	c.OMDb.APIKey = strings.TrimSpace(c.OMDb.APIKey)
	if value, ok := envOverride("OMDB_API_KEY"); ok {
		c.OMDb.APIKey = value
	}
	c.OMDb.BaseURL = strings.TrimSpace(c.OMDb.BaseURL)
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = defaultOMDbBaseURL
	}
	if c.OMDb.TimeoutSeconds <= 0 {
		c.OMDb.TimeoutSeconds = defaultOMDbTimeoutSeconds
	}
}

func (c *Config) normalizeSite() error {
	var err error
	c.Site.TemplatePath = strings.TrimSpace(c.Site.TemplatePath)
	if c.Site.TemplatePath != "" {
		if c.Site.TemplatePath, err = expandPath(c.Site.TemplatePath); err != nil {
			return fmt.Errorf("site.template_path: %w", err)
		}
	}
	if strings.TrimSpace(c.Site.OutputPath) == "" {
		c.Site.OutputPath = defaultSiteOutputPath
	}
	if c.Site.OutputPath, err = expandPath(strings.TrimSpace(c.Site.OutputPath)); err != nil {
		return fmt.Errorf("site.output_path: %w", err)
	}
	c.Site.DetailURL = strings.TrimSpace(c.Site.DetailURL)
	if c.Site.DetailURL == "" {
		c.Site.DetailURL = defaultSiteDetailURL
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	}
	c.Logging.Dir = strings.TrimSpace(c.Logging.Dir)
	if c.Logging.Dir != "" {
		var err error
		if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	return nil
}
