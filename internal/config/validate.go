package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

var (
	knownCatalogFormats = map[string]struct{}{
		"": {}, "json": {}, "yaml": {}, "yml": {}, "csv": {}, "sqlite": {}, "sqlite3": {}, "db": {},
	}
	knownCatalogExtensions = map[string]struct{}{
		".json": {}, ".yaml": {}, ".yml": {}, ".csv": {}, ".db": {}, ".sqlite": {}, ".sqlite3": {},
	}
	knownLogLevels = map[string]struct{}{
		"debug": {}, "info": {}, "warn": {}, "error": {},
	}
	knownLogFormats = map[string]struct{}{
		"console": {}, "json": {},
	}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateOMDb(); err != nil {
		return err
	}
	if err := c.validateSite(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return errors.New("catalog.path must be set")
	}
	if _, ok := knownCatalogFormats[c.Catalog.Format]; !ok {
		return fmt.Errorf("catalog.format %q is not supported (use json, yaml, csv, or sqlite)", c.Catalog.Format)
	}
	if c.Catalog.Format == "" {
		ext := strings.ToLower(filepath.Ext(c.Catalog.Path))
		if _, ok := knownCatalogExtensions[ext]; !ok {
			return fmt.Errorf("catalog.format must be set when catalog.path has extension %q", ext)
		}
	}
	return nil
}

func (c *Config) validateOMDb() error {
	parsed, err := url.Parse(c.OMDb.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("omdb.base_url %q must be an absolute URL", c.OMDb.BaseURL)
	}
	if c.OMDb.TimeoutSeconds <= 0 {
		return errors.New("omdb.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSite() error {
	if strings.TrimSpace(c.Site.OutputPath) == "" {
		return errors.New("site.output_path must be set")
	}
	if c.Site.TemplatePath != "" && c.Site.TemplatePath == c.Site.OutputPath {
		return errors.New("site.template_path and site.output_path must differ")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, ok := knownLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format %q is not supported (use console or json)", c.Logging.Format)
	}
	if _, ok := knownLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level %q is not supported (use debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}
