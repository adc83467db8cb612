package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cinelog/internal/catalog"
	"cinelog/internal/config"
	"cinelog/internal/logging"
	"cinelog/internal/omdb"
	"cinelog/internal/shell"
	"cinelog/internal/site"
	"cinelog/internal/storage"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// session holds everything a catalog command needs for one invocation.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	logs    io.Closer
	lock    *storage.Lock
	backend storage.Backend
	catalog *catalog.Service
	site    *site.Generator
	shell   *shell.Shell
}

func (c *commandContext) openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, logCloser, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	lock, err := storage.AcquireLock(cfg.Catalog.Path)
	if err != nil {
		_ = logCloser.Close()
		if errors.Is(err, storage.ErrLocked) {
			return nil, fmt.Errorf("%w; close the other session and retry", err)
		}
		return nil, err
	}

	backend, err := storage.Open(cfg)
	if err != nil {
		_ = lock.Release()
		_ = logCloser.Close()
		return nil, fmt.Errorf("open catalog %s: %w", cfg.Catalog.Path, err)
	}

	var lookup omdb.Fetcher
	if cfg.HasLookup() {
		client, err := omdb.New(cfg.OMDb.APIKey, cfg.OMDb.BaseURL,
			omdb.WithTimeout(cfg.LookupTimeout()),
			omdb.WithLogger(logger))
		if err != nil {
			_ = storage.Close(backend)
			_ = lock.Release()
			_ = logCloser.Close()
			return nil, fmt.Errorf("init omdb client: %w", err)
		}
		lookup = client
	} else {
		logger.Debug("omdb api key not configured; adding movies is disabled")
	}

	svc, err := catalog.New(backend, lookup, catalog.WithLogger(logger))
	if err != nil {
		_ = storage.Close(backend)
		_ = lock.Release()
		_ = logCloser.Close()
		return nil, err
	}

	gen, err := site.NewGenerator(cfg.Site, logger)
	if err != nil {
		_ = storage.Close(backend)
		_ = lock.Release()
		_ = logCloser.Close()
		return nil, err
	}

	sh := shell.New(svc,
		shell.WithSite(gen),
		shell.WithLogger(logger),
		shell.WithInput(cmd.InOrStdin()),
		shell.WithOutput(cmd.OutOrStdout()),
	)

	logger.Debug("session opened",
		logging.String("catalog_path", cfg.Catalog.Path),
		logging.String("command", cmd.CommandPath()))

	return &session{
		cfg:     cfg,
		logger:  logger,
		logs:    logCloser,
		lock:    lock,
		backend: backend,
		catalog: svc,
		site:    gen,
		shell:   sh,
	}, nil
}

func (s *session) Close() error {
	return errors.Join(storage.Close(s.backend), s.lock.Release(), s.logs.Close())
}

func (c *commandContext) withSession(cmd *cobra.Command, fn func(*session) error) error {
	s, err := c.openSession(cmd)
	if err != nil {
		return err
	}
	runErr := fn(s)
	if closeErr := s.Close(); closeErr != nil && runErr == nil {
		return closeErr
	}
	return runErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
