package config

const (
	defaultConfigPath         = "~/.config/cinelog/config.toml"
	defaultCatalogPath        = "~/.local/share/cinelog/movies.json"
	defaultCatalogFormat      = ""
	defaultOMDbBaseURL        = "https://www.omdbapi.com/"
	defaultOMDbTimeoutSeconds = 10
	defaultSiteOutputPath     = "~/.local/share/cinelog/site/index.html"
	defaultSiteDetailURL      = "https://www.imdb.com/title/"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogDir             = "~/.local/share/cinelog/logs"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Catalog: Catalog{
			Path:   defaultCatalogPath,
			Format: defaultCatalogFormat,
		},
		OMDb: OMDb{
			BaseURL:        defaultOMDbBaseURL,
			TimeoutSeconds: defaultOMDbTimeoutSeconds,
		},
		Site: Site{
			OutputPath: defaultSiteOutputPath,
			DetailURL:  defaultSiteDetailURL,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
