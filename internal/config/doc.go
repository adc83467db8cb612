// Package config loads, normalizes, and validates cinelog configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OMDB_API_KEY and CINELOG_CATALOG. The Config type centralizes the catalog
// location and encoding, the OMDb lookup settings, the HTML gallery paths, and
// logging.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical enum values, and clear validation errors.
package config
