// Package logging assembles structured slog loggers and formatting helpers used
// across cinelog.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so each catalog action can tag its log
// lines with a request ID. The package also provides a no-op logger for tests
// and wiring code that cannot fail.
//
// The interactive menu owns the terminal, so loggers built from configuration
// write to a file under the log directory rather than to stdout.
package logging
