// Package shell implements the interactive catalog menu and the output
// formatting shared with the scripted cinelog subcommands.
//
// Run drives an iterative read-dispatch-print loop over a fixed numbered
// menu. Each action method (List, Add, Delete, Stats, Random, Search, Sorted,
// GenerateSite) writes human-readable output and returns recoverable catalog
// errors to the caller, which decides whether to print them and continue
// (the menu) or exit non-zero (subcommands).
package shell
