// Package main hosts the cinelog CLI entrypoint and command graph.
//
// Running cinelog with no subcommand opens the interactive menu. The
// subcommands expose the same catalog actions for scripting, plus site and
// configuration utilities. Configuration resolution, logger construction,
// the catalog lock, and backend selection all happen in commandContext so
// individual commands only describe their output.
package main
