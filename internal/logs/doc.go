// Package logs reads the cinelog log file for the `cinelog logs` command.
//
// Last returns the trailing lines of a file with bounded memory, Since reads
// whatever was appended after a byte offset, and Follow polls for new lines
// until its context is cancelled. A missing file reads as empty so the
// command works before the first session has logged anything.
package logs
