// Package storage persists the movie catalog.
//
// Every encoding implements Backend: Load returns the full record set (empty
// when nothing has been written yet) and Save replaces it atomically. JSON and
// YAML files hold a structured list, CSV holds a flat table, and SQLite keeps
// one row per movie. Callers pick an encoding once through Open or New and
// interact only with the Backend interface afterwards.
//
// AcquireLock guards a catalog against a second cinelog process; it is not a
// concurrency primitive for goroutines.
package storage
