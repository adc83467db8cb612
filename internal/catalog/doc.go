// Package catalog owns the movie list: it validates additions, deletes by
// normalized title, and answers the read-side questions the CLI asks
// (listing, statistics, random pick, fuzzy search, rating order).
//
// A Service is built from an injected storage.Backend and omdb.Fetcher. Every
// operation loads the catalog fresh from the backend, and only Add and Delete
// write it back. Recoverable outcomes are reported through the sentinel
// errors in errors.go; anything else (typically storage I/O) is returned
// wrapped and should be treated as fatal by callers.
package catalog
