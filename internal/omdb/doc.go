// Package omdb provides the minimal Open Movie Database client used when a
// movie is added to the catalog.
//
// A lookup is a single title query. When OMDb answers with Response "False"
// and a no-match message the client returns ErrNotFound; network failures,
// unexpected status codes, undecodable bodies, and any other upstream error
// surface as *TransportError so callers can tell "no such movie" apart from
// "could not ask". Options allow tests to supply custom HTTP clients.
package omdb
