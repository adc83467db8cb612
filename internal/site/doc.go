// Package site renders the catalog as a static HTML gallery.
//
// Rendering is plain placeholder substitution: the template's
// __TEMPLATE_MOVIE_GRID__ marker is replaced by one escaped fragment per
// movie. The Generator reads the configured template (or the embedded
// default), renders it, and atomically replaces the output file.
package site
