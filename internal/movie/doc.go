// Package movie defines the catalog record shared by storage, lookup, and
// presentation code.
//
// Titles are compared after trimming and Unicode case folding, and ratings are
// coerced into the [0, 10] range instead of failing: a malformed rating read
// from disk or from the lookup service becomes 0.0 so listings and statistics
// never abort on bad data.
package movie
