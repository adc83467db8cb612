// Package textutil provides the tokenization and fuzzy similarity scoring used
// by catalog search.
//
// Scores are integers on a 0-100 scale. TokenSortRatio lowercases both inputs,
// splits them on anything that is not a letter or digit, sorts the tokens, and
// compares the rejoined strings by longest common subsequence. A query that
// reorders or slightly misspells the words of a title still scores high, while
// unrelated strings score near zero.
package textutil
