package catalog

import "errors"

var (
	// ErrNotFound reports that the lookup service has no match for a title.
	ErrNotFound = errors.New("movie not found")
	// ErrLookupFailed reports that the lookup service could not be reached or answered with an error.
	ErrLookupFailed = errors.New("movie lookup failed")
	// ErrLookupUnavailable reports that no lookup service is configured.
	ErrLookupUnavailable = errors.New("movie lookup is not configured")
	// ErrDuplicateTitle reports that a movie with the same normalized title already exists.
	ErrDuplicateTitle = errors.New("movie already exists in the catalog")
	// ErrNotInCatalog reports that no catalog entry matches a title.
	ErrNotInCatalog = errors.New("movie does not exist in the catalog")
	// ErrEmptyCatalog reports an operation that needs at least one movie.
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrEmptyTitle reports a blank title argument.
	ErrEmptyTitle = errors.New("title must not be empty")
)

var recoverable = []error{
	ErrNotFound,
	ErrLookupFailed,
	ErrLookupUnavailable,
	ErrDuplicateTitle,
	ErrNotInCatalog,
	ErrEmptyCatalog,
	ErrEmptyTitle,
}

// IsRecoverable reports whether err is an expected outcome the user should be
// told about, as opposed to a failure that should end the session.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range recoverable {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
