package ports

import "errors"

var (
	// ErrNotFound reports that no document is stored under the bible key.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited reports that the LLM provider rejected a request for
	// quota reasons. Chat surfaces render it differently from a generic
	// transport failure.
	ErrRateLimited = errors.New("rate limited")
)
