package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrQuery matches any *QueryError with errors.Is.
	ErrQuery = errors.New("catalog: query failed")

	// ErrNotFound is returned by GetGame when no game has the requested id.
	ErrNotFound = errors.New("catalog: game not found")

	// ErrInvalidID is returned by GetGame for ids that cannot exist.
	ErrInvalidID = errors.New("catalog: invalid game id")
)

// QueryError reports a non-success response from the IGDB API.
type QueryError struct {
	Endpoint   string
	StatusCode int
	// Body holds the start of the response body, which IGDB fills with a JSON error description.
	Body string
}

func (e *QueryError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("catalog: IGDB %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("catalog: IGDB %s returned status %d", e.Endpoint, e.StatusCode)
}

// Is makes errors.Is(err, ErrQuery) true for every QueryError.
func (e *QueryError) Is(target error) bool { return target == ErrQuery }
