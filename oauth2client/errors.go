package oauth2client

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// ErrAuth matches any *AuthError with errors.Is.
var ErrAuth = errors.New("oauth2: authentication failed")

// ConfigurationError reports a client credential that was never configured.
type ConfigurationError struct {
	// Field is the missing credential, "client_id" or "client_secret".
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("oauth2: %s is not set", e.Field)
}

// AuthError reports a failed token request.
type AuthError struct {
	// StatusCode is the HTTP status returned by the token endpoint,
	// or 0 if no response was received.
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("oauth2: token endpoint returned status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("oauth2: failed to fetch token: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrAuth) true for every AuthError.
func (e *AuthError) Is(target error) bool { return target == ErrAuth }

func newAuthError(err error) *AuthError {
	authErr := &AuthError{Err: err}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		authErr.StatusCode = retrieveErr.Response.StatusCode
	}

	return authErr
}
