package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBaseURLMissing is returned by New when no backend base URL is configured.
var ErrBaseURLMissing = errors.New("apiclient: API_BASE_URL is not configured")

// MsgNoSessionToken is the result error for authenticated calls made without a token.
const MsgNoSessionToken = "Access denied. No session token available."

// MsgResponseTooLarge is the result error when a response body exceeds maxResponseBytes.
const MsgResponseTooLarge = "Response from server was too large."

// RedirectError ends the current request with a navigation to Location.
// It is raised after the backend rejected the caller's credentials and must
// travel up to the HTTP handler unchanged.
type RedirectError struct {
	Location string
	Status   int
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s after backend status %d", e.Location, e.Status)
}

// IsRedirect reports whether err carries a RedirectError.
func IsRedirect(err error) bool {
	var redirect *RedirectError
	return errors.As(err, &redirect)
}

// AsRedirect extracts the RedirectError from err.
func AsRedirect(err error) (*RedirectError, bool) {
	var redirect *RedirectError
	if errors.As(err, &redirect) {
		return redirect, true
	}
	return nil, false
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
