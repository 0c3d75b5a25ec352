// internal/apierr/errors.go
package apierr

import (
	"errors"
	"fmt"
)

// ErrNetworkFailure is returned when the remote service could not be reached
// or did not produce a usable response.
var ErrNetworkFailure = errors.New("network failure")

// ServerError is a failure the remote service declared itself, carrying the
// message from its error body.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: status %d", e.Status)
	}
	return fmt.Sprintf("server error: %s", e.Message)
}

// AsServerError unwraps err into a *ServerError if it carries one.
func AsServerError(err error) (*ServerError, bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Message returns the text a user should see for err. Server errors surface
// the server's own message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if se, ok := AsServerError(err); ok && se.Message != "" {
		return se.Message
	}
	if errors.Is(err, ErrNetworkFailure) {
		return "Could not reach the storefront service. Check that the backend is running, reachable and returns valid JSON."
	}
	return err.Error()
}
