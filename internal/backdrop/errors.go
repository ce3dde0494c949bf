package backdrop

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned when a site address cannot be parsed
	// into a usable base URL.
	ErrInvalidAddress = errors.New("invalid site address")
	// ErrLoginFailed is returned when the login endpoint does not yield a
	// session cookie, whatever the HTTP status said.
	ErrLoginFailed = errors.New("login failed")
	// ErrNotAuthenticated is returned by every API call made before a
	// successful login, before any network I/O happens.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidResponse is returned when a response does not match the
	// documented envelope or payload schema.
	ErrInvalidResponse = errors.New("invalid server response")
)

// HTTPError reports a non-2xx status from the server with no decodable
// error body.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// ServerError carries a message the server produced itself, either from a
// failed envelope or a structured error body on a non-2xx response.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return "server reported an error"
	}
	return "server error: " + e.Message
}
