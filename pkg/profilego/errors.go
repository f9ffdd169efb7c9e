package profilego

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized             = errors.New("unauthorized")
	ErrNotLoggedIn              = errors.New("no session cookie")
	ErrResponseTypeAssertFailed = errors.New("unexpected response type")
)

// APIError is returned when the API answers with success=false or an error
// status. Message is the server-provided text meant for display.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed (statusCode=%d)", e.StatusCode)
	}
	return fmt.Sprintf("%s (statusCode=%d)", e.Message, e.StatusCode)
}

func newErrorResponseTypeAssertFailed(t string) error {
	return fmt.Errorf("%w: expected %s", ErrResponseTypeAssertFailed, t)
}
