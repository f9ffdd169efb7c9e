package profile

import (
	"errors"

	"github.com/beeper/profilehub/pkg/profilego"
)

var (
	ErrNoSession       = errors.New("no authenticated session user")
	ErrIndexOutOfRange = errors.New("skill index out of range")
	ErrNotOpen         = errors.New("edit intro overlay is not open")
)

// DisplayMessage returns the text to show for a failed request: the
// server-provided message when there is one, the error text otherwise.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *profilego.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
