package resource

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTemplate    = errors.New("invalid url template")
	ErrUnknownPlaceholder = errors.New("placeholder not declared in resource params")
	ErrUnknownAction      = errors.New("unknown resource action")
	ErrMissingParameter   = errors.New("missing value for url placeholder")
)

// TransportError is any failure of a call against the resource server: network errors,
// non 2xx answers and undecodable bodies
type TransportError struct {
	Resource string
	Action   string
	Method   string
	URL      string
	Status   int
	Body     string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s (%s.%s): status %d: %s", e.Method, e.URL, e.Resource, e.Action, e.Status, e.Body)
	}

	return fmt.Sprintf("%s %s (%s.%s): %s", e.Method, e.URL, e.Resource, e.Action, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
