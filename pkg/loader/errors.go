package loader

import "errors"

var (
	// ErrParameterUnavailable is returned when the supplier cannot build a ParameterSet,
	// usually because a route value is missing
	ErrParameterUnavailable = errors.New("route parameters unavailable")
	ErrNotWritable          = errors.New("resource client does not support updates")
	ErrClosed               = errors.New("binding closed")
)

func isUnavailable(err error) bool {
	return errors.Is(err, ErrParameterUnavailable)
}
