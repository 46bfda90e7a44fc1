package loader

import "context"

// ParamSupplier derives the parameters of a resource from the current navigation state
type ParamSupplier func() (ParameterSet, error)

// Fetcher is the read side of a REST resource client
type Fetcher[T any] interface {
	Get(context.Context, ParameterSet) (T, error)
}

// Updater is implemented by resource clients supporting writes
type Updater[T any] interface {
	Update(context.Context, ParameterSet, T) (T, error)
}
