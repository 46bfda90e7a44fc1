package loader

import "context"

type options struct {
	name  string
	eager bool
	ctx   context.Context
}

type Option func(*options)

// WithName labels logs and metrics of the binding
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithEagerFetch issues the first fetch at bind time instead of on the first Resolve
func WithEagerFetch() Option {
	return func(o *options) {
		o.eager = true
	}
}

// WithContext ties the binding lifetime to ctx, cancelling it aborts in-flight fetches
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

func newOptions(opts ...Option) *options {
	o := new(options)

	o.name = "default"
	o.ctx = context.Background()

	for _, opt := range opts {
		opt(o)
	}

	return o
}
