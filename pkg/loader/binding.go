package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/monitoring"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type State int

const (
	StateEmpty State = iota
	StateFetching
	StateCached
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateCached:
		return "cached"
	default:
		return "empty"
	}
}

const (
	eventHit     = "hit"
	eventMiss    = "miss"
	eventJoin    = "join"
	eventRefresh = "refresh"
	eventStale   = "stale"
	eventFailure = "failure"
	eventUpdate  = "update"
)

// fetch is one in-flight call to the client, sig is its staleness tag
type fetch[T any] struct {
	seq    uint64
	sig    string
	params ParameterSet
	future *Future[T]
}

type entry[T any] struct {
	seq    uint64
	sig    string
	params ParameterSet
	value  T
}

// Binding caches the resource identified by the parameters its supplier derives from the
// current route. The cache is dropped as soon as the parameters change and at most one fetch
// is tracked at a time: results of superseded fetches never reach the cache.
type Binding[T any] struct {
	name     string
	client   Fetcher[T]
	updater  Updater[T]
	supplier ParamSupplier

	mu      sync.Mutex
	seq     uint64
	lastSig string
	cached  *entry[T]
	pending *fetch[T]
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc

	tracer  trace.Tracer
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (b *Binding[T]) Name() string {
	return b.name
}

// Resolve returns the cached value when the parameters did not change, joins the pending
// fetch issued for the same parameters, or starts a new one. It never waits on the network.
func (b *Binding[T]) Resolve(ctx context.Context) (*Future[T], error) {
	ctx, span := b.tracer.Start(ctx, "loader.Binding.Resolve")
	defer span.End()

	params, err := b.params()

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sig := params.Signature()
	span.SetAttributes(attribute.String("loader.params", sig))

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	b.lastSig = sig

	if b.cached != nil && b.cached.sig == sig && (b.pending == nil || b.pending.sig == sig) {
		b.event(eventHit)
		return resolvedFuture(b.cached.params.Clone(), b.cached.value), nil
	}

	if b.pending != nil && b.pending.sig == sig {
		b.event(eventJoin)
		return b.pending.future, nil
	}

	if b.cached != nil && b.cached.sig != sig {
		b.logger.Debugf("binding %s: params changed from %s to %s, dropping cache", b.name, b.cached.sig, sig)
		b.cached = nil
	}

	b.event(eventMiss)

	return b.start(ctx, params, sig).future, nil
}

// Refresh forces one fetch for the current parameters, keeping the cached value until it
// succeeds. A fetch already pending for the same parameters is joined.
func (b *Binding[T]) Refresh(ctx context.Context) (*Future[T], error) {
	ctx, span := b.tracer.Start(ctx, "loader.Binding.Refresh")
	defer span.End()

	params, err := b.params()

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sig := params.Signature()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	b.lastSig = sig

	if b.pending != nil && b.pending.sig == sig {
		b.event(eventJoin)
		return b.pending.future, nil
	}

	if b.cached != nil && b.cached.sig != sig {
		b.cached = nil
	}

	b.event(eventRefresh)

	return b.start(ctx, params, sig).future, nil
}

// Update writes body for the current parameters, the server answer replaces the cached
// value when the parameters are still current once the write completes
func (b *Binding[T]) Update(ctx context.Context, body T) (*Future[T], error) {
	ctx, span := b.tracer.Start(ctx, "loader.Binding.Update")
	defer span.End()

	if b.updater == nil {
		return nil, ErrNotWritable
	}

	params, err := b.params()

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sig := params.Signature()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	b.lastSig = sig
	b.seq++

	// writes are not tracked as pending, readers keep joining the current fetch
	f := &fetch[T]{seq: b.seq, sig: sig, params: params, future: newFuture[T](params)}

	b.event(eventUpdate)

	go b.run(b.fetchContext(ctx), f, func(ctx context.Context, p ParameterSet) (T, error) {
		return b.updater.Update(ctx, p, body)
	})

	return f.future, nil
}

// Peek returns the cached value without fetching
func (b *Binding[T]) Peek() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cached == nil || b.cached.sig != b.lastSig {
		var zero T
		return zero, false
	}

	return b.cached.value, true
}

// Invalidate drops the cached value, a pending fetch is left running
func (b *Binding[T]) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cached = nil
}

func (b *Binding[T]) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.pending != nil:
		return StateFetching
	case b.cached != nil:
		return StateCached
	default:
		return StateEmpty
	}
}

// Close tears the binding down with its owning view, in-flight fetches are cancelled
func (b *Binding[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	b.cached = nil
	b.cancel()
}

func (b *Binding[T]) params() (ParameterSet, error) {
	params, err := b.supplier()

	if err != nil {
		b.logger.Debugf("binding %s: %s", b.name, err)
		return nil, fmt.Errorf("binding %s: %w", b.name, wrapUnavailable(err))
	}

	return params.Clone(), nil
}

// start must be called with b.mu held
func (b *Binding[T]) start(ctx context.Context, params ParameterSet, sig string) *fetch[T] {
	b.seq++

	f := &fetch[T]{seq: b.seq, sig: sig, params: params, future: newFuture[T](params)}
	b.pending = f

	go b.run(b.fetchContext(ctx), f, b.client.Get)

	return f
}

// fetchContext detaches the fetch from the caller, it lives as long as the binding, while
// keeping the caller span as parent
func (b *Binding[T]) fetchContext(ctx context.Context) context.Context {
	return trace.ContextWithSpan(b.ctx, trace.SpanFromContext(ctx))
}

func (b *Binding[T]) run(ctx context.Context, f *fetch[T], call func(context.Context, ParameterSet) (T, error)) {
	ctx, span := b.tracer.Start(ctx, "loader.Binding.fetch")
	defer span.End()

	span.SetAttributes(attribute.String("loader.params", f.sig))

	startTime := time.Now()
	value, err := call(ctx, f.params.Clone())

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	b.settle(f, value, err, time.Since(startTime))

	// completing after settle lets callers woken by the future observe the cache
	f.future.complete(value, err)
}

func (b *Binding[T]) settle(f *fetch[T], value T, err error, elapsed time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == f {
		b.pending = nil
	}

	// teardown and superseded params end fetches too, those are not failures
	if err != nil && (b.closed || f.sig != b.lastSig) {
		b.event(eventStale)
		b.logger.Debugf("binding %s: fetch for %s ended after %s: %s", b.name, f.sig, elapsed, err)

		return
	}

	if err != nil {
		b.event(eventFailure)
		b.logger.Errorf("binding %s: fetch for %s failed after %s: %s", b.name, f.sig, elapsed, err)

		return
	}

	if b.closed || f.sig != b.lastSig || (b.cached != nil && b.cached.seq > f.seq) {
		b.event(eventStale)
		b.logger.Debugf("binding %s: discarding result for %s, current params are %s", b.name, f.sig, b.lastSig)

		return
	}

	b.cached = &entry[T]{seq: f.seq, sig: f.sig, params: f.params, value: value}
	b.logger.Debugf("binding %s: cached result for %s after %s", b.name, f.sig, elapsed)
}

func (b *Binding[T]) event(name string) {
	tags := map[string]string{
		"binding": b.name,
		"event":   name,
	}

	if err := b.monitor.IncLoaderEvent(tags); err != nil {
		b.logger.Debugf("error recording loader event: %s", err)
	}
}

func wrapUnavailable(err error) error {
	if isUnavailable(err) {
		return err
	}

	return fmt.Errorf("%w: %s", ErrParameterUnavailable, err)
}

// Bind creates a binding with an empty cache. Nothing is fetched until the first Resolve
// unless WithEagerFetch is passed.
func Bind[T any](client Fetcher[T], supplier ParamSupplier, tracer trace.Tracer, monitor monitoring.MonitorInterface, logger logging.LoggerInterface, opts ...Option) *Binding[T] {
	if client == nil || supplier == nil {
		panic("loader binding needs a client and a parameter supplier")
	}

	o := newOptions(opts...)

	b := new(Binding[T])

	b.name = o.name
	b.client = client
	b.supplier = supplier
	b.updater, _ = client.(Updater[T])

	b.ctx, b.cancel = context.WithCancel(o.ctx)

	b.tracer = tracer
	b.monitor = monitor
	b.logger = logger

	if o.eager {
		if _, err := b.Resolve(o.ctx); err != nil {
			b.logger.Debugf("binding %s: eager fetch skipped: %s", b.name, err)
		}
	}

	return b
}
