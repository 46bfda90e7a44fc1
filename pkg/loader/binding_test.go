package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

type result struct {
	value string
	err   error
}

type pendingCall struct {
	params ParameterSet
	reply  chan result
}

// fakeClient answers straight away through respond, or hands every call to the test
// through started when block is set
type fakeClient struct {
	mu    sync.Mutex
	calls []ParameterSet

	block   bool
	started chan *pendingCall
	respond func(ParameterSet) (string, error)
}

func (c *fakeClient) Get(ctx context.Context, p ParameterSet) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, p)
	c.mu.Unlock()

	if !c.block {
		return c.respond(p)
	}

	pc := &pendingCall{params: p, reply: make(chan result, 1)}
	c.started <- pc

	select {
	case r := <-pc.reply:
		return r.value, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *fakeClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.calls)
}

type writableClient struct {
	*fakeClient

	updates []string
}

func (c *writableClient) Update(ctx context.Context, p ParameterSet, body string) (string, error) {
	c.mu.Lock()
	c.updates = append(c.updates, body)
	c.mu.Unlock()

	return fmt.Sprintf("%s-%s-saved", p["realm"], body), nil
}

func newFakeClient() *fakeClient {
	c := new(fakeClient)
	c.respond = func(p ParameterSet) (string, error) {
		return p["realm"] + "-config", nil
	}

	return c
}

func newBlockingClient() *fakeClient {
	c := newFakeClient()
	c.block = true
	c.started = make(chan *pendingCall, 16)

	return c
}

type route struct {
	mu    sync.Mutex
	realm string
}

func (r *route) set(realm string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.realm = realm
}

func (r *route) supplier() ParamSupplier {
	return Require(
		func(name string) (string, bool) {
			r.mu.Lock()
			defer r.mu.Unlock()

			if name != "realm" {
				return "", false
			}

			return r.realm, true
		},
		"realm",
	)
}

// eventMonitor records the loader events it is handed
type eventMonitor struct {
	*monitoring.NoopMonitor

	mu     sync.Mutex
	events []string
}

func (m *eventMonitor) IncLoaderEvent(tags map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, tags["event"])

	return nil
}

func (m *eventMonitor) Events() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.events...)
}

func newEventMonitor() *eventMonitor {
	return &eventMonitor{NoopMonitor: monitoring.NewNoopMonitor("loader-test")}
}

func bind(client Fetcher[string], supplier ParamSupplier, opts ...Option) *Binding[string] {
	return bindWithMonitor(client, supplier, monitoring.NewNoopMonitor("loader-test"), opts...)
}

func bindWithMonitor(client Fetcher[string], supplier ParamSupplier, monitor monitoring.MonitorInterface, opts ...Option) *Binding[string] {
	return Bind[string](
		client,
		supplier,
		trace.NewNoopTracerProvider().Tracer("loader-test"),
		monitor,
		logging.NewNoopLogger(),
		append([]Option{WithName("test")}, opts...)...,
	)
}

func wait(t *testing.T, f *Future[string]) (string, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	v, err := f.Wait(ctx)

	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("future did not complete in time")
	}

	return v, err
}

func isDone(f *Future[string]) bool {
	select {
	case <-f.Done():
		return true
	default:
		return false
	}
}

func nextCall(t *testing.T, c *fakeClient) *pendingCall {
	t.Helper()

	select {
	case pc := <-c.started:
		return pc
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a fetch to be issued")
	}

	return nil
}

func assertNoCall(t *testing.T, c *fakeClient) {
	t.Helper()

	select {
	case pc := <-c.started:
		t.Fatalf("expected no fetch, got one for %s", pc.params)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestResolveCachesUnchangedParams(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	r := &route{realm: "master"}

	b := bind(client, r.supplier())

	require.Equal(t, StateEmpty, b.State())
	require.Equal(t, 0, client.Calls(), "bind must not fetch")

	f, err := b.Resolve(ctx)
	require.NoError(t, err)

	v, err := wait(t, f)
	require.NoError(t, err)
	assert.Equal(t, "master-config", v)
	assert.Equal(t, StateCached, b.State())

	f, err = b.Resolve(ctx)
	require.NoError(t, err)

	assert.True(t, isDone(f), "cache hit must return a resolved future")

	v, err = f.Result()
	require.NoError(t, err)
	assert.Equal(t, "master-config", v)
	assert.Equal(t, ParameterSet{"realm": "master"}, f.Params())
	assert.Equal(t, 1, client.Calls())
}

func TestResolveRepeatedNeverRefetches(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()

	b := bind(client, Static(ParameterSet{"realm": "master"}))

	for i := 0; i < 20; i++ {
		f, err := b.Resolve(ctx)
		require.NoError(t, err)

		_, err = wait(t, f)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, client.Calls())
}

func TestResolveRefetchesWhenParamsChange(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	r := &route{realm: "master"}

	b := bind(client, r.supplier())

	f, err := b.Resolve(ctx)
	require.NoError(t, err)
	_, err = wait(t, f)
	require.NoError(t, err)

	r.set("demo")

	f, err = b.Resolve(ctx)
	require.NoError(t, err)

	v, err := wait(t, f)
	require.NoError(t, err)

	assert.Equal(t, "demo-config", v)
	assert.Equal(t, 2, client.Calls())
	assert.Equal(t, ParameterSet{"realm": "demo"}, client.calls[1])

	cached, ok := b.Peek()
	assert.True(t, ok)
	assert.Equal(t, "demo-config", cached)
}

func TestResolveDropsCacheOnParamChange(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient()
	r := &route{realm: "master"}

	b := bind(client, r.supplier())

	f, err := b.Resolve(ctx)
	require.NoError(t, err)
	nextCall(t, client).reply <- result{value: "master-config"}
	_, err = wait(t, f)
	require.NoError(t, err)

	r.set("demo")

	f, err = b.Resolve(ctx)
	require.NoError(t, err)

	pc := nextCall(t, client)

	_, ok := b.Peek()
	assert.False(t, ok, "master data must not be served for demo")
	assert.Equal(t, StateFetching, b.State())

	pc.reply <- result{value: "demo-config"}

	v, err := wait(t, f)
	require.NoError(t, err)
	assert.Equal(t, "demo-config", v)
}

func TestResolveSingleFlight(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient()

	b := bind(client, Static(ParameterSet{"realm": "master"}))

	futures := make([]*Future[string], 10)

	var wg sync.WaitGroup

	for i := range futures {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			f, err := b.Resolve(ctx)
			assert.NoError(t, err)

			futures[i] = f
		}(i)
	}

	wg.Wait()

	nextCall(t, client).reply <- result{value: "master-config"}
	assertNoCall(t, client)

	for _, f := range futures {
		require.NotNil(t, f)

		v, err := wait(t, f)
		require.NoError(t, err)
		assert.Equal(t, "master-config", v)
	}

	assert.Equal(t, 1, client.Calls())
}

func TestResolveSingleFlightSharesFailure(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient()

	b := bind(client, Static(ParameterSet{"realm": "master"}))

	f1, err := b.Resolve(ctx)
	require.NoError(t, err)
	f2, err := b.Resolve(ctx)
	require.NoError(t, err)

	nextCall(t, client).reply <- result{err: fmt.Errorf("connection refused")}

	_, err1 := wait(t, f1)
	_, err2 := wait(t, f2)

	assert.EqualError(t, err1, "connection refused")
	assert.EqualError(t, err2, "connection refused")
	assert.Equal(t, 1, client.Calls())
}

func TestStaleResultDiscardedWhenOlderArrivesLast(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient()
	r := &route{realm: "master"}

	b := bind(client, r.supplier())

	fMaster, err := b.Resolve(ctx)
	require.NoError(t, err)
	pcMaster := nextCall(t, client)

	r.set("demo")

	fDemo, err := b.Resolve(ctx)
	require.NoError(t, err)
	pcDemo := nextCall(t, client)

	pcDemo.reply <- result{value: "demo-config"}
	v, err := wait(t, fDemo)
	require.NoError(t, err)
	assert.Equal(t, "demo-config", v)

	pcMaster.reply <- result{value: "master-config"}
	v, err = wait(t, fMaster)
	require.NoError(t, err)
	assert.Equal(t, "master-config", v, "the superseded caller still gets its own answer")

	cached, ok := b.Peek()
	require.True(t, ok)
	assert.Equal(t, "demo-config", cached)

	f, err := b.Resolve(ctx)
	require.NoError(t, err)
	assert.True(t, isDone(f))

	v, _ = f.Result()
	assert.Equal(t, "demo-config", v)
	assert.Equal(t, 2, client.Calls())
}

func TestStaleResultDiscardedWhenOlderArrivesFirst(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient()
	r := &route{realm: "master"}

	b := bind(client, r.supplier())

	fMaster, err := b.Resolve(ctx)
	require.NoError(t, err)
	pcMaster := nextCall(t, client)

	r.set("demo")

	fDemo, err := b.Resolve(ctx)
	require.NoError(t, err)
	pcDemo := nextCall(t, client)

	pcMaster.reply <- result{value: "master-config"}
	_, err = wait(t, fMaster)
	require.NoError(t, err)

	_, ok := b.Peek()
	assert.False(t, ok, "stale master result must not be cached")
	assert.Equal(t, StateFetching, b.State())

	pcDemo.reply <- result{value: "demo-config"}
	_, err = wait(t, fDemo)
	require.NoError(t, err)

	cached, ok := b.Peek()
	require.True(t, ok)
	assert.Equal(t, "demo-config", cached)
}

func TestResolveBackToPreviousParamsWhileFetching(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient()
	r := &route{realm: "master"}

	b := bind(client, r.supplier())

	f, err := b.Resolve(ctx)
	require.NoError(t, err)
	nextCall(t, client).reply <- result{value: "master-config"}
	_, err = wait(t, f)
	require.NoError(t, err)

	r.set("demo")
	_, err = b.Resolve(ctx)
	require.NoError(t, err)
	pcDemo := nextCall(t, client)

	r.set("master")
	fMaster, err := b.Resolve(ctx)
	require.NoError(t, err)

	pcMaster := nextCall(t, client)
	assert.Equal(t, ParameterSet{"realm": "master"}, pcMaster.params)

	pcDemo.reply <- result{value: "demo-config"}
	pcMaster.reply <- result{value: "master-config-2"}

	v, err := wait(t, fMaster)
	require.NoError(t, err)
	assert.Equal(t, "master-config-2", v)

	cached, ok := b.Peek()
	require.True(t, ok)
	assert.Equal(t, "master-config-2", cached)
}

func TestResolveFailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()

	failures := 1
	client.respond = func(p ParameterSet) (string, error) {
		if failures > 0 {
			failures--
			return "", fmt.Errorf("503 service unavailable")
		}

		return p["realm"] + "-config", nil
	}

	b := bind(client, Static(ParameterSet{"realm": "master"}))

	f, err := b.Resolve(ctx)
	require.NoError(t, err)

	_, err = wait(t, f)
	assert.EqualError(t, err, "503 service unavailable")
	assert.Equal(t, StateEmpty, b.State())

	f, err = b.Resolve(ctx)
	require.NoError(t, err)

	v, err := wait(t, f)
	require.NoError(t, err)
	assert.Equal(t, "master-config", v)
	assert.Equal(t, 2, client.Calls())
}

func TestResolveParameterUnavailable(t *testing.T) {
	client := newFakeClient()
	r := new(route)

	b := bind(client, r.supplier())

	f, err := b.Resolve(context.Background())

	assert.Nil(t, f)
	assert.True(t, errors.Is(err, ErrParameterUnavailable), "got %v", err)
	assert.Equal(t, 0, client.Calls())
}

func TestResolveWrapsSupplierErrors(t *testing.T) {
	b := bind(newFakeClient(), func() (ParameterSet, error) {
		return nil, fmt.Errorf("route not activated")
	})

	_, err := b.Resolve(context.Background())

	assert.True(t, errors.Is(err, ErrParameterUnavailable), "got %v", err)
	assert.Contains(t, err.Error(), "route not activated")
}

func TestRefreshKeepsCacheUntilSuccess(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient()

	b := bind(client, Static(ParameterSet{"realm": "master"}))

	f, err := b.Resolve(ctx)
	require.NoError(t, err)
	nextCall(t, client).reply <- result{value: "v1"}
	_, err = wait(t, f)
	require.NoError(t, err)

	f, err = b.Refresh(ctx)
	require.NoError(t, err)
	pc := nextCall(t, client)

	cached, ok := b.Peek()
	require.True(t, ok)
	assert.Equal(t, "v1", cached)

	// readers keep getting the cached value while the refresh runs
	hit, err := b.Resolve(ctx)
	require.NoError(t, err)
	assert.True(t, isDone(hit))

	pc.reply <- result{err: fmt.Errorf("timeout")}

	_, err = wait(t, f)
	assert.EqualError(t, err, "timeout")

	cached, ok = b.Peek()
	require.True(t, ok)
	assert.Equal(t, "v1", cached)

	f, err = b.Refresh(ctx)
	require.NoError(t, err)
	nextCall(t, client).reply <- result{value: "v2"}

	v, err := wait(t, f)
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	cached, _ = b.Peek()
	assert.Equal(t, "v2", cached)
}

func TestUpdateReplacesCache(t *testing.T) {
	ctx := context.Background()
	client := &writableClient{fakeClient: newFakeClient()}

	b := bind(client, Static(ParameterSet{"realm": "master"}))

	f, err := b.Update(ctx, "bulk")
	require.NoError(t, err)

	v, err := wait(t, f)
	require.NoError(t, err)
	assert.Equal(t, "master-bulk-saved", v)

	f, err = b.Resolve(ctx)
	require.NoError(t, err)
	assert.True(t, isDone(f))

	v, _ = f.Result()
	assert.Equal(t, "master-bulk-saved", v)
	assert.Equal(t, 0, client.Calls())
	assert.Equal(t, []string{"bulk"}, client.updates)
}

func TestUpdateNotWritable(t *testing.T) {
	b := bind(newFakeClient(), Static(ParameterSet{"realm": "master"}))

	_, err := b.Update(context.Background(), "bulk")

	assert.ErrorIs(t, err, ErrNotWritable)
}

func TestEagerFetch(t *testing.T) {
	client := newFakeClient()

	b := bind(client, Static(ParameterSet{"realm": "master"}), WithEagerFetch())

	require.Eventually(t, func() bool { return b.State() == StateCached }, 2*time.Second, 5*time.Millisecond)

	f, err := b.Resolve(context.Background())
	require.NoError(t, err)
	assert.True(t, isDone(f))
	assert.Equal(t, 1, client.Calls())
}

func TestEagerFetchWithoutParams(t *testing.T) {
	client := newFakeClient()

	b := bind(client, new(route).supplier(), WithEagerFetch())

	assert.Equal(t, StateEmpty, b.State())
	assert.Equal(t, 0, client.Calls())
}

func TestCloseCancelsPendingFetch(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient()

	monitor := newEventMonitor()

	b := bindWithMonitor(client, Static(ParameterSet{"realm": "master"}), monitor)

	f, err := b.Resolve(ctx)
	require.NoError(t, err)
	nextCall(t, client)

	b.Close()

	_, err = wait(t, f)
	assert.ErrorIs(t, err, context.Canceled)

	// teardown is recorded as stale, never as a failure
	assert.Equal(t, []string{eventMiss, eventStale}, monitor.Events())

	_, err = b.Resolve(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestWaitHonoursCallerContext(t *testing.T) {
	client := newBlockingClient()

	b := bind(client, Static(ParameterSet{"realm": "master"}))

	f, err := b.Resolve(context.Background())
	require.NoError(t, err)
	pc := nextCall(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// the fetch itself is unaffected
	pc.reply <- result{value: "master-config"}

	v, err := wait(t, f)
	require.NoError(t, err)
	assert.Equal(t, "master-config", v)
}

func TestInvalidateForcesFetch(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()

	b := bind(client, Static(ParameterSet{"realm": "master"}))

	f, _ := b.Resolve(ctx)
	_, err := wait(t, f)
	require.NoError(t, err)

	b.Invalidate()
	assert.Equal(t, StateEmpty, b.State())

	f, _ = b.Resolve(ctx)
	_, err = wait(t, f)
	require.NoError(t, err)

	assert.Equal(t, 2, client.Calls())
}

func TestSupersededFailureIsStale(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient()
	monitor := newEventMonitor()
	r := new(route)
	r.set("master")

	b := bindWithMonitor(client, r.supplier(), monitor)

	old, err := b.Resolve(ctx)
	require.NoError(t, err)
	oldCall := nextCall(t, client)

	r.set("demo")

	current, err := b.Resolve(ctx)
	require.NoError(t, err)
	currentCall := nextCall(t, client)

	oldCall.reply <- result{err: errors.New("boom")}

	_, err = wait(t, old)
	assert.EqualError(t, err, "boom")

	currentCall.reply <- result{value: "demo-config"}

	v, err := wait(t, current)
	require.NoError(t, err)
	assert.Equal(t, "demo-config", v)

	assert.Equal(t, []string{eventMiss, eventMiss, eventStale}, monitor.Events())
	assert.Equal(t, StateCached, b.State())
}
