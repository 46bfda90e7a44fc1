package views

import (
	"context"
	"sync"
	"time"

	"github.com/canonical/scim-admin-ui/pkg/loader"
)

// View is one console page activation, it carries the route the page navigated to and the
// lifetime of everything bound to it
type View struct {
	ID string

	mu       sync.RWMutex
	path     string
	pattern  string
	params   map[string]string
	created  time.Time
	lastSeen time.Time
	hooks    []func()
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
}

type Snapshot struct {
	ID       string            `json:"id"`
	Path     string            `json:"path"`
	Pattern  string            `json:"pattern"`
	Params   map[string]string `json:"params"`
	Created  time.Time         `json:"created"`
	LastSeen time.Time         `json:"last_seen"`
}

func (v *View) Snapshot() *Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := new(Snapshot)

	s.ID = v.ID
	s.Path = v.path
	s.Pattern = v.pattern
	s.Params = loader.ParameterSet(v.params).Clone()
	s.Created = v.created
	s.LastSeen = v.lastSeen

	return s
}

// Param is the read only lookup over the current route parameters
func (v *View) Param(name string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	value, ok := v.params[name]

	return value, ok
}

// Params supplies the named route parameters, failing while the view has not navigated
// to a route declaring them
func (v *View) Params(names ...string) loader.ParamSupplier {
	return loader.Require(v.Param, names...)
}

// Context is cancelled when the view is torn down
func (v *View) Context() context.Context {
	return v.ctx
}

// OnClose registers fn to run on teardown, it runs straight away on a closed view
func (v *View) OnClose(fn func()) {
	v.mu.Lock()

	if v.closed {
		v.mu.Unlock()
		fn()

		return
	}

	v.hooks = append(v.hooks, fn)
	v.mu.Unlock()
}

func (v *View) navigate(path, pattern string, params map[string]string, now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.path = path
	v.pattern = pattern
	v.params = params
	v.lastSeen = now
}

func (v *View) touch(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lastSeen = now
}

func (v *View) idleSince(now time.Time) time.Duration {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return now.Sub(v.lastSeen)
}

func (v *View) close() {
	v.mu.Lock()

	if v.closed {
		v.mu.Unlock()
		return
	}

	v.closed = true
	hooks := v.hooks
	v.hooks = nil
	v.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	v.cancel()
}

func newView(id string, now time.Time) *View {
	v := new(View)

	v.ID = id
	v.params = make(map[string]string)
	v.created = now
	v.lastSeen = now
	v.ctx, v.cancel = context.WithCancel(context.Background())

	return v
}
