package views

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/monitoring"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrViewNotFound = errors.New("view not found")
	ErrNoRoute      = errors.New("no console route matches path")
)

// ConsoleRoutes are the navigation routes of the admin console whose parameters feed
// route bound resources
var ConsoleRoutes = []string{
	"/realms/{realm}",
	"/realms/{realm}/scim",
	"/realms/{realm}/scim/service-provider",
	"/realms/{realm}/scim/resource-types",
	"/realms/{realm}/scim/resource-types/{id}",
}

type Config struct {
	Routes []string
	TTL    time.Duration
}

type Service struct {
	routes *chi.Mux
	ttl    time.Duration

	mu    sync.RWMutex
	views map[string]*View

	now func() time.Time

	tracer  trace.Tracer
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) CreateView(ctx context.Context) (*View, error) {
	_, span := s.tracer.Start(ctx, "views.Service.CreateView")
	defer span.End()

	v := newView(uuid.New().String(), s.now())

	s.mu.Lock()
	s.views[v.ID] = v
	s.mu.Unlock()

	s.logger.Debugf("view %s created", v.ID)

	return v, nil
}

func (s *Service) GetView(ctx context.Context, ID string) (*View, error) {
	_, span := s.tracer.Start(ctx, "views.Service.GetView")
	defer span.End()

	s.mu.RLock()
	v, ok := s.views[ID]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, ID)
	}

	v.touch(s.now())

	return v, nil
}

// Navigate moves the view to path, bindings of the view pick the new parameters up on
// their next resolution
func (s *Service) Navigate(ctx context.Context, ID, path string) (*View, error) {
	ctx, span := s.tracer.Start(ctx, "views.Service.Navigate")
	defer span.End()

	v, err := s.GetView(ctx, ID)

	if err != nil {
		return nil, err
	}

	pattern, params, err := s.match(path)

	if err != nil {
		return nil, err
	}

	v.navigate(path, pattern, params, s.now())

	s.logger.Debugf("view %s navigated to %s", ID, path)

	return v, nil
}

func (s *Service) DeleteView(ctx context.Context, ID string) error {
	_, span := s.tracer.Start(ctx, "views.Service.DeleteView")
	defer span.End()

	s.mu.Lock()
	v, ok := s.views[ID]
	delete(s.views, ID)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, ID)
	}

	v.close()

	s.logger.Debugf("view %s deleted", ID)

	return nil
}

// Sweep tears down views idle for longer than the configured TTL
func (s *Service) Sweep(ctx context.Context) int {
	_, span := s.tracer.Start(ctx, "views.Service.Sweep")
	defer span.End()

	if s.ttl <= 0 {
		return 0
	}

	now := s.now()
	expired := make([]*View, 0)

	s.mu.Lock()

	for ID, v := range s.views {
		if v.idleSince(now) > s.ttl {
			expired = append(expired, v)
			delete(s.views, ID)
		}
	}

	s.mu.Unlock()

	for _, v := range expired {
		v.close()
	}

	if len(expired) > 0 {
		s.logger.Infof("swept %d idle views", len(expired))
	}

	return len(expired)
}

func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.views)
}

func (s *Service) match(path string) (string, map[string]string, error) {
	u, err := url.Parse(path)

	if err != nil || !strings.HasPrefix(u.Path, "/") {
		return "", nil, fmt.Errorf("%w: %q", ErrNoRoute, path)
	}

	rctx := chi.NewRouteContext()

	// match on the escaped path so encoded slashes stay inside their segment
	if !s.routes.Match(rctx, http.MethodGet, u.EscapedPath()) {
		return "", nil, fmt.Errorf("%w: %q", ErrNoRoute, path)
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))

	for i, key := range rctx.URLParams.Keys {
		value, err := url.PathUnescape(rctx.URLParams.Values[i])

		if err != nil {
			value = rctx.URLParams.Values[i]
		}

		params[key] = value
	}

	return rctx.RoutePattern(), params, nil
}

func NewService(config *Config, tracer trace.Tracer, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	if config == nil {
		panic("empty config for views service")
	}

	routes := config.Routes

	if len(routes) == 0 {
		routes = ConsoleRoutes
	}

	s.routes = chi.NewMux()

	for _, route := range routes {
		s.routes.Get(route, http.NotFound)
	}

	s.ttl = config.TTL
	s.views = make(map[string]*View)
	s.now = time.Now

	s.monitor = monitor
	s.tracer = tracer
	s.logger = logger

	return s
}
