package serviceprovider

import (
	"context"
	"sync"

	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/monitoring"
	"github.com/canonical/scim-admin-ui/pkg/loader"
	"github.com/canonical/scim-admin-ui/pkg/views"
	"go.opentelemetry.io/otel/trace"
)

const (
	bindingName = "ServiceProvider"
	realmParam  = "realm"
)

type Config struct {
	EagerFetch bool
}

// Service keeps one ServiceProvider binding per view, bindings are created on first use
// and closed with their view
type Service struct {
	client ClientInterface
	views  ViewsInterface
	eager  bool

	mu       sync.Mutex
	bindings map[string]*loader.Binding[ServiceProvider]

	tracer  trace.Tracer
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) GetServiceProvider(ctx context.Context, viewID string) (*ServiceProvider, error) {
	ctx, span := s.tracer.Start(ctx, "serviceprovider.Service.GetServiceProvider")
	defer span.End()

	b, err := s.binding(ctx, viewID)

	if err != nil {
		return nil, err
	}

	future, err := b.Resolve(ctx)

	if err != nil {
		return nil, err
	}

	return s.wait(ctx, future)
}

// UpdateServiceProvider writes cfg for the realm of the view, the answer of the server
// becomes the cached value
func (s *Service) UpdateServiceProvider(ctx context.Context, viewID string, cfg *ServiceProvider) (*ServiceProvider, error) {
	ctx, span := s.tracer.Start(ctx, "serviceprovider.Service.UpdateServiceProvider")
	defer span.End()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b, err := s.binding(ctx, viewID)

	if err != nil {
		return nil, err
	}

	future, err := b.Update(ctx, cfg.withSchema())

	if err != nil {
		return nil, err
	}

	return s.wait(ctx, future)
}

func (s *Service) RefreshServiceProvider(ctx context.Context, viewID string) (*ServiceProvider, error) {
	ctx, span := s.tracer.Start(ctx, "serviceprovider.Service.RefreshServiceProvider")
	defer span.End()

	b, err := s.binding(ctx, viewID)

	if err != nil {
		return nil, err
	}

	future, err := b.Refresh(ctx)

	if err != nil {
		return nil, err
	}

	return s.wait(ctx, future)
}

// Bindings returns the number of live bindings
func (s *Service) Bindings() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.bindings)
}

func (s *Service) wait(ctx context.Context, future *loader.Future[ServiceProvider]) (*ServiceProvider, error) {
	sp, err := future.Wait(ctx)

	if err != nil {
		return nil, err
	}

	return &sp, nil
}

func (s *Service) binding(ctx context.Context, viewID string) (*loader.Binding[ServiceProvider], error) {
	view, err := s.views.GetView(ctx, viewID)

	if err != nil {
		return nil, err
	}

	s.mu.Lock()

	if b, ok := s.bindings[viewID]; ok {
		s.mu.Unlock()
		return b, nil
	}

	opts := []loader.Option{loader.WithName(bindingName), loader.WithContext(view.Context())}

	if s.eager {
		opts = append(opts, loader.WithEagerFetch())
	}

	b := loader.Bind[ServiceProvider](s.client, view.Params(realmParam), s.tracer, s.monitor, s.logger, opts...)
	s.bindings[viewID] = b

	s.mu.Unlock()

	// registered outside the lock, the hook runs inline on a view already closed
	view.OnClose(func() { s.release(viewID, b) })

	s.logger.Debugf("service provider binding created for view %s", viewID)

	return b, nil
}

func (s *Service) release(viewID string, b *loader.Binding[ServiceProvider]) {
	s.mu.Lock()

	if s.bindings[viewID] == b {
		delete(s.bindings, viewID)
	}

	s.mu.Unlock()

	b.Close()

	s.logger.Debugf("service provider binding released for view %s", viewID)
}

func NewService(config *Config, client ClientInterface, views ViewsInterface, tracer trace.Tracer, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	if config == nil {
		config = new(Config)
	}

	s.client = client
	s.views = views
	s.eager = config.EagerFetch
	s.bindings = make(map[string]*loader.Binding[ServiceProvider])

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

var _ ViewsInterface = (*views.Service)(nil)
