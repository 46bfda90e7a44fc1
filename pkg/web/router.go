package web

import (
	"net/http"

	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/monitoring"
	"github.com/canonical/scim-admin-ui/internal/tracing"
	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	trace "go.opentelemetry.io/otel/trace"

	"github.com/canonical/scim-admin-ui/pkg/metrics"
	"github.com/canonical/scim-admin-ui/pkg/serviceprovider"
	"github.com/canonical/scim-admin-ui/pkg/status"
	"github.com/canonical/scim-admin-ui/pkg/views"
)

type Config struct {
	Views           *views.Service
	ServiceProvider *serviceprovider.Service
	CORSOrigins     []string
	RequestLogging  bool
}

func NewRouter(config *Config, tracer trace.Tracer, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) http.Handler {
	router := chi.NewMux()

	origins := config.CORSOrigins

	if len(origins) == 0 {
		origins = []string{"*"}
	}

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(origins),
	)

	if config.RequestLogging {
		middlewares = append(
			middlewares,
			middleware.RequestLogger(logging.NewLogFormatter(logger)), // LogFormatter will only work if logger is set to DEBUG level
		)
	}

	router.Use(middlewares...)

	status.NewAPI(config.Views, tracer, monitor, logger).RegisterEndpoints(router)
	metrics.NewAPI(logger).RegisterEndpoints(router)
	views.NewAPI(config.Views, logger).RegisterEndpoints(router)
	serviceprovider.NewAPI(config.ServiceProvider, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
