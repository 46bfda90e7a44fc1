package tracing

import (
	"fmt"
	"net/http"

	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/monitoring"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Middleware instruments the whole router with OpenTelemetry spans
type Middleware struct {
	service string

	logger logging.LoggerInterface
}

func (mdw *Middleware) OpenTelemetry(handler http.Handler) http.Handler {
	return otelhttp.NewHandler(
		handler,
		mdw.service,
		otelhttp.WithSpanNameFormatter(
			func(operation string, r *http.Request) string {
				return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
			},
		),
	)
}

// NewMiddleware names server spans after the monitored service
func NewMiddleware(monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	mdw := new(Middleware)

	mdw.service = monitor.GetService()

	mdw.logger = logger

	return mdw
}
