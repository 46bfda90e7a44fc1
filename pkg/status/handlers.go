package status

import (
	"encoding/json"
	"net/http"

	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/monitoring"
	"github.com/canonical/scim-admin-ui/internal/version"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

type Status struct {
	Status    string     `json:"status"`
	BuildInfo *BuildInfo `json:"buildInfo"`
	Views     *int       `json:"views,omitempty"`
}

// ViewCounter reports the number of live views
type ViewCounter interface {
	Count() int
}

type API struct {
	views ViewCounter

	tracer  trace.Tracer
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	_, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	rr := Status{
		Status:    "ok",
		BuildInfo: buildInfo(),
	}

	if a.views != nil {
		n := a.views.Count()
		rr.Views = &n
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rr)
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	info := buildInfo()

	if info == nil {
		info = &BuildInfo{Version: version.Version, CommitHash: "n/a"}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(info)
}

func NewAPI(views ViewCounter, tracer trace.Tracer, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.views = views

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
