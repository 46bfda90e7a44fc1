package serviceprovider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/canonical/scim-admin-ui/internal/http/types"
	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/resource"
	"github.com/canonical/scim-admin-ui/pkg/loader"
	"github.com/canonical/scim-admin-ui/pkg/views"
	"github.com/go-chi/chi/v5"
)

// statusClientClosedRequest is the de facto code for requests abandoned by the client
const statusClientClosedRequest = 499

type API struct {
	service ServiceInterface

	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/views/{id}/service-provider", a.handleDetail)
	mux.Put("/api/v0/views/{id}/service-provider", a.handleUpdate)
	mux.Post("/api/v0/views/{id}/service-provider/refresh", a.handleRefresh)
}

func (a *API) handleDetail(w http.ResponseWriter, r *http.Request) {
	ID := chi.URLParam(r, "id")

	sp, err := a.service.GetServiceProvider(r.Context(), ID)

	if err != nil {
		types.WriteError(w, a.status(err), err.Error())

		return
	}

	types.WriteResponse(w, http.StatusOK, sp, "Service provider configuration")
}

func (a *API) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ID := chi.URLParam(r, "id")

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)

	if err != nil {
		types.WriteError(w, http.StatusBadRequest, "Error parsing request payload")

		return
	}

	sp := new(ServiceProvider)

	if err := json.Unmarshal(body, sp); err != nil {
		types.WriteError(w, http.StatusBadRequest, "Error parsing JSON payload")

		return
	}

	updated, err := a.service.UpdateServiceProvider(r.Context(), ID, sp)

	if err != nil {
		types.WriteError(w, a.status(err), err.Error())

		return
	}

	types.WriteResponse(w, http.StatusOK, updated, "Service provider configuration updated")
}

func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ID := chi.URLParam(r, "id")

	sp, err := a.service.RefreshServiceProvider(r.Context(), ID)

	if err != nil {
		types.WriteError(w, a.status(err), err.Error())

		return
	}

	types.WriteResponse(w, http.StatusOK, sp, "Service provider configuration refreshed")
}

// status maps errors to HTTP codes, upstream answers keep their code
func (a *API) status(err error) int {
	if terr, ok := resource.IsTransportError(err); ok {
		if terr.Status >= 400 {
			return terr.Status
		}

		a.logger.Errorf("service provider upstream failure: %s", err)

		return http.StatusBadGateway
	}

	switch {
	case errors.Is(err, views.ErrViewNotFound), errors.Is(err, loader.ErrClosed):
		return http.StatusNotFound
	case errors.Is(err, loader.ErrParameterUnavailable), errors.Is(err, ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, loader.ErrNotWritable):
		return http.StatusMethodNotAllowed
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		// the caller went away, nobody reads the answer
		return statusClientClosedRequest
	default:
		a.logger.Error(err)
		return http.StatusInternalServerError
	}
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service

	a.logger = logger

	return a
}
