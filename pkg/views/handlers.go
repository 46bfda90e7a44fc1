package views

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/canonical/scim-admin-ui/internal/http/types"
	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/go-chi/chi/v5"
)

type NavigationRequest struct {
	Path string `json:"path"`
}

type API struct {
	service ServiceInterface

	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/views", a.handleCreate)
	mux.Get("/api/v0/views/{id}", a.handleDetail)
	mux.Put("/api/v0/views/{id}/route", a.handleNavigate)
	mux.Delete("/api/v0/views/{id}", a.handleRemove)
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	view, err := a.service.CreateView(r.Context())

	if err != nil {
		a.logger.Errorf("failed creating view: %s", err)
		types.WriteError(w, http.StatusInternalServerError, err.Error())

		return
	}

	types.WriteResponse(w, http.StatusCreated, view.Snapshot(), "View created")
}

func (a *API) handleDetail(w http.ResponseWriter, r *http.Request) {
	ID := chi.URLParam(r, "id")

	view, err := a.service.GetView(r.Context(), ID)

	if err != nil {
		types.WriteError(w, a.status(err), err.Error())

		return
	}

	types.WriteResponse(w, http.StatusOK, view.Snapshot(), "Detail of view")
}

func (a *API) handleNavigate(w http.ResponseWriter, r *http.Request) {
	ID := chi.URLParam(r, "id")

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)

	if err != nil {
		types.WriteError(w, http.StatusBadRequest, "Error parsing request payload")

		return
	}

	nav := new(NavigationRequest)

	if err := json.Unmarshal(body, nav); err != nil || nav.Path == "" {
		types.WriteError(w, http.StatusBadRequest, "Error parsing JSON payload")

		return
	}

	view, err := a.service.Navigate(r.Context(), ID, nav.Path)

	if err != nil {
		types.WriteError(w, a.status(err), err.Error())

		return
	}

	types.WriteResponse(w, http.StatusOK, view.Snapshot(), "View navigated")
}

func (a *API) handleRemove(w http.ResponseWriter, r *http.Request) {
	ID := chi.URLParam(r, "id")

	if err := a.service.DeleteView(r.Context(), ID); err != nil {
		types.WriteError(w, a.status(err), err.Error())

		return
	}

	types.WriteResponse(w, http.StatusOK, nil, "View deleted")
}

func (a *API) status(err error) int {
	switch {
	case errors.Is(err, ErrViewNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoRoute):
		return http.StatusBadRequest
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
