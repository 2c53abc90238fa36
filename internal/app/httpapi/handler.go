// Package httpapi exposes the public JSON API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/appydave/appydaveapp/internal/app/domain/service"
	"github.com/appydave/appydaveapp/internal/app/metrics"
	"github.com/appydave/appydaveapp/internal/app/services/catalog"
	"github.com/appydave/appydaveapp/internal/app/storage"
	"github.com/appydave/appydaveapp/pkg/logger"
)

const helloMessage = "Hello, AppyDaveApp! Visit our YouTube channel for more updates: https://www.youtube.com/@AppyDave/videos"

// HealthFunc reports whether the backing store is reachable.
type HealthFunc func(ctx context.Context) error

// handler bundles the HTTP endpoints for the catalog service.
type handler struct {
	catalog *catalog.Service
	health  HealthFunc
	log     *logger.Logger
}

// serviceResponse is the wire shape of a catalog record.
type serviceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewHandler returns a router exposing the public REST API. The health
// function may be nil when no store connectivity check applies.
func NewHandler(cat *catalog.Service, health HealthFunc, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	h := &handler{catalog: cat, health: health, log: log}

	r := mux.NewRouter()
	// Unknown paths and unmatched methods both produce a plain 404.
	r.MethodNotAllowedHandler = http.NotFoundHandler()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/hello", h.hello).Methods(http.MethodGet)
	api.HandleFunc("/services", h.listServices).Methods(http.MethodGet)
	api.HandleFunc("/services", h.createService).Methods(http.MethodPost)
	api.HandleFunc("/services/{id:[0-9]+}", h.getService).Methods(http.MethodGet)

	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}

func (h *handler) hello(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": helloMessage})
}

func (h *handler) listServices(w http.ResponseWriter, r *http.Request) {
	recs, err := h.catalog.List(r.Context())
	if err != nil {
		h.log.WithError(err).Error("list services")
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, toResponses(recs))
}

func (h *handler) createService(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := h.catalog.Create(r.Context(), payload.Name, payload.Description)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	metrics.RecordServiceCreated()
	writeJSON(w, http.StatusCreated, toResponse(created))
}

func (h *handler) getService(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(rec))
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusForError maps domain errors to HTTP status codes: validation failures
// are the caller's fault, missing records are 404, anything else means the
// store is unavailable.
func statusForError(err error) int {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusServiceUnavailable
	}
}

func toResponse(rec service.Record) serviceResponse {
	return serviceResponse{ID: rec.ID, Name: rec.Name, Description: rec.Description}
}

func toResponses(recs []service.Record) []serviceResponse {
	result := make([]serviceResponse, 0, len(recs))
	for _, rec := range recs {
		result = append(result, toResponse(rec))
	}
	return result
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
