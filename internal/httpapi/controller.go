// Package httpapi exposes the engine over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"campaign-engine/internal/engine"
	"campaign-engine/internal/observability"
)

// Controller holds the HTTP handlers and their dependencies.
type Controller struct {
	Engine *engine.Engine
	Log    *zap.Logger

	// HealthCheck probes backing stores; nil means always healthy.
	HealthCheck func(ctx context.Context) error
}

// NewController returns a new controller.
func NewController(eng *engine.Engine, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{Engine: eng, Log: log}
}

// NewRouter returns a new router with all the routes defined in this package.
func (c *Controller) NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/health", http.HandlerFunc(c.HandleHealth)).Methods(http.MethodGet)
	r.Handle("/metrics", observability.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/list", c.instrument("/list", c.HandleList)).Methods(http.MethodGet)
	r.HandleFunc("/campaign/{id}", c.instrument("/campaign/{id}", c.HandleCampaign)).Methods(http.MethodGet)

	return r
}

// HandleHealth reports process liveness.
func (c *Controller) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if c.HealthCheck != nil {
		if err := c.HealthCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "errored", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// instrument wraps a handler with request duration metrics.
func (c *Controller) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		observability.RecordHTTPRequest(route, rec.status, time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
