// Package web serves the local event endpoint that UI front-ends poll
// and subscribe to while provisioning runs.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/meowcraft/launcher/internal/middleware"
	"github.com/meowcraft/launcher/internal/provision"
	"github.com/meowcraft/launcher/internal/web/sse"
)

// StatusProvider reports the current provisioning status
type StatusProvider interface {
	Status() provision.Status
}

// RouterConfig holds configuration for the event router
type RouterConfig struct {
	Logger *slog.Logger
	Status StatusProvider
	Hub    *sse.Hub
}

// NewRouter creates the event server's router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	r.HandleFunc("/events", func(w http.ResponseWriter, req *http.Request) {
		sse.ServeSSE(w, req, cfg.Hub)
	}).Methods(http.MethodGet)

	r.HandleFunc("/status", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cfg.Status.Status()); err != nil {
			cfg.Logger.Error("encoding status response", slog.Any("error", err))
		}
	}).Methods(http.MethodGet)

	return r
}
