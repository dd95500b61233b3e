package main

import (
	"encoding/json"
	"net/http"

	"github.com/Sternrassler/user-directory-client/pkg/controller"
	"github.com/Sternrassler/user-directory-client/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// snapshotter is the read side of the controller.
type snapshotter interface {
	Snapshot() controller.Snapshot
}

func newOpsRouter(ctrl snapshotter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	r.Get("/state", stateHandler(ctrl))
	r.Handle("/metrics", metrics.Handler())

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func stateHandler(ctrl snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := ctrl.Snapshot().View()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(view); err != nil {
			log.Warn().
				Err(err).
				Str("component", serviceName).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("Failed to write state")
		}
	}
}
