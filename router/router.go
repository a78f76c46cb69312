// Copyright (c) 2026 Contest Ops.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/contestops/compareround/cliparse"
	"github.com/contestops/compareround/handlers"
	"github.com/contestops/compareround/middleware"
	"github.com/contestops/compareround/store"
)

func NewRouter(s store.SessionStore, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	compareHandler := handlers.NewCompareHandler(s, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Round operations (operator key; force-confirm requires chief key)
	mux.HandleFunc("POST /contests/{id}/compare/start", middleware.WithLogging(compareHandler.StartCompare))
	mux.HandleFunc("POST /contests/{id}/compare/confirm", middleware.WithLogging(compareHandler.ConfirmCompare))
	mux.HandleFunc("POST /contests/{id}/compare/force-confirm", middleware.WithLogging(compareHandler.ForceConfirmCompare))
	mux.HandleFunc("POST /contests/{id}/compare/cancel", middleware.WithLogging(compareHandler.CancelCompare))
	mux.HandleFunc("POST /contests/{id}/compare/end", middleware.WithLogging(compareHandler.EndCompare))

	// Read side (public to the console and judge clients)
	mux.HandleFunc("GET /contests/{id}/compare", middleware.WithLogging(compareHandler.GetSession))
	mux.HandleFunc("GET /contests/{id}/compare/tally", middleware.WithLogging(compareHandler.GetTally))
	mux.HandleFunc("GET /contests/{id}/compare/history", middleware.WithLogging(compareHandler.GetHistory))
	mux.HandleFunc("GET /contests/{id}/compare/watch", compareHandler.WatchSession)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("compareround API v1"))
	})

	return mux
}
