// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/starboard/cliparse"
	"github.com/danielhkuo/starboard/handlers"
	"github.com/danielhkuo/starboard/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	deviceHandler := handlers.NewDeviceHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	mealPeriodHandler := handlers.NewMealPeriodHandler(db, cfg)
	statsHandler := handlers.NewStatsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Device management (admin operations)
	mux.HandleFunc("POST /devices", middleware.WithLogging(deviceHandler.Create))
	mux.HandleFunc("GET /devices", middleware.WithLogging(deviceHandler.List))
	mux.HandleFunc("GET /devices/{id}", middleware.WithLogging(deviceHandler.Get))
	mux.HandleFunc("DELETE /devices/{id}", middleware.WithLogging(deviceHandler.Delete))
	mux.HandleFunc("DELETE /devices/{id}/votes", middleware.WithLogging(deviceHandler.ClearVotes))

	// Vote submission (public, called by voting terminals)
	mux.HandleFunc("POST /votes", middleware.WithLogging(voteHandler.Submit))
	mux.HandleFunc("DELETE /votes/{id}", middleware.WithLogging(voteHandler.Delete))

	// Meal period configuration
	mux.HandleFunc("GET /meal-periods", middleware.WithLogging(mealPeriodHandler.List))
	mux.HandleFunc("POST /meal-periods", middleware.WithLogging(mealPeriodHandler.Create))
	mux.HandleFunc("GET /meal-periods/current", middleware.WithLogging(mealPeriodHandler.Current))
	mux.HandleFunc("DELETE /meal-periods/{id}", middleware.WithLogging(mealPeriodHandler.Delete))

	// Aggregated statistics
	mux.HandleFunc("GET /stats", middleware.WithLogging(statsHandler.GlobalStats))
	mux.HandleFunc("GET /devices/{id}/stats", middleware.WithLogging(statsHandler.DeviceStats))
	mux.HandleFunc("GET /devices/{id}/evolution", middleware.WithLogging(statsHandler.Evolution))
	mux.HandleFunc("GET /devices/{id}/comparison", middleware.WithLogging(statsHandler.Comparison))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("starboard API v1"))
	})

	return mux
}
