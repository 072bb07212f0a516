// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/starboard/analytics"
	"github.com/danielhkuo/starboard/cliparse"
	"github.com/danielhkuo/starboard/middleware"
	"github.com/danielhkuo/starboard/models"
)

type MealPeriodHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewMealPeriodHandler(db *sql.DB, cfg cliparse.Config) *MealPeriodHandler {
	return &MealPeriodHandler{db: db, cfg: cfg}
}

// List handles GET /meal-periods
// Returns active meal periods ordered by start_time; classification
// downstream preserves this order for first-match tie-breaking
func (h *MealPeriodHandler) List(w http.ResponseWriter, r *http.Request) {
	periods, err := fetchActiveMealPeriods(h.db)
	if err != nil {
		slog.Error("failed to query meal periods", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, periods)
}

// Create handles POST /meal-periods
// There is no update operation - changing a period is delete and recreate
func (h *MealPeriodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMealPeriodRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, err := analytics.ParseClock(req.StartTime); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_time must be HH:MM or HH:MM:SS")
		return
	}
	if _, err := analytics.ParseClock(req.EndTime); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "end_time must be HH:MM or HH:MM:SS")
		return
	}

	period := models.MealPeriod{
		ID:        uuid.NewString(),
		Name:      req.Name,
		StartTime: normalizeClock(req.StartTime),
		EndTime:   normalizeClock(req.EndTime),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	_, err := h.db.Exec(`
		INSERT INTO meal_period (id, name, start_time, end_time, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, period.ID, period.Name, period.StartTime, period.EndTime, period.IsActive, period.CreatedAt)

	if err != nil {
		slog.Error("failed to insert meal period", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create meal period")
		return
	}

	slog.Info("meal period created", "meal_period_id", period.ID, "name", period.Name,
		"start", period.StartTime, "end", period.EndTime)

	middleware.JSONResponse(w, http.StatusCreated, period)
}

// Delete handles DELETE /meal-periods/{id}
func (h *MealPeriodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	periodID := r.PathValue("id")
	if periodID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM meal_period WHERE id = $1`, periodID)
	if err != nil {
		slog.Error("failed to delete meal period", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Meal period not found")
		return
	}

	slog.Info("meal period deleted", "meal_period_id", periodID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Meal period deleted successfully",
	})
}

// Current handles GET /meal-periods/current
// Returns the meal period covering the current UTC time, or a null meal
func (h *MealPeriodHandler) Current(w http.ResponseWriter, r *http.Request) {
	periods, err := fetchActiveMealPeriods(h.db)
	if err != nil {
		slog.Error("failed to query meal periods", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CurrentMealResponse{
		Meal: analytics.CurrentPeriod(periods, time.Now().UTC()),
	})
}

// normalizeClock stores times uniformly as HH:MM:SS
func normalizeClock(s string) string {
	if len(s) == 5 {
		return s + ":00"
	}
	return s
}
