// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/starboard/analytics"
	"github.com/danielhkuo/starboard/cliparse"
	"github.com/danielhkuo/starboard/middleware"
	"github.com/danielhkuo/starboard/models"
)

// DefaultEvolutionDays is the trailing window for evolution series when the
// request does not say otherwise. The admin dashboard asks for 30.
const DefaultEvolutionDays = 14

type StatsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewStatsHandler(db *sql.DB, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{db: db, cfg: cfg}
}

// DeviceStats handles GET /devices/{id}/stats
// Returns the overall rating summary (all votes, classified or not) plus
// one MealStats entry per configured meal period
func (h *StatsHandler) DeviceStats(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("id")
	if deviceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var name string
	err := h.db.QueryRow(`SELECT name FROM device WHERE id = $1`, deviceID).Scan(&name)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Device not found")
		return
	}
	if err != nil {
		slog.Error("failed to query device", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	votes, periods, ok := h.snapshot(w, deviceID)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeviceStatsResponse{
		DeviceID: deviceID,
		Name:     name,
		Overall:  analytics.Summarize(votes),
		Meals:    analytics.CalculateMealStats(votes, periods),
	})
}

// GlobalStats handles GET /stats
// Same shape as device stats, aggregated across every device
func (h *StatsHandler) GlobalStats(w http.ResponseWriter, r *http.Request) {
	var deviceCount int
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM device`).Scan(&deviceCount); err != nil {
		slog.Error("failed to count devices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	votes, periods, ok := h.snapshot(w, "")
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GlobalStatsResponse{
		DeviceCount: deviceCount,
		Overall:     analytics.Summarize(votes),
		Meals:       analytics.CalculateMealStats(votes, periods),
	})
}

// Evolution handles GET /devices/{id}/evolution?days=N
// Returns exactly days+1 date-ordered points, zero-vote days included
func (h *StatsHandler) Evolution(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("id")
	if deviceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}
	if !h.deviceExists(w, deviceID) {
		return
	}

	days := DefaultEvolutionDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 || parsed > 365 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "days must be an integer between 1 and 365")
			return
		}
		days = parsed
	}

	votes, periods, ok := h.snapshot(w, deviceID)
	if !ok {
		return
	}

	points := analytics.DailyEvolution(votes, periods, days, time.Now().UTC())
	middleware.JSONResponse(w, http.StatusOK, points)
}

// Comparison handles GET /devices/{id}/comparison
// Query params primary_from, primary_to, comparison_from, comparison_to are
// YYYY-MM-DD; each "to" defaults to its "from". With no params the endpoint
// compares today against all recorded history.
func (h *StatsHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("id")
	if deviceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}
	if !h.deviceExists(w, deviceID) {
		return
	}

	votes, periods, ok := h.snapshot(w, deviceID)
	if !ok {
		return
	}

	q := r.URL.Query()
	primary, err := parseDateRange(q.Get("primary_from"), q.Get("primary_to"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "primary range dates must be YYYY-MM-DD")
		return
	}
	comparison, err := parseDateRange(q.Get("comparison_from"), q.Get("comparison_to"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "comparison range dates must be YYYY-MM-DD")
		return
	}

	if primary.From.IsZero() && comparison.From.IsZero() {
		middleware.JSONResponse(w, http.StatusOK,
			analytics.CompareTodayVsAllTime(votes, periods, time.Now().UTC()))
		return
	}

	if primary.From.IsZero() {
		now := time.Now().UTC()
		primary = analytics.DateRange{From: now, To: now}
	}
	if comparison.From.IsZero() {
		comparison = allTimeRange(votes)
	}

	middleware.JSONResponse(w, http.StatusOK,
		analytics.ComparePeriods(votes, periods, primary, comparison))
}

// snapshot reads the vote and meal-period state a stats request computes
// from. An empty deviceID means all devices. On failure it writes the
// error response and returns ok=false.
func (h *StatsHandler) snapshot(w http.ResponseWriter, deviceID string) ([]models.Vote, []models.MealPeriod, bool) {
	votes, err := fetchVotes(h.db, deviceID)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, nil, false
	}

	periods, err := fetchActiveMealPeriods(h.db)
	if err != nil {
		slog.Error("failed to query meal periods", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, nil, false
	}

	return votes, periods, true
}

func (h *StatsHandler) deviceExists(w http.ResponseWriter, deviceID string) bool {
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM device WHERE id = $1)
	`, deviceID).Scan(&exists)

	if err != nil {
		slog.Error("failed to query device", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Device not found")
		return false
	}
	return true
}

// parseDateRange builds an inclusive calendar-day range from YYYY-MM-DD
// strings. Both empty yields a zero range; an empty "to" means a
// single-day range.
func parseDateRange(fromStr, toStr string) (analytics.DateRange, error) {
	var r analytics.DateRange
	if fromStr == "" {
		return r, nil
	}

	from, err := time.ParseInLocation("2006-01-02", fromStr, time.UTC)
	if err != nil {
		return r, err
	}
	r.From = from

	if toStr != "" {
		to, err := time.ParseInLocation("2006-01-02", toStr, time.UTC)
		if err != nil {
			return analytics.DateRange{}, err
		}
		r.To = to
	}
	return r, nil
}

// allTimeRange spans from the earliest to the latest recorded vote
func allTimeRange(votes []models.Vote) analytics.DateRange {
	var r analytics.DateRange
	for _, v := range votes {
		if r.From.IsZero() || v.CreatedAt.Before(r.From) {
			r.From = v.CreatedAt
		}
		if r.To.IsZero() || v.CreatedAt.After(r.To) {
			r.To = v.CreatedAt
		}
	}
	return r
}

// fetchVotes returns votes ordered by creation time, scoped to one device
// when deviceID is non-empty
func fetchVotes(db *sql.DB, deviceID string) ([]models.Vote, error) {
	query := `
		SELECT id, device_id, value, created_at
		FROM vote
		ORDER BY created_at
	`
	args := []any{}
	if deviceID != "" {
		query = `
			SELECT id, device_id, value, created_at
			FROM vote
			WHERE device_id = $1
			ORDER BY created_at
		`
		args = append(args, deviceID)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.DeviceID, &v.Value, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}

	return votes, rows.Err()
}

// fetchActiveMealPeriods returns active periods ordered by start_time.
// The order matters: classification is first-match-wins.
func fetchActiveMealPeriods(db *sql.DB) ([]models.MealPeriod, error) {
	rows, err := db.Query(`
		SELECT id, name, start_time, end_time, is_active, created_at
		FROM meal_period
		WHERE is_active = TRUE
		ORDER BY start_time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := []models.MealPeriod{}
	for rows.Next() {
		var p models.MealPeriod
		if err := rows.Scan(&p.ID, &p.Name, &p.StartTime, &p.EndTime, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}
