// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/starboard/analytics"
	"github.com/danielhkuo/starboard/cliparse"
	"github.com/danielhkuo/starboard/middleware"
	"github.com/danielhkuo/starboard/models"
)

type DeviceHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDeviceHandler(db *sql.DB, cfg cliparse.Config) *DeviceHandler {
	return &DeviceHandler{db: db, cfg: cfg}
}

// Create handles POST /devices
func (h *DeviceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDeviceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	device := models.Device{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}

	_, err := h.db.Exec(`
		INSERT INTO device (id, name, created_at)
		VALUES ($1, $2, $3)
	`, device.ID, device.Name, device.CreatedAt)

	if err != nil {
		slog.Error("failed to insert device", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create device")
		return
	}

	slog.Info("device created", "device_id", device.ID, "name", device.Name)

	middleware.JSONResponse(w, http.StatusCreated, device)
}

// List handles GET /devices
// Returns all devices with their vote count and average rating
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT d.id, d.name, d.created_at,
		       COUNT(v.id) AS vote_count,
		       COALESCE(AVG(v.value), 0) AS average_rating
		FROM device d
		LEFT JOIN vote v ON v.device_id = d.id
		GROUP BY d.id, d.name, d.created_at
		ORDER BY d.created_at
	`)

	if err != nil {
		slog.Error("failed to query devices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	devices := []models.DeviceSummary{}
	for rows.Next() {
		var d models.DeviceSummary
		var avg float64
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.VoteCount, &avg); err != nil {
			slog.Error("failed to scan device", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		d.AverageRating = analytics.Round2(avg)
		devices = append(devices, d)
	}

	middleware.JSONResponse(w, http.StatusOK, devices)
}

// Get handles GET /devices/{id}
// Returns the device with its full vote history, newest first, each vote
// annotated with a humanized age and its classified meal period
func (h *DeviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("id")
	if deviceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var device models.Device
	err := h.db.QueryRow(`
		SELECT id, name, created_at FROM device WHERE id = $1
	`, deviceID).Scan(&device.ID, &device.Name, &device.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Device not found")
		return
	}
	if err != nil {
		slog.Error("failed to query device", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	votes, err := fetchVotes(h.db, deviceID)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	periods, err := fetchActiveMealPeriods(h.db)
	if err != nil {
		slog.Error("failed to query meal periods", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	history := make([]models.VoteHistoryEntry, 0, len(votes))
	// fetchVotes returns ascending; history reads newest first
	for i := len(votes) - 1; i >= 0; i-- {
		v := votes[i]
		entry := models.VoteHistoryEntry{
			ID:        v.ID,
			Value:     v.Value,
			CreatedAt: v.CreatedAt,
			TimeAgo:   humanize.Time(v.CreatedAt),
		}
		if meal := analytics.PeriodForVote(v, periods); meal != nil {
			entry.MealName = meal.Name
		}
		history = append(history, entry)
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeviceDetailResponse{
		Device: device,
		Votes:  history,
	})
}

// Delete handles DELETE /devices/{id}
// Deleting a device cascades to its votes; the deletion is permanent
func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("id")
	if deviceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM device WHERE id = $1`, deviceID)
	if err != nil {
		slog.Error("failed to delete device", "error", err)
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
		middleware.ErrorResponse(w, http.StatusNotFound, "Device not found")
		return
	}

	slog.Info("device deleted", "device_id", deviceID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Device deleted successfully",
	})
}

// ClearVotes handles DELETE /devices/{id}/votes
// Removes every vote belonging to the device, keeping the device itself
func (h *DeviceHandler) ClearVotes(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("id")
	if deviceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM device WHERE id = $1)
	`, deviceID).Scan(&exists)

	if err != nil {
		slog.Error("failed to query device", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Device not found")
		return
	}

	res, err := h.db.Exec(`DELETE FROM vote WHERE device_id = $1`, deviceID)
	if err != nil {
		slog.Error("failed to delete votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	deleted, _ := res.RowsAffected()

	slog.Info("votes cleared", "device_id", deviceID, "deleted", deleted)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "All votes deleted successfully",
		Deleted: int(deleted),
	})
}
