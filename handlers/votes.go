// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/starboard/cliparse"
	"github.com/danielhkuo/starboard/middleware"
	"github.com/danielhkuo/starboard/models"
)

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// Submit handles POST /votes
// Records a 1-5 star rating for a device, timestamped at the server's UTC
// clock. Value range is validated here so the aggregation core only ever
// sees in-domain votes.
func (h *VoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DeviceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "device_id is required")
		return
	}
	if req.Value < 1 || req.Value > 5 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "value must be between 1 and 5")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM device WHERE id = $1)
	`, req.DeviceID).Scan(&exists)

	if err != nil {
		slog.Error("failed to query device", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Device not found")
		return
	}

	vote := models.Vote{
		ID:        uuid.NewString(),
		DeviceID:  req.DeviceID,
		Value:     req.Value,
		CreatedAt: time.Now().UTC(),
	}

	_, err = h.db.Exec(`
		INSERT INTO vote (id, device_id, value, created_at)
		VALUES ($1, $2, $3, $4)
	`, vote.ID, vote.DeviceID, vote.Value, vote.CreatedAt)

	if err != nil {
		slog.Error("failed to insert vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	slog.Info("vote submitted", "vote_id", vote.ID, "device_id", vote.DeviceID, "value", vote.Value)

	middleware.JSONResponse(w, http.StatusCreated, vote)
}

// Delete handles DELETE /votes/{id}
func (h *VoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM vote WHERE id = $1`, voteID)
	if err != nil {
		slog.Error("failed to delete vote", "error", err)
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
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}

	slog.Info("vote deleted", "vote_id", voteID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Vote deleted successfully",
	})
}
