package http

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/form-live/api/internal/core/ports"
	"github.com/form-live/api/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

// Score is decoded as a float so that fractional payloads like 4.5 are
// rejected by validation instead of silently truncated.
type submitVoteRequest struct {
	GroupID  string  `json:"groupId"`
	Score    float64 `json:"score"`
	DeviceID string  `json:"deviceId"`
}

type submitVoteResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req submitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if result := validation.ValidateVoteInput(req.GroupID, req.Score, req.DeviceID); !result.Valid {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Errors: result.Errors,
		})
		return
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	id, err := h.service.SubmitVote(r.Context(), ports.SubmitVoteInput{
		GroupID:  groupID,
		Score:    int(math.Round(req.Score)),
		DeviceID: req.DeviceID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitVoteResponse{
		ID:      id.String(),
		Message: "vote recorded",
	})
}

func (h *VoteHandler) GetVoteStatus(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	groupIDParam := chi.URLParam(r, "groupId")

	groupID, err := uuid.Parse(groupIDParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	voted, err := h.service.HasVoted(r.Context(), deviceID, groupID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"hasVoted": voted})
}

func (h *VoteHandler) GetVoteHistory(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "missing deviceId")
		return
	}

	votes, err := h.service.GetVoteHistory(r.Context(), deviceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, votes)
}
