package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/form-live/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AdminHandler struct {
	admin     ports.AdminService
	groups    ports.GroupService
	batch     ports.BatchProcessor
	scheduler ports.Scheduler
}

func NewAdminHandler(admin ports.AdminService, groups ports.GroupService, batch ports.BatchProcessor, scheduler ports.Scheduler) *AdminHandler {
	return &AdminHandler{
		admin:     admin,
		groups:    groups,
		batch:     batch,
		scheduler: scheduler,
	}
}

type groupRequest struct {
	Name string `json:"name"`
}

func (h *AdminHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.admin.CreateGroup(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *AdminHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var req groupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.admin.UpdateGroup(r.Context(), id, req.Name); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	if err := h.admin.DeleteGroup(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type bulkGroupsRequest struct {
	Names []string `json:"names"`
}

func (h *AdminHandler) BulkCreateGroups(w http.ResponseWriter, r *http.Request) {
	var req bulkGroupsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Names) == 0 {
		writeError(w, http.StatusBadRequest, "names must not be empty")
		return
	}

	ids, err := h.admin.BulkCreateGroups(r.Context(), req.Names)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	writeJSON(w, http.StatusCreated, map[string][]string{"ids": out})
}

type reorderRequest struct {
	Orders map[string]int `json:"orders"`
}

func (h *AdminHandler) ReorderGroups(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orders := make(map[uuid.UUID]int, len(req.Orders))
	for raw, order := range req.Orders {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid group id")
			return
		}
		orders[id] = order
	}

	if err := h.groups.UpdateGroupOrders(r.Context(), orders); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListVotes answers the full vote list, optionally bounded by from/to query
// parameters in RFC 3339. Either bound may be given alone; the missing side
// is left open.
func (h *AdminHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from != "" || to != "" {
		start := time.Time{}
		end := time.Now()

		if from != "" {
			parsed, err := time.Parse(time.RFC3339, from)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid from timestamp")
				return
			}
			start = parsed
		}
		if to != "" {
			parsed, err := time.Parse(time.RFC3339, to)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid to timestamp")
				return
			}
			end = parsed
		}

		votes, err := h.admin.GetVotesByDateRange(r.Context(), start, end)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, votes)
		return
	}

	votes, err := h.admin.GetAllVotes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

func (h *AdminHandler) ListVotesByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	votes, err := h.admin.GetVotesByGroup(r.Context(), groupID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

func (h *AdminHandler) DeleteVote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vote id")
		return
	}

	if err := h.admin.DeleteVote(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ResetVotes(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.ResetAllVotes(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ExportVotes(w http.ResponseWriter, r *http.Request) {
	csv, err := h.admin.ExportVotesToCSV(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="votes.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csv))
}

func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.admin.GetSettings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

type settingsRequest struct {
	VotingEnabled      *bool   `json:"voting_enabled"`
	ResultsVisible     *bool   `json:"results_visible"`
	UpdateInterval     *int    `json:"update_interval"`
	AggregationEnabled *bool   `json:"aggregation_enabled"`
	CurrentGroup       *string `json:"current_group"`
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := ports.SettingsPatch{
		VotingEnabled:      req.VotingEnabled,
		ResultsVisible:     req.ResultsVisible,
		UpdateInterval:     req.UpdateInterval,
		AggregationEnabled: req.AggregationEnabled,
	}
	if req.CurrentGroup != nil {
		id, err := uuid.Parse(*req.CurrentGroup)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid group id")
			return
		}
		patch.CurrentGroup = &id
	}

	if err := h.admin.UpdateSettings(r.Context(), patch); err != nil {
		writeServiceError(w, err)
		return
	}

	settings, err := h.admin.GetSettings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// RunAggregation triggers one batch cycle on demand. A cycle already in
// flight answers 409 with Skipped set.
func (h *AdminHandler) RunAggregation(w http.ResponseWriter, r *http.Request) {
	if !h.batch.IsProcessingEnabled(r.Context()) {
		writeError(w, http.StatusForbidden, "aggregation is disabled")
		return
	}

	result := h.batch.ProcessBatchAggregation(r.Context())
	if result.Skipped {
		writeJSON(w, http.StatusConflict, result)
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type aggregationStatusResponse struct {
	ports.ProcessingStatus
	History []ports.BatchHistoryEntry `json:"history"`
}

func (h *AdminHandler) AggregationStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, aggregationStatusResponse{
		ProcessingStatus: h.batch.GetProcessingStatus(r.Context()),
		History:          h.batch.History(),
	})
}

func (h *AdminHandler) SchedulerStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.scheduler.Status())
}

type schedulerRequest struct {
	Interval int `json:"interval"`
}

func (h *AdminHandler) StartScheduler(w http.ResponseWriter, r *http.Request) {
	var req schedulerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.scheduler.Start(req.Interval)
	if !result.Success {
		writeJSON(w, http.StatusConflict, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) StopScheduler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.scheduler.Stop())
}

func (h *AdminHandler) RestartScheduler(w http.ResponseWriter, r *http.Request) {
	var req schedulerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.scheduler.Restart(req.Interval)
	if !result.Success {
		writeJSON(w, http.StatusConflict, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
