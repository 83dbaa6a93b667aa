package http

import (
	"net/http"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ResultHandler struct {
	results  ports.ResultService
	settings ports.SettingsService
}

func NewResultHandler(results ports.ResultService, settings ports.SettingsService) *ResultHandler {
	return &ResultHandler{
		results:  results,
		settings: settings,
	}
}

type resultListResponse struct {
	Results   []domain.Result `json:"results"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// ListResults returns the cached ranking. When the admin has hidden results
// the public endpoint answers 403 regardless of the cache content.
func (h *ResultHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	visible, err := h.settings.AreResultsVisible(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !visible {
		writeError(w, http.StatusForbidden, domain.ErrResultsHidden.Error())
		return
	}

	results, err := h.results.ListResults(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	updatedAt, err := h.results.GetLatestUpdateTime(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultListResponse{
		Results:   results,
		UpdatedAt: updatedAt,
	})
}

func (h *ResultHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	visible, err := h.settings.AreResultsVisible(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !visible {
		writeError(w, http.StatusForbidden, domain.ErrResultsHidden.Error())
		return
	}

	groupID, err := uuid.Parse(chi.URLParam(r, "groupId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	result, err := h.results.GetResultByGroup(r.Context(), groupID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "no result for group")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
