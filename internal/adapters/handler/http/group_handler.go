package http

import (
	"net/http"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type GroupHandler struct {
	service ports.GroupService
}

func NewGroupHandler(service ports.GroupService) *GroupHandler {
	return &GroupHandler{
		service: service,
	}
}

func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.GetAllGroups(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	group, err := h.service.GetGroupByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if group == nil {
		writeError(w, http.StatusNotFound, domain.ErrGroupNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, group)
}
