package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/form-live/api/internal/core/domain"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps domain sentinel errors to HTTP statuses. Anything
// unrecognized is an internal error; the wrapped detail stays in the logs,
// not in the response.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGroupNotFound):
		writeError(w, http.StatusNotFound, domain.ErrGroupNotFound.Error())
	case errors.Is(err, domain.ErrAlreadyVoted):
		writeError(w, http.StatusConflict, domain.ErrAlreadyVoted.Error())
	case errors.Is(err, domain.ErrGroupHasVotes):
		writeError(w, http.StatusConflict, domain.ErrGroupHasVotes.Error())
	case errors.Is(err, domain.ErrVotingDisabled):
		writeError(w, http.StatusForbidden, domain.ErrVotingDisabled.Error())
	case errors.Is(err, domain.ErrResultsHidden):
		writeError(w, http.StatusForbidden, domain.ErrResultsHidden.Error())
	case errors.Is(err, domain.ErrInvalidScore),
		errors.Is(err, domain.ErrInvalidDeviceID),
		errors.Is(err, domain.ErrInvalidGroupID),
		errors.Is(err, domain.ErrInvalidGroupName),
		errors.Is(err, domain.ErrInvalidInterval):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, domain.ErrInternal.Error())
	}
}
