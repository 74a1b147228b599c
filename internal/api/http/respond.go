package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"campuspass-backend/internal/approval"
	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/logger"
	"campuspass-backend/internal/service"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps the engine's typed errors onto HTTP statuses. The
// conflict family (lost race, already out, no active exit) maps to 409
// so clients know to refetch before retrying.
func writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION", Message: verr.Error()})
		return
	}

	var terr *approval.TransitionError
	if errors.As(err, &terr) {
		status := http.StatusConflict
		switch terr.Code {
		case approval.CodeRoleNotAuthorized:
			status = http.StatusForbidden
		case approval.CodeInvalidTarget:
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, errorBody{Code: string(terr.Code), Message: terr.Error()})
		return
	}

	switch {
	case errors.Is(err, domain.ErrPassNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Code: "PASS_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrStudentNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Code: "STUDENT_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrStatusConflict):
		writeJSON(w, http.StatusConflict, errorBody{Code: "STATUS_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyOut):
		writeJSON(w, http.StatusConflict, errorBody{Code: "ALREADY_OUT", Message: err.Error()})
	case errors.Is(err, domain.ErrNoActiveExit):
		writeJSON(w, http.StatusConflict, errorBody{Code: "NO_ACTIVE_EXIT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotAuthorizedForExit):
		writeJSON(w, http.StatusConflict, errorBody{Code: "NOT_AUTHORIZED_FOR_EXIT", Message: err.Error()})
	default:
		logger.Error("Unhandled error in HTTP handler", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: "INTERNAL", Message: "internal error"})
	}
}
