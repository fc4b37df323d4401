package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fitclub-go/internal/domain/members"
	"fitclub-go/internal/domain/plans"
	"fitclub-go/internal/domain/sessions"
	"fitclub-go/internal/domain/trainers"
	"fitclub-go/internal/validation"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeValidationError(w http.ResponseWriter, verrs *validation.Errors) {
	items := verrs.Fields()
	fields := make([]fieldError, 0, len(items))
	for _, item := range items {
		fields = append(fields, fieldError{Field: item.Field, Message: item.Message})
	}
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
		Code:    "validation_failed",
		Message: verrs.Error(),
		Fields:  fields,
	}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps domain errors to responses. Anything unrecognised is a 500
// whose message names the operation and the cause.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if verrs, ok := validation.As(err); ok {
		h.log.BusinessError(operation+": validation failed", err, "path", r.URL.Path)
		writeValidationError(w, verrs)
		return
	}

	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, members.ErrMemberNotFound),
		errors.Is(err, sessions.ErrSessionNotFound),
		errors.Is(err, sessions.ErrUnknownMember),
		errors.Is(err, plans.ErrPlanNotFound),
		errors.Is(err, trainers.ErrTrainerNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, sessions.ErrMemberRequired):
		status, code = http.StatusBadRequest, "member_required"
	case errors.Is(err, sessions.ErrSessionFull):
		status, code = http.StatusConflict, "session_full"
	case errors.Is(err, sessions.ErrAlreadyBooked):
		status, code = http.StatusConflict, "already_booked"
	case errors.Is(err, members.ErrDuplicateEmail):
		status, code = http.StatusConflict, "duplicate_email"
	}

	if status == http.StatusInternalServerError {
		h.log.InternalError(operation+": failed", err, "path", r.URL.Path)
		writeError(w, status, code, fmt.Sprintf("%s failed: %v", operation, err))
		return
	}

	h.log.BusinessError(operation+": rejected", err, "path", r.URL.Path)
	writeError(w, status, code, err.Error())
}
