package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/notpepejulian/aws-manager/pkg/aws"
	"github.com/notpepejulian/aws-manager/pkg/store"
)

// envelope is the uniform response body: {"success": ..., "data": ...} on
// success, {"success": false, "error": ...} on failure.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string, data any) {
	respondJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// respondError translates core and store failures into HTTP statuses:
// bad credentials or malformed input are the caller's problem (400-class),
// missing rows are 404, duplicate registrations 409, and anything else is a
// 500 whose detail is logged, never returned.
func respondError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var configErr *aws.ConfigError
	var assumeErr *aws.AssumeRoleError

	switch {
	case errors.As(err, &configErr):
		respondJSON(w, http.StatusBadRequest, envelope{Error: configErr.Error()})
	case errors.As(err, &assumeErr):
		respondJSON(w, http.StatusBadRequest, envelope{Error: assumeErr.Error()})
	case errors.Is(err, store.ErrNotFound):
		respondJSON(w, http.StatusNotFound, envelope{Error: "account not found"})
	case errors.Is(err, store.ErrDuplicate):
		respondJSON(w, http.StatusConflict, envelope{Error: "this AWS account is already registered"})
	default:
		logger.Error().Err(err).Msg("internal error")
		respondJSON(w, http.StatusInternalServerError, envelope{Error: "internal server error"})
	}
}
