package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"redsocial/internal/repository"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is the standard success payload for mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Message: message})
}

func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError maps the repository error kinds onto HTTP statuses.
// Anything unknown is logged and returned as the generic fallback.
func respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, "not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicateEmail):
		WriteError(w, "email already registered", http.StatusBadRequest)
	case errors.Is(err, repository.ErrInvalidCredentials):
		WriteError(w, "invalid email or password", http.StatusUnauthorized)
	default:
		logrus.WithError(err).Error(fallback)
		WriteError(w, fallback, http.StatusInternalServerError)
	}
}
