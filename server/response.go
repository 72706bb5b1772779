package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"bestseller-dashboard/models"
	"bestseller-dashboard/utils"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// writeJSON encodes before writing the header so an unencodable payload
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, env Envelope, logger *utils.Logger) {
	body, err := json.Marshal(env)
	if err != nil {
		logger.Error("[server] Failed to encode JSON response: %v", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(Envelope{Error: "internal server error"})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func success(w http.ResponseWriter, data any, logger *utils.Logger) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data}, logger)
}

func failure(w http.ResponseWriter, status int, message string, logger *utils.Logger) {
	writeJSON(w, status, Envelope{Error: message}, logger)
}

// handleError maps domain errors to status codes. Anything unrecognised is a 500.
func handleError(w http.ResponseWriter, err error, logger *utils.Logger) {
	var domainErr *models.Error
	if !errors.As(err, &domainErr) {
		logger.Error("[server] Unhandled error: %v", err)
		failure(w, http.StatusInternalServerError, "internal server error", logger)
		return
	}

	switch domainErr.Code {
	case models.CodeBadRequest:
		failure(w, http.StatusBadRequest, domainErr.Message, logger)
	default:
		logger.Error("[server] %v", err)
		failure(w, http.StatusInternalServerError, domainErr.Message, logger)
	}
}
