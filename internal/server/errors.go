// Package server exposes the attention feed and overlay mutations over HTTP.
package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorBody is the JSON envelope for every non-2xx response.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: msg, Code: code}); err != nil {
		zap.L().Error("server: write error response", zap.Error(err))
	}
}

func writeValidationError(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, "validation_error", msg)
}

func writeAuthError(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "auth_error", "missing or invalid user identity")
}

// writeInternalError logs the real cause and returns an opaque message.
func writeInternalError(w http.ResponseWriter, err error) {
	zap.L().Error("server: internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: write response", zap.Error(err))
	}
}
