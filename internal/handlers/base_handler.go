package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/coursebook/backend/internal/contract"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, contract.ErrorResponse{Message: message})
}

// respondValidationError sends a 400 response naming the failing field
func (h *BaseHandler) respondValidationError(w http.ResponseWriter, err *contract.ValidationError) {
	h.respondJSON(w, http.StatusBadRequest, err.Response())
}

// respondInternalError logs the failure and sends a generic 500 response
func (h *BaseHandler) respondInternalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	h.respondError(w, http.StatusInternalServerError, "Internal server error")
}
