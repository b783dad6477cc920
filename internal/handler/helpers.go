package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/boddenberg/botshop-admin-bfa/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, domain.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// maxStatusLen bounds the status filter value accepted from clients.
const maxStatusLen = 32

// parseStatus validates the status filter of a request. ok is false when
// the request did not carry one.
func parseStatus(raw string) (status string, ok bool, err error) {
	status = strings.TrimSpace(raw)
	if status == "" {
		return "", false, nil
	}
	if len(status) > maxStatusLen || strings.ContainsAny(status, "&=?#/ ") {
		return "", false, &domain.ErrValidation{Field: "status", Message: "invalid status filter"}
	}
	return status, true, nil
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var validation *domain.ErrValidation
	var request *domain.ErrRequest
	var decode *domain.ErrDecode
	var circuitOpen *domain.ErrCircuitOpen
	var external *domain.ErrExternalService

	switch {
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &request):
		logger.Warn("admin API rejected request", zap.Int("status", request.Status))
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &decode):
		logger.Error("admin API returned malformed body", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &circuitOpen):
		logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &external):
		logger.Error("admin API unreachable", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
