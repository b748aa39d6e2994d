// Package web holds the JSON response and error plumbing shared by controllers.
package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "editmarket/internal/errors"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Code      string                       `json:"code"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

func WriteJSON(w http.ResponseWriter, status int, data any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps an application error onto its HTTP status. Anything outside
// the typed taxonomy is logged and reported as a generic 500.
func WriteError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	resp := ErrorResponse{TraceID: traceID, Message: err.Error(), Timestamp: time.Now().UTC()}

	if ve, ok := apperrors.IsValidationError(err); ok {
		resp.Status, resp.Code, resp.Message, resp.Details = http.StatusUnprocessableEntity, "VALIDATION_FAILED", ve.Message, ve.Details
	} else if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		resp.Status, resp.Code, resp.Message = http.StatusUnauthorized, "AUTHENTICATION_REQUIRED", ue.Message
	} else if fe, ok := apperrors.IsForbiddenError(err); ok {
		resp.Status, resp.Code, resp.Message = http.StatusForbidden, "AUTHORIZATION_DENIED", fe.Message
	} else if nf, ok := apperrors.IsNotFoundError(err); ok {
		resp.Status, resp.Code, resp.Message = http.StatusNotFound, "NOT_FOUND", nf.Message
	} else if ce, ok := apperrors.IsConflictError(err); ok {
		resp.Status, resp.Code, resp.Message = http.StatusConflict, "CONFLICT", ce.Message
	} else {
		logger.Error("unexpected error", zap.Error(err))
		resp.Status, resp.Code, resp.Message = http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred"
	}

	if resp.Status >= 400 && resp.Status < 500 {
		logger.Info("request rejected", zap.Int("status", resp.Status), zap.String("code", resp.Code), zap.String("reason", resp.Message))
	}

	WriteJSON(w, resp.Status, resp, logger)
}

// WriteMalformedBody reports a request body that is not valid JSON.
func WriteMalformedBody(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	logger.Warn("invalid JSON body", zap.Error(err))
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		TraceID:   traceID,
		Status:    http.StatusBadRequest,
		Code:      "VALIDATION_ERROR",
		Message:   "request body must be valid JSON",
		Details:   []apperrors.ValidationDetail{{Field: "body", Message: "request body must be valid JSON"}},
		Timestamp: time.Now().UTC(),
	}, logger)
}

// DecodeJSON decodes a bounded request body into dst. An empty body decodes to
// the zero value so field validation can report what is missing.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// PathID reads a numeric path parameter. Ids that cannot exist are reported as
// not found under the given resource name.
func PathID(r *http.Request, param, resource string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewNotFoundError(resource + " not found")
	}
	return uint(id), nil
}
