package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "editmarket/internal/errors"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{Field: "price", Message: "must be positive"}), http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"unauthorized", apperrors.NewUnauthorizedError("authentication required"), http.StatusUnauthorized, "AUTHENTICATION_REQUIRED"},
		{"forbidden", apperrors.NewForbiddenError("only freelancers can claim orders"), http.StatusForbidden, "AUTHORIZATION_DENIED"},
		{"not found", fmt.Errorf("loading: %w", apperrors.NewNotFoundError("order not found")), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperrors.NewConflictError("order is not available for claiming"), http.StatusConflict, "CONFLICT"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, "trace-1", tt.err, zap.NewNop())

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "trace-1", body.TraceID)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.code, body.Code)
			assert.False(t, body.Timestamp.IsZero())
		})
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, "t", errors.New("dial tcp 10.0.0.3:3306: connection refused"), zap.NewNop())

	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
	assert.Contains(t, rec.Body.String(), "an unexpected error occurred")
}

func TestWriteError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, "t", apperrors.NewValidationError("validation failed",
		apperrors.ValidationDetail{Field: "title", Message: "title is required"},
		apperrors.ValidationDetail{Field: "price", Message: "price must be greater than 0"},
	), zap.NewNop())

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Details, 2)
	assert.Equal(t, "title", body.Details[0].Field)
	assert.Equal(t, "price", body.Details[1].Field)
}

func TestWriteMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteMalformedBody(rec, "t", errors.New("unexpected EOF"), zap.NewNop())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"VALIDATION_ERROR"`)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"reel"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "reel", dst.Title)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestPathID(t *testing.T) {
	route := func(raw string) (uint, error) {
		var id uint
		var err error
		router := chi.NewRouter()
		router.Get("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err = PathID(r, "id", "order")
		})
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/"+raw, nil))
		return id, err
	}

	id, err := route("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"abc", "0", "-1", "99999999999"} {
		_, err := route(raw)
		_, ok := apperrors.IsNotFoundError(err)
		assert.True(t, ok, raw)
	}
}

func TestTrace(t *testing.T) {
	var seen string
	h := Trace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(TraceHeader))
}
