package file

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"editmarket/internal/auth"
	"editmarket/internal/domain"
	apperrors "editmarket/internal/errors"
)

type mockFileUseCase struct {
	RequestUploadFunc func(ctx context.Context, id auth.Identity, req UploadRequest) (*UploadResponse, error)
	ConfirmFunc       func(ctx context.Context, id auth.Identity, fileID uint) (*FileDTO, error)
	ListForOrderFunc  func(ctx context.Context, id auth.Identity, orderID uint) ([]FileDTO, error)
	DownloadFunc      func(ctx context.Context, id auth.Identity, fileID uint) (*DownloadResponse, error)
}

func (m *mockFileUseCase) RequestUpload(ctx context.Context, id auth.Identity, req UploadRequest) (*UploadResponse, error) {
	return m.RequestUploadFunc(ctx, id, req)
}

func (m *mockFileUseCase) Confirm(ctx context.Context, id auth.Identity, fileID uint) (*FileDTO, error) {
	return m.ConfirmFunc(ctx, id, fileID)
}

func (m *mockFileUseCase) ListForOrder(ctx context.Context, id auth.Identity, orderID uint) ([]FileDTO, error) {
	return m.ListForOrderFunc(ctx, id, orderID)
}

func (m *mockFileUseCase) Download(ctx context.Context, id auth.Identity, fileID uint) (*DownloadResponse, error) {
	return m.DownloadFunc(ctx, id, fileID)
}

func newTestRouter(uc FileUseCase) (http.Handler, string) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	sessions := auth.NewSessions(issuer, "session", false, zap.NewNop())
	c := NewController(uc, zap.NewNop())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireSession)
		r.Post("/uploads", c.HandleUpload)
		r.Post("/files/{id}/confirm", c.HandleConfirm)
		r.Get("/files/{id}/download", c.HandleDownload)
		r.Get("/orders/{id}/files", c.HandleListForOrder)
	})

	token, _, err := issuer.Issue(auth.Identity{UserID: 1, Email: "c@example.com", Name: "C", Role: domain.RoleCustomer})
	if err != nil {
		panic(err)
	}
	return r, token
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHandleUpload(t *testing.T) {
	uc := &mockFileUseCase{RequestUploadFunc: func(_ context.Context, id auth.Identity, req UploadRequest) (*UploadResponse, error) {
		assert.Equal(t, uint(1), id.UserID)
		assert.Equal(t, "clip.mp4", req.Filename)
		require.NotNil(t, req.OrderID)
		assert.Equal(t, uint(4), *req.OrderID)
		return &UploadResponse{UploadURL: "https://signed", FileID: 9, Key: "orders/4/source/k", ExpiresIn: 3600}, nil
	}}
	router, token := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/uploads",
		strings.NewReader(`{"filename":"clip.mp4","contentType":"video/mp4","orderId":4,"type":"source"}`)), token))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint(9), body.FileID)
	assert.Equal(t, "https://signed", body.UploadURL)
}

func TestHandleUpload_RequiresSession(t *testing.T) {
	router, _ := newTestRouter(&mockFileUseCase{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/uploads", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleUpload_MalformedJSON(t *testing.T) {
	router, token := newTestRouter(&mockFileUseCase{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/uploads", strings.NewReader(`{"filename":`)), token))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpload_Forbidden(t *testing.T) {
	uc := &mockFileUseCase{RequestUploadFunc: func(context.Context, auth.Identity, UploadRequest) (*UploadResponse, error) {
		return nil, apperrors.NewForbiddenError("not yours")
	}}
	router, token := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/uploads",
		strings.NewReader(`{"filename":"a","contentType":"video/mp4","orderId":4,"type":"source"}`)), token))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTHORIZATION_DENIED")
}

func TestHandleConfirm_NotUploaded(t *testing.T) {
	uc := &mockFileUseCase{ConfirmFunc: func(_ context.Context, _ auth.Identity, fileID uint) (*FileDTO, error) {
		assert.Equal(t, uint(12), fileID)
		return nil, apperrors.NewConflictError("upload not completed")
	}}
	router, token := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/files/12/confirm", nil), token))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleDownload(t *testing.T) {
	uc := &mockFileUseCase{DownloadFunc: func(context.Context, auth.Identity, uint) (*DownloadResponse, error) {
		return &DownloadResponse{DownloadURL: "https://signed/get", ExpiresIn: 3600}, nil
	}}
	router, token := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/files/3/download", nil), token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"downloadUrl":"https://signed/get"`)
}

func TestHandleDownload_BadID(t *testing.T) {
	router, token := newTestRouter(&mockFileUseCase{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/files/abc/download", nil), token))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListForOrder(t *testing.T) {
	uc := &mockFileUseCase{ListForOrderFunc: func(_ context.Context, _ auth.Identity, orderID uint) ([]FileDTO, error) {
		return []FileDTO{{ID: 1, Type: "source", Filename: "raw.mov"}}, nil
	}}
	router, token := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/orders/4/files", nil), token))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		OrderID uint      `json:"orderId"`
		Files   []FileDTO `json:"files"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint(4), body.OrderID)
	require.Len(t, body.Files, 1)
	assert.Equal(t, "raw.mov", body.Files[0].Filename)
}
