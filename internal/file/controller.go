package file

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"editmarket/internal/auth"
	"editmarket/internal/web"
)

type FileUseCase interface {
	RequestUpload(ctx context.Context, id auth.Identity, req UploadRequest) (*UploadResponse, error)
	Confirm(ctx context.Context, id auth.Identity, fileID uint) (*FileDTO, error)
	ListForOrder(ctx context.Context, id auth.Identity, orderID uint) ([]FileDTO, error)
	Download(ctx context.Context, id auth.Identity, fileID uint) (*DownloadResponse, error)
}

type Controller struct {
	useCase FileUseCase
	logger  *zap.Logger
}

func NewController(useCase FileUseCase, logger *zap.Logger) *Controller {
	return &Controller{useCase: useCase, logger: logger}
}

func (c *Controller) HandleUpload(w http.ResponseWriter, r *http.Request) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	var req UploadRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteMalformedBody(w, traceID, err, logger)
		return
	}

	resp, err := c.useCase.RequestUpload(r.Context(), id, req)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	web.WriteJSON(w, http.StatusCreated, resp, logger)
}

func (c *Controller) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	c.withFileID(w, r, func(id auth.Identity, fileID uint) (any, error) {
		return c.useCase.Confirm(r.Context(), id, fileID)
	})
}

func (c *Controller) HandleDownload(w http.ResponseWriter, r *http.Request) {
	c.withFileID(w, r, func(id auth.Identity, fileID uint) (any, error) {
		return c.useCase.Download(r.Context(), id, fileID)
	})
}

func (c *Controller) HandleListForOrder(w http.ResponseWriter, r *http.Request) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	orderID, err := web.PathID(r, "id", "order")
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	files, err := c.useCase.ListForOrder(r.Context(), id, orderID)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]any{"orderId": orderID, "files": files}, logger)
}

func (c *Controller) withFileID(w http.ResponseWriter, r *http.Request, fn func(auth.Identity, uint) (any, error)) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	fileID, err := web.PathID(r, "id", "file")
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	resp, err := fn(id, fileID)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	web.WriteJSON(w, http.StatusOK, resp, logger)
}
