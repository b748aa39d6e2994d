package file

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"go.uber.org/zap"

	"editmarket/internal/auth"
	"editmarket/internal/domain"
	apperrors "editmarket/internal/errors"
	"editmarket/internal/infrastructure/storage"
)

const (
	maxFilenameLength    = 255
	maxContentTypeLength = 255
)

type UseCase struct {
	files   Repository
	orders  OrderReader
	storage Storage
	logger  *zap.Logger
	now     func() time.Time
}

func NewUseCase(files Repository, orders OrderReader, storage Storage, logger *zap.Logger) *UseCase {
	return &UseCase{files: files, orders: orders, storage: storage, logger: logger, now: time.Now}
}

// RequestUpload issues a signed upload slot and records the file with size zero.
// Without an order id the file is a staged source upload, owned by the caller
// until an order claims it at creation.
func (uc *UseCase) RequestUpload(ctx context.Context, id auth.Identity, req UploadRequest) (*UploadResponse, error) {
	role, err := validateUpload(req)
	if err != nil {
		return nil, err
	}

	filename := strings.TrimSpace(req.Filename)
	var key string
	if req.OrderID == nil {
		key = storage.StagingKey(id.UserID, filename)
	} else {
		order, err := uc.orders.FindByID(ctx, *req.OrderID)
		if err != nil {
			return nil, err
		}
		if !order.IsParticipant(id.UserID) {
			return nil, apperrors.NewForbiddenError("only the order's client or assigned freelancer may upload files")
		}
		if order.Status.IsTerminal() {
			return nil, apperrors.NewConflictError(fmt.Sprintf("order is %s and no longer accepts files", order.Status))
		}
		key = storage.OrderKey(order.ID, string(role), filename)
	}

	signed, err := uc.storage.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, apperrors.NewInternalError("issuing upload url", err)
	}

	f := &domain.FileUpload{
		OrderID:    req.OrderID,
		UploaderID: id.UserID,
		Role:       role,
		Filename:   filename,
		Key:        key,
		MimeType:   req.ContentType,
	}
	fileID, err := uc.files.Create(ctx, f)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("upload slot issued",
		zap.Uint("fileId", fileID), zap.Uint("userId", id.UserID), zap.String("role", string(role)), zap.String("key", key))

	return &UploadResponse{
		UploadURL: signed.URL,
		FileID:    fileID,
		Key:       key,
		ExpiresIn: int(signed.ExpiresIn.Seconds()),
	}, nil
}

// Confirm checks that the object reached storage and back-fills its size. Only
// confirmed files can be downloaded.
func (uc *UseCase) Confirm(ctx context.Context, id auth.Identity, fileID uint) (*FileDTO, error) {
	f, err := uc.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorizeAccess(ctx, id, f); err != nil {
		return nil, err
	}

	info, err := uc.storage.Stat(ctx, f.Key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, apperrors.NewConflictError("upload not completed")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("checking uploaded object", err)
	}

	at := uc.now().UTC().Truncate(time.Second)
	if err := uc.files.Confirm(ctx, f.ID, info.Size, at); err != nil {
		return nil, err
	}
	f.Size, f.ConfirmedAt = info.Size, &at

	uc.logger.Info("upload confirmed", zap.Uint("fileId", f.ID), zap.Int64("size", info.Size))
	dto := toFileDTO(*f)
	return &dto, nil
}

func (uc *UseCase) ListForOrder(ctx context.Context, id auth.Identity, orderID uint) ([]FileDTO, error) {
	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch id.Role {
	case domain.RoleAdmin:
	case domain.RoleCustomer, domain.RoleFreelancer:
		if !order.IsParticipant(id.UserID) {
			return nil, apperrors.NewForbiddenError("only the order's client or assigned freelancer may view its files")
		}
	default:
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}

	files, err := uc.files.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	out := make([]FileDTO, 0, len(files))
	for _, f := range files {
		out = append(out, toFileDTO(f))
	}
	return out, nil
}

func (uc *UseCase) Download(ctx context.Context, id auth.Identity, fileID uint) (*DownloadResponse, error) {
	f, err := uc.files.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorizeAccess(ctx, id, f); err != nil {
		return nil, err
	}
	if !f.IsConfirmed() {
		return nil, apperrors.NewConflictError("file upload has not been confirmed")
	}

	signed, err := uc.storage.PresignDownload(ctx, f.Key, f.Filename)
	if err != nil {
		return nil, apperrors.NewInternalError("issuing download url", err)
	}

	return &DownloadResponse{DownloadURL: signed.URL, ExpiresIn: int(signed.ExpiresIn.Seconds())}, nil
}

// authorizeAccess admits the uploader of a staged file, or a participant of the
// file's order.
func (uc *UseCase) authorizeAccess(ctx context.Context, id auth.Identity, f *domain.FileUpload) error {
	if f.IsStaged() {
		if f.UploaderID != id.UserID {
			return apperrors.NewForbiddenError("only the uploader may access a staged file")
		}
		return nil
	}

	order, err := uc.orders.FindByID(ctx, *f.OrderID)
	if err != nil {
		return err
	}
	if !order.IsParticipant(id.UserID) {
		return apperrors.NewForbiddenError("only the order's client or assigned freelancer may access its files")
	}
	return nil
}

func validateUpload(req UploadRequest) (domain.FileRole, error) {
	var details []apperrors.ValidationDetail

	name := strings.TrimSpace(req.Filename)
	if name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "filename", Message: "filename is required"})
	} else if len(name) > maxFilenameLength {
		details = append(details, apperrors.ValidationDetail{Field: "filename", Message: fmt.Sprintf("filename must be at most %d characters", maxFilenameLength)})
	}

	if req.ContentType == "" {
		details = append(details, apperrors.ValidationDetail{Field: "contentType", Message: "contentType is required"})
	} else if len(req.ContentType) > maxContentTypeLength {
		details = append(details, apperrors.ValidationDetail{Field: "contentType", Message: fmt.Sprintf("contentType must be at most %d characters", maxContentTypeLength)})
	} else if _, _, err := mime.ParseMediaType(req.ContentType); err != nil {
		details = append(details, apperrors.ValidationDetail{Field: "contentType", Message: "contentType must be a valid media type"})
	}

	role, err := domain.ParseFileRole(req.Type)
	if err != nil {
		details = append(details, apperrors.ValidationDetail{Field: "type", Message: "type must be 'source' or 'delivery'"})
	} else if req.OrderID == nil && role != domain.FileRoleSource {
		details = append(details, apperrors.ValidationDetail{Field: "orderId", Message: "orderId is required for delivery files"})
	}

	if len(details) > 0 {
		return "", apperrors.NewValidationError("validation failed", details...)
	}
	return role, nil
}
