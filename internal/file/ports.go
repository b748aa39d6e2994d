package file

import (
	"context"
	"time"

	"editmarket/internal/domain"
	"editmarket/internal/infrastructure/storage"
)

type Repository interface {
	Create(ctx context.Context, f *domain.FileUpload) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.FileUpload, error)
	ListByOrder(ctx context.Context, orderID uint) ([]domain.FileUpload, error)
	Confirm(ctx context.Context, id uint, size int64, at time.Time) error
}

type OrderReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
}

type Storage interface {
	PresignUpload(ctx context.Context, key, contentType string) (*storage.PresignedURL, error)
	PresignDownload(ctx context.Context, key, filename string) (*storage.PresignedURL, error)
	Stat(ctx context.Context, key string) (*storage.ObjectInfo, error)
}
