package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"editmarket/internal/domain"
	"editmarket/internal/dto"
	apperrors "editmarket/internal/errors"
	"editmarket/internal/infrastructure/mysql"
)

type TransactionManager interface {
	Begin(ctx context.Context) (mysql.Tx, error)
}

type OrderWriter interface {
	Insert(ctx context.Context, q mysql.DBTX, o *domain.Order) (uint, error)
}

type SourceFileAttacher interface {
	AttachSourceFiles(ctx context.Context, q mysql.DBTX, orderID, uploaderID uint, fileIDs []uint) (int64, error)
}

type CreationService struct {
	txManager TransactionManager
	orders    OrderWriter
	files     SourceFileAttacher
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewCreationService(
	txManager TransactionManager,
	orders OrderWriter,
	files SourceFileAttacher,
	logger *zap.Logger,
	txTimeout time.Duration,
) *CreationService {
	return &CreationService{
		txManager: txManager,
		orders:    orders,
		files:     files,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

// Create inserts a PENDING order and attaches the draft's staged source files in
// one transaction. If any listed file is not a staged source upload owned by the
// client, nothing is written.
func (s *CreationService) Create(ctx context.Context, draft dto.OrderDraft) (uint, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.txManager.Begin(txCtx)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return 0, err
	}
	// Rollback after Commit is a no-op.
	defer tx.Rollback()

	order := &domain.Order{
		ClientID:     draft.ClientID,
		Title:        draft.Title,
		Description:  draft.Description,
		Requirements: draft.Requirements,
		VideoURL:     draft.VideoURL,
		Price:        draft.Price,
		Deadline:     draft.Deadline,
		Status:       domain.OrderStatusPending,
	}

	orderID, err := s.orders.Insert(txCtx, tx, order)
	if err != nil {
		s.logger.Error("failed to insert order", zap.Uint("clientId", draft.ClientID), zap.Error(err))
		return 0, err
	}

	fileIDs := uniqueIDs(draft.SourceFileIDs)
	if len(fileIDs) > 0 {
		attached, err := s.files.AttachSourceFiles(txCtx, tx, orderID, draft.ClientID, fileIDs)
		if err != nil {
			s.logger.Error("failed to attach source files", zap.Uint("orderId", orderID), zap.Error(err))
			return 0, err
		}

		if attached != int64(len(fileIDs)) {
			s.logger.Warn("transaction rolled back (source files unavailable)",
				zap.Uint("clientId", draft.ClientID), zap.Int("requested", len(fileIDs)), zap.Int64("attached", attached))
			return 0, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "sourceFiles",
				Message: "every source file must be your own staged upload not yet attached to an order",
			})
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return 0, err
	}

	s.logger.Info("order created", zap.Uint("orderId", orderID), zap.Uint("clientId", draft.ClientID), zap.Int("sourceFiles", len(fileIDs)))
	return orderID, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
