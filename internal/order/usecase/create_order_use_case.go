package usecase

import (
	"context"

	"go.uber.org/zap"

	"editmarket/internal/auth"
	"editmarket/internal/domain"
	"editmarket/internal/dto"
	apperrors "editmarket/internal/errors"
)

type OrderCreationService interface {
	Create(ctx context.Context, draft dto.OrderDraft) (uint, error)
}

type OrderReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
}

type CreateOrderUseCase struct {
	creationSvc OrderCreationService
	orderRepo   OrderReader
	logger      *zap.Logger
}

func NewCreateOrderUseCase(creationSvc OrderCreationService, orderRepo OrderReader, logger *zap.Logger) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		creationSvc: creationSvc,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// Create places a new order owned by the caller. Any signed-in role may post an
// order; the draft must already be validated.
func (uc *CreateOrderUseCase) Create(ctx context.Context, id auth.Identity, draft dto.OrderDraft) (*domain.Order, error) {
	switch id.Role {
	case domain.RoleCustomer, domain.RoleFreelancer, domain.RoleAdmin:
	default:
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}

	if !draft.HasSource() {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "sourceFiles",
			Message: "provide sourceFiles or a videoUrl",
		})
	}

	draft.ClientID = id.UserID
	orderID, err := uc.creationSvc.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	return uc.orderRepo.FindByID(ctx, orderID)
}
