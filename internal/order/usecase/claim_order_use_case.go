package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"editmarket/internal/auth"
	"editmarket/internal/domain"
	apperrors "editmarket/internal/errors"
)

type OrderClaimRepository interface {
	Claim(ctx context.Context, orderID, freelancerID uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
}

type ClaimOrderUseCase struct {
	orderRepo OrderClaimRepository
	logger    *zap.Logger
}

func NewClaimOrderUseCase(orderRepo OrderClaimRepository, logger *zap.Logger) *ClaimOrderUseCase {
	return &ClaimOrderUseCase{orderRepo: orderRepo, logger: logger}
}

// Claim assigns a pending order to the calling freelancer. The store's
// conditional update decides races between concurrent claimers.
func (uc *ClaimOrderUseCase) Claim(ctx context.Context, id auth.Identity, orderID uint) (*domain.Order, error) {
	switch id.Role {
	case domain.RoleFreelancer:
	case domain.RoleCustomer, domain.RoleAdmin:
		return nil, apperrors.NewForbiddenError("only freelancers can claim orders")
	default:
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}

	claimed, err := uc.orderRepo.Claim(ctx, orderID, id.UserID)
	if err != nil {
		uc.logger.Error("claim failed", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !claimed {
		uc.logger.Info("claim rejected", zap.Uint("orderId", orderID), zap.Uint("freelancerId", id.UserID), zap.String("status", string(order.Status)))
		if order.FreelancerID != nil && *order.FreelancerID == id.UserID {
			return nil, apperrors.NewConflictError("you have already claimed this order")
		}
		if order.Status.CanTransitionTo(domain.OrderStatusClaimed) {
			return nil, apperrors.NewConflictError("order is already assigned to another freelancer")
		}
		return nil, apperrors.NewConflictError(fmt.Sprintf("order is %s and can no longer be claimed", order.Status))
	}

	uc.logger.Info("order claimed", zap.Uint("orderId", orderID), zap.Uint("freelancerId", id.UserID))
	return order, nil
}
