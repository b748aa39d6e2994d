package usecase

import (
	"context"

	"editmarket/internal/auth"
	"editmarket/internal/domain"
	apperrors "editmarket/internal/errors"
)

// RecentOrdersLimit caps the administrator dashboard.
const RecentOrdersLimit = 50

type OrderQueryRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	ListByClient(ctx context.Context, clientID uint) ([]domain.Order, error)
	ListByFreelancer(ctx context.Context, freelancerID uint) ([]domain.Order, error)
	ListAvailable(ctx context.Context) ([]domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)
}

// Dashboard holds the order lists shown to one role. Lists that do not apply to
// Role are nil.
type Dashboard struct {
	Role      domain.Role
	Orders    []domain.Order
	Available []domain.Order
	Claimed   []domain.Order
	Recent    []domain.Order
}

type OrderQueryUseCase struct {
	orderRepo OrderQueryRepository
}

func NewOrderQueryUseCase(orderRepo OrderQueryRepository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orderRepo: orderRepo}
}

// Get returns the order if the caller may see it: its client, its freelancer,
// an administrator, or any freelancer while the order is still open for claims.
func (uc *OrderQueryUseCase) Get(ctx context.Context, id auth.Identity, orderID uint) (*domain.Order, error) {
	if id.Role == domain.RoleUnknown {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}

	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch id.Role {
	case domain.RoleAdmin:
		return order, nil
	case domain.RoleFreelancer:
		if order.IsParticipant(id.UserID) || order.IsClaimable() {
			return order, nil
		}
	case domain.RoleCustomer:
		if order.IsParticipant(id.UserID) {
			return order, nil
		}
	}
	return nil, apperrors.NewForbiddenError("you do not have access to this order")
}

func (uc *OrderQueryUseCase) ListMine(ctx context.Context, id auth.Identity) ([]domain.Order, error) {
	if id.Role == domain.RoleUnknown {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	return uc.orderRepo.ListByClient(ctx, id.UserID)
}

func (uc *OrderQueryUseCase) ListAvailable(ctx context.Context, id auth.Identity) ([]domain.Order, error) {
	switch id.Role {
	case domain.RoleFreelancer, domain.RoleAdmin:
		return uc.orderRepo.ListAvailable(ctx)
	case domain.RoleCustomer:
		return nil, apperrors.NewForbiddenError("only freelancers can browse available orders")
	default:
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
}

func (uc *OrderQueryUseCase) ListClaimed(ctx context.Context, id auth.Identity) ([]domain.Order, error) {
	switch id.Role {
	case domain.RoleFreelancer:
		return uc.orderRepo.ListByFreelancer(ctx, id.UserID)
	case domain.RoleCustomer, domain.RoleAdmin:
		return nil, apperrors.NewForbiddenError("only freelancers have claimed orders")
	default:
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
}

func (uc *OrderQueryUseCase) Dashboard(ctx context.Context, id auth.Identity) (*Dashboard, error) {
	d := &Dashboard{Role: id.Role}
	var err error

	switch id.Role {
	case domain.RoleCustomer:
		d.Orders, err = uc.orderRepo.ListByClient(ctx, id.UserID)
	case domain.RoleFreelancer:
		if d.Available, err = uc.orderRepo.ListAvailable(ctx); err != nil {
			return nil, err
		}
		d.Claimed, err = uc.orderRepo.ListByFreelancer(ctx, id.UserID)
	case domain.RoleAdmin:
		d.Recent, err = uc.orderRepo.ListRecent(ctx, RecentOrdersLimit)
	default:
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}

	if err != nil {
		return nil, err
	}
	return d, nil
}
