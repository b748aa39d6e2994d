package usecase

import (
	"context"

	"editmarket/internal/auth"
	"editmarket/internal/domain"
	"editmarket/internal/dto"
	apperrors "editmarket/internal/errors"
)

type mockOrderRepository struct {
	FindByIDFunc         func(ctx context.Context, id uint) (*domain.Order, error)
	ClaimFunc            func(ctx context.Context, orderID, freelancerID uint) (bool, error)
	ListByClientFunc     func(ctx context.Context, clientID uint) ([]domain.Order, error)
	ListByFreelancerFunc func(ctx context.Context, freelancerID uint) ([]domain.Order, error)
	ListAvailableFunc    func(ctx context.Context) ([]domain.Order, error)
	ListRecentFunc       func(ctx context.Context, limit int) ([]domain.Order, error)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) Claim(ctx context.Context, orderID, freelancerID uint) (bool, error) {
	return m.ClaimFunc(ctx, orderID, freelancerID)
}

func (m *mockOrderRepository) ListByClient(ctx context.Context, clientID uint) ([]domain.Order, error) {
	return m.ListByClientFunc(ctx, clientID)
}

func (m *mockOrderRepository) ListByFreelancer(ctx context.Context, freelancerID uint) ([]domain.Order, error) {
	return m.ListByFreelancerFunc(ctx, freelancerID)
}

func (m *mockOrderRepository) ListAvailable(ctx context.Context) ([]domain.Order, error) {
	return m.ListAvailableFunc(ctx)
}

func (m *mockOrderRepository) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	return m.ListRecentFunc(ctx, limit)
}

type mockCreationService struct {
	CreateFunc func(ctx context.Context, draft dto.OrderDraft) (uint, error)
}

func (m *mockCreationService) Create(ctx context.Context, draft dto.OrderDraft) (uint, error) {
	return m.CreateFunc(ctx, draft)
}

var (
	customer   = auth.Identity{UserID: 1, Role: domain.RoleCustomer}
	freelancer = auth.Identity{UserID: 2, Role: domain.RoleFreelancer}
	otherFree  = auth.Identity{UserID: 3, Role: domain.RoleFreelancer}
	outsider   = auth.Identity{UserID: 4, Role: domain.RoleCustomer}
	admin      = auth.Identity{UserID: 9, Role: domain.RoleAdmin}
	anonymous  = auth.Identity{}
)

// store is a single-order repository whose Claim mirrors the conditional update.
func store(order domain.Order) *mockOrderRepository {
	return &mockOrderRepository{
		FindByIDFunc: func(_ context.Context, id uint) (*domain.Order, error) {
			if id != order.ID {
				return nil, apperrors.NewNotFoundError("order not found")
			}
			copied := order
			return &copied, nil
		},
		ClaimFunc: func(_ context.Context, orderID, freelancerID uint) (bool, error) {
			if orderID != order.ID || !order.IsClaimable() {
				return false, nil
			}
			order.Status = domain.OrderStatusClaimed
			order.FreelancerID = &freelancerID
			return true, nil
		},
	}
}

func pendingOrder() domain.Order {
	return domain.Order{ID: 10, ClientID: customer.UserID, Title: "Edit", Status: domain.OrderStatusPending}
}

func uintPtr(v uint) *uint { return &v }
