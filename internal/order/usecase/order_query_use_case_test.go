package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"editmarket/internal/auth"
	"editmarket/internal/domain"
	apperrors "editmarket/internal/errors"
)

func TestGet_Visibility(t *testing.T) {
	open := pendingOrder()
	taken := pendingOrder()
	taken.Status, taken.FreelancerID = domain.OrderStatusInProgress, uintPtr(freelancer.UserID)

	tests := []struct {
		name    string
		order   domain.Order
		caller  auth.Identity
		allowed bool
	}{
		{"owner", open, customer, true},
		{"other customer", open, outsider, false},
		{"any freelancer while open", open, otherFree, true},
		{"admin", taken, admin, true},
		{"assignee", taken, freelancer, true},
		{"other freelancer once taken", taken, otherFree, false},
		{"owner once taken", taken, customer, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewOrderQueryUseCase(store(tt.order))

			order, err := uc.Get(context.Background(), tt.caller, 10)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, uint(10), order.ID)
				return
			}
			_, ok := apperrors.IsForbiddenError(err)
			assert.True(t, ok)
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	uc := NewOrderQueryUseCase(store(pendingOrder()))

	_, err := uc.Get(context.Background(), admin, 11)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func listingRepo() *mockOrderRepository {
	return &mockOrderRepository{
		ListByClientFunc: func(_ context.Context, clientID uint) ([]domain.Order, error) {
			return []domain.Order{{ID: 1, ClientID: clientID}}, nil
		},
		ListByFreelancerFunc: func(_ context.Context, freelancerID uint) ([]domain.Order, error) {
			return []domain.Order{{ID: 2, FreelancerID: &freelancerID}}, nil
		},
		ListAvailableFunc: func(context.Context) ([]domain.Order, error) {
			return []domain.Order{{ID: 3, Status: domain.OrderStatusPending}}, nil
		},
		ListRecentFunc: func(_ context.Context, limit int) ([]domain.Order, error) {
			return []domain.Order{{ID: 4}}, nil
		},
	}
}

func TestListings_RoleGates(t *testing.T) {
	uc := NewOrderQueryUseCase(listingRepo())
	ctx := context.Background()

	mine, err := uc.ListMine(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, customer.UserID, mine[0].ClientID)

	_, err = uc.ListAvailable(ctx, customer)
	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)

	available, err := uc.ListAvailable(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, available, 1)

	claimed, err := uc.ListClaimed(ctx, freelancer)
	require.NoError(t, err)
	assert.Equal(t, freelancer.UserID, *claimed[0].FreelancerID)

	_, err = uc.ListClaimed(ctx, admin)
	_, ok = apperrors.IsForbiddenError(err)
	assert.True(t, ok)

	_, err = uc.ListMine(ctx, anonymous)
	_, ok = apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestDashboard_ByRole(t *testing.T) {
	uc := NewOrderQueryUseCase(listingRepo())
	ctx := context.Background()

	d, err := uc.Dashboard(ctx, customer)
	require.NoError(t, err)
	assert.Len(t, d.Orders, 1)
	assert.Nil(t, d.Available)
	assert.Nil(t, d.Recent)

	d, err = uc.Dashboard(ctx, freelancer)
	require.NoError(t, err)
	assert.Len(t, d.Available, 1)
	assert.Len(t, d.Claimed, 1)
	assert.Nil(t, d.Orders)

	d, err = uc.Dashboard(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, d.Recent, 1)
	assert.Equal(t, domain.RoleAdmin, d.Role)

	_, err = uc.Dashboard(ctx, anonymous)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}
