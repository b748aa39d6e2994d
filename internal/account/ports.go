package account

import (
	"context"
	"time"

	"editmarket/internal/auth"
	"editmarket/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u *domain.User) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	PromoteToFreelancer(ctx context.Context, userID uint, profile domain.FreelancerProfile) (bool, error)
	ListAvailableFreelancers(ctx context.Context) ([]domain.FreelancerSummary, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type TokenIssuer interface {
	Issue(id auth.Identity) (string, time.Time, error)
}

type GoogleProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GoogleUser, error)
}
