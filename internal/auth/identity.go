// Package auth is the identity provider adapter: it issues and verifies session
// tokens, hashes credentials, and runs the Google OAuth2 flow.
package auth

import (
	"context"

	"editmarket/internal/domain"
	apperrors "editmarket/internal/errors"
)

// Identity is the authenticated caller, re-derived from the session token on
// every request and passed explicitly into use cases.
type Identity struct {
	UserID uint
	Email  string
	Name   string
	Role   domain.Role
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

func IdentityFromUser(u *domain.User) Identity {
	return Identity{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// RequireIdentity returns the caller stored by RequireSession.
func RequireIdentity(ctx context.Context) (Identity, error) {
	id, ok := IdentityFrom(ctx)
	if !ok {
		return Identity{}, apperrors.NewUnauthorizedError("authentication required")
	}
	return id, nil
}
