package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"editmarket/internal/domain"
	apperrors "editmarket/internal/errors"
)

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	id := Identity{UserID: 12, Email: "ana@example.com", Name: "Ana", Role: domain.RoleFreelancer}

	token, expiresAt, err := issuer.Issue(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	parsed, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestTokenIssuer_RejectsOtherSecret(t *testing.T) {
	token, _, err := NewTokenIssuer("one", time.Hour).Issue(Identity{UserID: 1, Role: domain.RoleCustomer})
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).Parse(token)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := issuer.Issue(Identity{UserID: 1, Role: domain.RoleCustomer})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := issuer.Parse(raw)
		_, ok := apperrors.IsUnauthorizedError(err)
		assert.True(t, ok, raw)
	}
}

func TestTokenIssuer_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		Role: "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour).Parse(raw)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsUnknownRole(t *testing.T) {
	claims := Claims{
		Role: "ROOT",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour).Parse(raw)
	assert.Error(t, err)
}

func TestTokenIssuer_IssueRejectsUnknownRole(t *testing.T) {
	_, _, err := NewTokenIssuer("secret", time.Hour).Issue(Identity{UserID: 1})
	assert.Error(t, err)
}
