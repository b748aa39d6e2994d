package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"editmarket/internal/domain"
	apperrors "editmarket/internal/errors"
)

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens. The subject claim holds
// the user id.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *TokenIssuer) Issue(id Identity) (string, time.Time, error) {
	if err := id.Role.Validate(); err != nil {
		return "", time.Time{}, fmt.Errorf("issuing token: %w", err)
	}

	now := t.now()
	expiresAt := now.Add(t.ttl)
	claims := Claims{
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies a token and returns the identity it carries. Every failure is
// reported as an UnauthorizedError.
func (t *TokenIssuer) Parse(raw string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, apperrors.NewUnauthorizedError("invalid or expired session")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return Identity{}, apperrors.NewUnauthorizedError("invalid or expired session")
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return Identity{}, apperrors.NewUnauthorizedError("invalid or expired session")
	}

	return Identity{UserID: uint(userID), Email: claims.Email, Name: claims.Name, Role: role}, nil
}

func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}
