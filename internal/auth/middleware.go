package auth

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "editmarket/internal/errors"
	"editmarket/internal/web"
)

// Sessions carries session tokens between the TokenIssuer and HTTP: it reads
// them from requests and writes them as cookies.
type Sessions struct {
	issuer     *TokenIssuer
	cookieName string
	secure     bool
	logger     *zap.Logger
}

func NewSessions(issuer *TokenIssuer, cookieName string, secure bool, logger *zap.Logger) *Sessions {
	return &Sessions{issuer: issuer, cookieName: cookieName, secure: secure, logger: logger}
}

func (s *Sessions) Issuer() *TokenIssuer {
	return s.issuer
}

// RequireSession rejects requests without a valid token and stores the caller's
// Identity in the request context.
func (s *Sessions) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := web.TraceID(r.Context())

		raw := s.tokenFromRequest(r)
		if raw == "" {
			web.WriteError(w, traceID, apperrors.NewUnauthorizedError("authentication required"), s.logger)
			return
		}

		id, err := s.issuer.Parse(raw)
		if err != nil {
			web.WriteError(w, traceID, err, s.logger)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// tokenFromRequest prefers the Authorization header over the cookie.
func (s *Sessions) tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(s.cookieName); err == nil {
		return c.Value
	}
	return ""
}

func (s *Sessions) SetCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
