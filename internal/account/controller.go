package account

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"editmarket/internal/auth"
	apperrors "editmarket/internal/errors"
	"editmarket/internal/web"
)

const (
	stateCookie = "oauth_state"
	stateTTL    = 10 * time.Minute
)

type AccountUseCase interface {
	Signup(ctx context.Context, req SignupRequest) (*SessionResponse, error)
	Login(ctx context.Context, req LoginRequest) (*SessionResponse, error)
	GoogleEnabled() bool
	GoogleAuthURL(state string) string
	GoogleLogin(ctx context.Context, code string) (*SessionResponse, error)
	RegisterFreelancer(ctx context.Context, id auth.Identity, req RegisterFreelancerRequest) (*SessionResponse, error)
	ListFreelancers(ctx context.Context) ([]FreelancerDTO, error)
	Me(ctx context.Context, id auth.Identity) (*UserDTO, error)
}

type Controller struct {
	useCase  AccountUseCase
	sessions *auth.Sessions
	logger   *zap.Logger
}

func NewController(useCase AccountUseCase, sessions *auth.Sessions, logger *zap.Logger) *Controller {
	return &Controller{useCase: useCase, sessions: sessions, logger: logger}
}

func (c *Controller) HandleSignup(w http.ResponseWriter, r *http.Request) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	var req SignupRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteMalformedBody(w, traceID, err, logger)
		return
	}

	resp, err := c.useCase.Signup(r.Context(), req)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	c.sessions.SetCookie(w, resp.Token, resp.ExpiresAt)
	web.WriteJSON(w, http.StatusCreated, resp, logger)
}

func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	var req LoginRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteMalformedBody(w, traceID, err, logger)
		return
	}

	resp, err := c.useCase.Login(r.Context(), req)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	c.sessions.SetCookie(w, resp.Token, resp.ExpiresAt)
	web.WriteJSON(w, http.StatusOK, resp, logger)
}

func (c *Controller) HandleLogout(w http.ResponseWriter, r *http.Request) {
	c.sessions.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) HandleGoogleStart(w http.ResponseWriter, r *http.Request) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	if !c.useCase.GoogleEnabled() {
		web.WriteError(w, traceID, apperrors.NewNotFoundError("google login is not enabled"), logger)
		return
	}

	state, err := auth.RandomState()
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, c.useCase.GoogleAuthURL(state), http.StatusTemporaryRedirect)
}

func (c *Controller) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	if !c.useCase.GoogleEnabled() {
		web.WriteError(w, traceID, apperrors.NewNotFoundError("google login is not enabled"), logger)
		return
	}

	code, state := r.URL.Query().Get("code"), r.URL.Query().Get("state")
	cookie, err := r.Cookie(stateCookie)
	if code == "" || state == "" || err != nil || cookie.Value != state {
		web.WriteError(w, traceID, apperrors.NewUnauthorizedError("invalid oauth state"), logger)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	resp, err := c.useCase.GoogleLogin(r.Context(), code)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	c.sessions.SetCookie(w, resp.Token, resp.ExpiresAt)
	web.WriteJSON(w, http.StatusOK, resp, logger)
}

func (c *Controller) HandleRegisterFreelancer(w http.ResponseWriter, r *http.Request) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	var req RegisterFreelancerRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.WriteMalformedBody(w, traceID, err, logger)
		return
	}

	resp, err := c.useCase.RegisterFreelancer(r.Context(), id, req)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	c.sessions.SetCookie(w, resp.Token, resp.ExpiresAt)
	web.WriteJSON(w, http.StatusOK, resp, logger)
}

func (c *Controller) HandleListFreelancers(w http.ResponseWriter, r *http.Request) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	freelancers, err := c.useCase.ListFreelancers(r.Context())
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]any{"freelancers": freelancers}, logger)
}

func (c *Controller) HandleMe(w http.ResponseWriter, r *http.Request) {
	traceID := web.TraceID(r.Context())
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	user, err := c.useCase.Me(r.Context(), id)
	if err != nil {
		web.WriteError(w, traceID, err, logger)
		return
	}

	web.WriteJSON(w, http.StatusOK, user, logger)
}
