package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"editmarket/internal/account"
	"editmarket/internal/auth"
	"editmarket/internal/file"
	ordercontroller "editmarket/internal/order/controller"
	"editmarket/internal/web"
)

func NewRouter(
	sessions *auth.Sessions,
	accountCtrl *account.Controller,
	orderCtrl *ordercontroller.OrderController,
	fileCtrl *file.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(web.Trace)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		web.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})

	r.Post("/auth/signup", accountCtrl.HandleSignup)
	r.Post("/auth/login", accountCtrl.HandleLogin)
	r.Post("/auth/logout", accountCtrl.HandleLogout)
	r.Get("/auth/google/start", accountCtrl.HandleGoogleStart)
	r.Get("/auth/google/callback", accountCtrl.HandleGoogleCallback)
	r.Get("/freelancers", accountCtrl.HandleListFreelancers)

	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireSession)

		r.Get("/me", accountCtrl.HandleMe)
		r.Post("/freelancer/register", accountCtrl.HandleRegisterFreelancer)
		r.Get("/freelancer/orders", orderCtrl.ListClaimed)
		r.Get("/dashboard", orderCtrl.Dashboard)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderCtrl.Create)
			r.Get("/", orderCtrl.ListMine)
			r.Get("/available", orderCtrl.ListAvailable)
			r.Get("/{id}", orderCtrl.Get)
			r.Post("/{id}/claim", orderCtrl.Claim)
			r.Get("/{id}/files", fileCtrl.HandleListForOrder)
		})

		r.Post("/upload", fileCtrl.HandleUpload)
		r.Post("/files/{id}/confirm", fileCtrl.HandleConfirm)
		r.Get("/files/{id}/download", fileCtrl.HandleDownload)
	})

	return r
}

// requestLogger writes one line per request once the handler returns.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("traceId", web.TraceID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
