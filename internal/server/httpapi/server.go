// Package httpapi exposes the auth service over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AuthService is the business logic behind the handlers.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*services.AuthResult, error)
	Login(ctx context.Context, username, password, otp string) (*services.AuthResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, claims *auth.Claims) (*services.Identity, error)
	TwoFactorStatus(ctx context.Context, claims *auth.Claims) (bool, error)
	InitTwoFactor(ctx context.Context, claims *auth.Claims) (*services.TwoFactorSetup, error)
	ConfirmTwoFactor(ctx context.Context, claims *auth.Claims, otp string) error
	DisableTwoFactor(ctx context.Context, claims *auth.Claims, otp string) error
}

type HTTPServer struct {
	address         string
	auth            AuthService
	logger          logging.Logger
	jwtSecret       []byte
	corsOrigins     []string
	shutdownTimeout time.Duration
}

func NewHTTPServer(a string, l logging.Logger, svc AuthService, secretKey string, corsOrigins []string, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		auth:            svc,
		jwtSecret:       []byte(secretKey),
		corsOrigins:     corsOrigins,
		shutdownTimeout: shutdownTimeout,
	}
}

// Router returns the chi router with every route mounted.
func (s *HTTPServer) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)
	r.Use(limitBody)

	r.Get("/", s.Health)
	r.Post("/register", s.Register)
	r.Post("/login", s.Login)

	r.Group(func(r chi.Router) {
		r.Use(s.accessTokenMiddleware)
		r.Post("/logout", s.Logout)
		r.Get("/me", s.Me)
		r.Get("/2fa/status", s.TwoFactorStatus)
		r.Post("/2fa/init", s.InitTwoFactor)
		r.Post("/2fa/confirm", s.ConfirmTwoFactor)
		r.Post("/2fa/disable", s.DisableTwoFactor)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	if sl, ok := s.logger.(interface{ Slog() *slog.Logger }); ok {
		srv.ErrorLog = slog.NewLogLogger(sl.Slog().Handler(), slog.LevelError)
	}

	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		errCh <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-errCh
}
