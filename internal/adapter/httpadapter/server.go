// Package httpadapter serves the dashboard, its JSON API and the operational
// endpoints over HTTP.
package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/primex/opportunity-dashboard/internal/auth"
	"github.com/primex/opportunity-dashboard/internal/dashboard"
	"github.com/primex/opportunity-dashboard/internal/observability"
)

// Dashboard builds the view for one render.
type Dashboard interface {
	Build(ctx context.Context, selectedType string) (*dashboard.View, error)
}

// Deps are the collaborators the server routes to.
type Deps struct {
	Dashboard     Dashboard
	Ready         sharedobs.ReadinessChecker
	Authenticator auth.Authenticator
	Sessions      *auth.SessionManager
	Metrics       *observability.Metrics
}

// Server exposes the login gate, the dashboard page, the JSON API, and the
// health, readiness and metrics endpoints.
type Server struct {
	echo       *echo.Echo
	httpServer *http.Server
	deps       Deps
	logger     *slog.Logger
}

// NewServer creates an HTTP server with every route registered.
func NewServer(addr string, deps Deps, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = newTemplateRenderer()
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	s := &Server{
		echo: e,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      e,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 2 * time.Minute, // a cold render geocodes every address
			IdleTimeout:  60 * time.Second,
		},
		deps:   deps,
		logger: logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/healthz", echo.WrapHandler(http.HandlerFunc(sharedobs.LivenessHandler())))
	s.echo.GET("/readyz", echo.WrapHandler(http.HandlerFunc(sharedobs.ReadinessHandler(s.deps.Ready))))
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.GET("/", s.handleIndex, s.loadSession)
	s.echo.POST("/login", s.handleLogin, s.loadSession)
	s.echo.POST("/logout", s.handleLogout, s.loadSession)
	s.echo.GET("/api/dashboard", s.handleDashboardAPI, s.loadSession, requireSession)
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.Warn("http request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Debug("http request", attrs...)
			return nil
		},
	})
}
