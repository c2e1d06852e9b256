package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/venkateshtata/context-overflow-mcp/internal/config"
	"github.com/venkateshtata/context-overflow-mcp/internal/correlation"
	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
	apperrors "github.com/venkateshtata/context-overflow-mcp/internal/errors"
)

// healthChecker is the minimal surface needed for readiness checks. Both
// pgxpool.Pool and the redis client wrapper satisfy it.
type healthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo        *echo.Echo
	config      *config.Config
	app         domain.AppService
	voteLimiter domain.VoteRateLimiter // nil when Redis is not configured
	db          healthChecker
	redis       healthChecker // nil when Redis is not configured
	startTime   time.Time
}

func NewServer(cfg *config.Config, app domain.AppService, voteLimiter domain.VoteRateLimiter, db healthChecker, redis healthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(correlationMiddleware())
	e.Use(requestLogger())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:        e,
		config:      cfg,
		app:         app,
		voteLimiter: voteLimiter,
		db:          db,
		redis:       redis,
		startTime:   time.Now(),
	}
	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// correlationMiddleware attaches a correlation ID to the request context and
// echoes it back in the X-Request-ID header.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = correlation.NewID()
			}

			ctx := correlation.WithID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			slog.InfoContext(c.Request().Context(), "request handled",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}
