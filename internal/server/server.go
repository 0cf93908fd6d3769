package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tourofheroes/heroes/internal/app"
	"github.com/tourofheroes/heroes/internal/config"
	"github.com/tourofheroes/heroes/internal/metrics"
	appmiddleware "github.com/tourofheroes/heroes/internal/middleware"
	"github.com/tourofheroes/heroes/internal/module"
	"github.com/tourofheroes/heroes/internal/pubsub"
	"github.com/tourofheroes/heroes/internal/registry"
	"github.com/tourofheroes/heroes/internal/rendering"
	"github.com/tourofheroes/heroes/internal/storage"
	"github.com/tourofheroes/heroes/web"
)

// Dependencies holds what the server needs from the entrypoint.
type Dependencies struct {
	Config config.Provider
	// Files is where the hero seed file is read from. Defaults to the OS filesystem.
	Files storage.Store
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	Registry *registry.Registry
	Metrics  *metrics.Manager

	bus     *pubsub.WatermillBridge
	modules []module.Module
	cancel  context.CancelFunc
}

// New creates a new Server instance: middleware, core services and every
// module registered and booted.
func New(deps Dependencies) (*Server, error) {
	cfg := deps.Config
	files := deps.Files
	if files == nil {
		files = storage.NewOSStore()
	}

	e := echo.New()
	e.HideBanner = true
	setupErrorHandling(e)

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			appmiddleware.FromContext(c.Request().Context()).Debug("request",
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"error", v.Error,
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	renderer := rendering.NewUniversalRenderer()
	e.Renderer = renderer
	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	bus := pubsub.NewWatermillBridge()
	m := metrics.NewManager()
	reg := registry.New(cfg)
	appDeps := app.Dependencies{
		Publisher:  bus,
		Subscriber: bus,
		Renderer:   renderer,
		Files:      files,
	}
	app.RegisterServices(reg, appDeps, m)

	s := &Server{
		E:        e,
		Cfg:      cfg,
		Registry: reg,
		Metrics:  m,
		bus:      bus,
		modules:  app.NewModules(appDeps),
	}
	if err := s.bootModules(); err != nil {
		bus.Close()
		return nil, err
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	return s, nil
}

// bootModules runs the two startup phases: every module registers its
// services, then every module boots on its own router group.
func (s *Server) bootModules() error {
	for _, m := range s.modules {
		if err := m.Register(s.Registry); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	for _, m := range s.modules {
		if err := m.Boot(ctx, s.E.Group(m.Prefix()), s.Registry); err != nil {
			cancel()
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		slog.Debug("Module booted", "module", m.Name(), "prefix", m.Prefix())
	}
	return nil
}

// Shutdown stops accepting requests, then shuts the modules down in reverse
// order and stops the background workers.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.E.Shutdown(ctx)
	for i := len(s.modules) - 1; i >= 0; i-- {
		if merr := s.modules[i].Shutdown(ctx); merr != nil {
			slog.Error("Module shutdown failed", "module", s.modules[i].Name(), "error", merr)
		}
	}
	if s.cancel != nil {
		s.cancel()
	}
	if cerr := s.bus.Close(); cerr != nil {
		slog.Warn("Failed to close message bus", "error", cerr)
	}
	return err
}
