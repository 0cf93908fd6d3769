// Package tour is the user-facing part of the application: the dashboard,
// the heroes list, the detail editor, hero search and the message panel.
package tour

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/tourofheroes/heroes/internal/middleware"
	"github.com/tourofheroes/heroes/internal/module"
	"github.com/tourofheroes/heroes/internal/pubsub"
	"github.com/tourofheroes/heroes/internal/registry"
	"github.com/tourofheroes/heroes/internal/rendering"
	ws "github.com/tourofheroes/heroes/internal/websocket"
)

// TourModule implements module.Module for the tour pages.
type TourModule struct {
	module.BaseModule
	subscriber pubsub.Subscriber
	renderer   rendering.Renderer
	handler    *Handler
	hub        *ws.Hub
}

// Dependencies holds all the services that the TourModule requires to operate.
type Dependencies struct {
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
}

// New creates a new instance of the TourModule, injecting its dependencies.
func New(deps Dependencies) *TourModule {
	return &TourModule{
		subscriber: deps.Subscriber,
		renderer:   deps.Renderer,
		hub:        ws.NewHub(),
	}
}

// Name returns the module name.
func (m *TourModule) Name() string {
	return "tour"
}

// Boot sets up the routes and starts the message panel broadcaster.
func (m *TourModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	client := registry.MustGet(reg, registry.HeroClientKey)
	log := registry.MustGet(reg, registry.MessageLogKey)
	pipeline := registry.MustGet(reg, registry.SearchPipelineKey)

	go m.hub.Run(ctx)
	if err := NewMessageSubscriber(m.subscriber, m.renderer, m.hub).Start(ctx); err != nil {
		return err
	}

	slog.Info("Booting TourModule: Setting up routes...")
	m.handler = NewHandler(client, log, m.renderer)
	search := NewSearchSocket(pipeline, m.renderer)
	limit := middleware.RateLimiter(rate.Limit(reg.Config().GetWriteRateLimit()))

	g.GET("/", m.handler.Root)
	g.GET("/dashboard", m.handler.Dashboard, middleware.TrackHistory)
	g.GET("/heroes", m.handler.Heroes, middleware.TrackHistory)
	g.GET("/detail/:id", m.handler.Detail, middleware.TrackHistory)
	g.POST("/heroes", m.handler.AddHero, limit)
	g.DELETE("/heroes/:id", m.handler.DeleteHero, limit)
	g.POST("/detail/:id", m.handler.SaveDetail, limit)
	g.GET("/back", m.handler.Back)
	g.GET("/messages", m.handler.Messages)
	g.GET("/ws/search", search.Handle)
	g.GET("/ws/messages", m.hub.Handler())

	return nil
}

// Shutdown waits for background deletes to finish, or for ctx to expire.
func (m *TourModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down TourModule...")
	if m.handler == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		m.handler.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
