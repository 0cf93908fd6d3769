// Package backend is the mock REST backend: an in-memory hero collection
// served under /apis/heroes, reachable over the network or in-process.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tourofheroes/heroes/internal/heroes"
	"github.com/tourofheroes/heroes/internal/module"
	"github.com/tourofheroes/heroes/internal/registry"
	"github.com/tourofheroes/heroes/internal/storage"
)

// Service keys owned by this module.
const (
	StoreKey registry.Key[*Store]       = "backend.store"
	APIKey   registry.Key[http.Handler] = "backend.api"
)

// BackendModule implements module.Module for the mock REST backend.
type BackendModule struct {
	module.BaseModule
	files storage.Store
	store *Store
}

// Dependencies holds the services the module requires.
type Dependencies struct {
	// Files is where the seed file is read from.
	Files storage.Store
}

// New creates the backend module.
func New(deps Dependencies) *BackendModule {
	return &BackendModule{files: deps.Files}
}

// Name returns the module name.
func (m *BackendModule) Name() string {
	return "backend"
}

// Prefix mounts the module on the collection path.
func (m *BackendModule) Prefix() string {
	return heroes.CollectionPath
}

// Register builds the store, seeded from the configured file when there is
// one, and exposes it together with a standalone API handler.
func (m *BackendModule) Register(reg *registry.Registry) error {
	seed := DefaultHeroes
	if path := reg.Config().GetSeedFile(); path != "" {
		loaded, err := storage.ReadHeroes(context.Background(), m.files, path)
		if err != nil {
			return fmt.Errorf("load hero seed: %w", err)
		}
		seed = loaded
		slog.Info("Loaded hero seed", "path", path, "count", len(seed))
	}

	m.store = NewStore(seed)
	registry.Set(reg, StoreKey, m.store)
	registry.Set[http.Handler](reg, APIKey, NewAPI(m.store))
	return nil
}

// Boot mounts the REST routes on the application router and, when asked to,
// starts reloading the store from the seed file as it changes.
func (m *BackendModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting BackendModule: Setting up routes...")
	NewHandler(m.store).Register(g)

	cfg := reg.Config()
	if path := cfg.GetSeedFile(); path != "" && cfg.GetSeedWatch() {
		if _, err := WatchSeed(ctx, m.files, path, m.store); err != nil {
			slog.Warn("Hero seed will not be reloaded", "path", path, "error", err)
		}
	}
	return nil
}

// NewAPI returns an echo instance serving only the heroes collection, for use
// behind Transport.
func NewAPI(store *Store) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	NewHandler(store).Register(e.Group(heroes.CollectionPath))
	return e
}
