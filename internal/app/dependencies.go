package app

import (
	"github.com/tourofheroes/heroes/internal/modules/backend"
	"github.com/tourofheroes/heroes/internal/modules/tour"
	"github.com/tourofheroes/heroes/internal/pubsub"
	"github.com/tourofheroes/heroes/internal/rendering"
	"github.com/tourofheroes/heroes/internal/storage"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the main application entrypoint to wire up the modules.
type Dependencies struct {
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
	Files      storage.Store
}

// backendDeps creates the dependency struct for the backend module.
func backendDeps(deps Dependencies) backend.Dependencies {
	return backend.Dependencies{
		Files: deps.Files,
	}
}

// tourDeps creates the dependency struct for the tour module.
func tourDeps(deps Dependencies) tour.Dependencies {
	return tour.Dependencies{
		Subscriber: deps.Subscriber,
		Renderer:   deps.Renderer,
	}
}
