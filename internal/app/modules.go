package app

import (
	"github.com/tourofheroes/heroes/internal/module"
	"github.com/tourofheroes/heroes/internal/modules/backend"
	"github.com/tourofheroes/heroes/internal/modules/tour"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		// The backend registers the store the in-process hero client talks to.
		backend.New(backendDeps(deps)),
		tour.New(tourDeps(deps)),
	}
}
