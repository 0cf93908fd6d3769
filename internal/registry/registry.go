package registry

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/tourofheroes/heroes/internal/config"
)

// Key is a type-safe, generic key for registering and retrieving services.
// The string value should be a unique identifier, e.g., "moduleName.serviceName".
type Key[T any] string

// Registry lets modules share and discover services at runtime. Services live
// in a samber/do injector under the key's name, so they may be registered
// either eagerly as values or lazily as providers.
type Registry struct {
	injector do.Injector
	cfg      config.Provider
}

// New creates a new registry with the application's configuration provider.
func New(cfg config.Provider) *Registry {
	return &Registry{
		injector: do.New(),
		cfg:      cfg,
	}
}

// Config returns the configuration provider stored in the registry.
func (r *Registry) Config() config.Provider {
	return r.cfg
}

// Injector exposes the underlying container.
func (r *Registry) Injector() do.Injector {
	return r.injector
}

// Set registers a service instance against a type-safe key, replacing any
// previous registration.
func Set[T any](r *Registry, key Key[T], value T) {
	do.OverrideNamedValue(r.injector, string(key), value)
}

// Provide registers a lazily built service. The provider runs on first lookup
// and its result is reused afterwards.
func Provide[T any](r *Registry, key Key[T], provider func(r *Registry) (T, error)) {
	do.ProvideNamed(r.injector, string(key), func(do.Injector) (T, error) {
		return provider(r)
	})
}

// Get retrieves a service from the registry by its key.
func Get[T any](r *Registry, key Key[T]) (T, bool) {
	val, err := do.InvokeNamed[T](r.injector, string(key))
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// MustGet retrieves a service or panics if not found. This is useful for
// wiring up essential dependencies at startup.
func MustGet[T any](r *Registry, key Key[T]) T {
	val, err := do.InvokeNamed[T](r.injector, string(key))
	if err != nil {
		panic(fmt.Sprintf("service not found for key %v: %v", key, err))
	}
	return val
}
