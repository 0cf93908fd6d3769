package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tourofheroes/heroes/internal/heroes"
	"github.com/tourofheroes/heroes/internal/messages"
	"github.com/tourofheroes/heroes/internal/metrics"
	"github.com/tourofheroes/heroes/internal/modules/backend"
	"github.com/tourofheroes/heroes/internal/registry"
	"github.com/tourofheroes/heroes/internal/search"
)

// RegisterServices puts the shared services into the registry. The hero
// client and the search pipeline are built lazily, after the modules have
// registered theirs.
func RegisterServices(reg *registry.Registry, deps Dependencies, m *metrics.Manager) {
	registry.Set(reg, registry.PublisherKey, deps.Publisher)
	registry.Set(reg, registry.SubscriberKey, deps.Subscriber)
	registry.Set(reg, registry.RendererKey, deps.Renderer)
	registry.Set(reg, registry.MetricsKey, m)
	registry.Set(reg, registry.MessageLogKey, messages.New(deps.Publisher))

	registry.Provide(reg, registry.HeroClientKey, NewHeroClient)
	registry.Provide(reg, registry.SearchPipelineKey, func(r *registry.Registry) (*search.Pipeline, error) {
		client, err := registryGet(r, registry.HeroClientKey)
		if err != nil {
			return nil, err
		}
		return search.NewPipeline(client, r.Config().GetSearchDebounce()), nil
	})
}

// NewHeroClient builds the hero client. With no API URL configured it talks
// to the backend module in-process.
func NewHeroClient(reg *registry.Registry) (*heroes.Client, error) {
	cfg := reg.Config()
	log, err := registryGet(reg, registry.MessageLogKey)
	if err != nil {
		return nil, err
	}

	hc := &http.Client{Timeout: cfg.GetHTTPClientTimeout()}
	baseURL := cfg.GetAPIBaseURL()
	if baseURL == "" {
		api, err := registryGet(reg, backend.APIKey)
		if err != nil {
			return nil, err
		}
		hc.Transport = backend.Transport(api)
		baseURL = backend.InProcessBaseURL
	}
	slog.Info("Hero client configured", "base_url", baseURL)

	opts := []heroes.Option{heroes.WithHTTPClient(hc)}
	if m, ok := registry.Get(reg, registry.MetricsKey); ok && m != nil {
		opts = append(opts, heroes.WithRecorder(m))
	}
	return heroes.NewClient(baseURL, log, opts...), nil
}

func registryGet[T any](reg *registry.Registry, key registry.Key[T]) (T, error) {
	v, ok := registry.Get(reg, key)
	if !ok {
		var zero T
		return zero, fmt.Errorf("service %q is not registered", key)
	}
	return v, nil
}
