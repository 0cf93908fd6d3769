package registry

import (
	"github.com/tourofheroes/heroes/internal/heroes"
	"github.com/tourofheroes/heroes/internal/messages"
	"github.com/tourofheroes/heroes/internal/metrics"
	"github.com/tourofheroes/heroes/internal/pubsub"
	"github.com/tourofheroes/heroes/internal/rendering"
	"github.com/tourofheroes/heroes/internal/search"
)

// Keys for the core services shared across modules. Module-owned services
// declare their keys in the owning package.
const (
	PublisherKey      Key[pubsub.Publisher]   = "core.publisher"
	SubscriberKey     Key[pubsub.Subscriber]  = "core.subscriber"
	RendererKey       Key[rendering.Renderer] = "core.renderer"
	MessageLogKey     Key[*messages.Log]      = "messages.log"
	MetricsKey        Key[*metrics.Manager]   = "metrics.manager"
	HeroClientKey     Key[*heroes.Client]     = "heroes.client"
	SearchPipelineKey Key[*search.Pipeline]   = "search.pipeline"
)
