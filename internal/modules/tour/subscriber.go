package tour

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tourofheroes/heroes/internal/messages"
	"github.com/tourofheroes/heroes/internal/pubsub"
	"github.com/tourofheroes/heroes/internal/rendering"
	"github.com/tourofheroes/heroes/internal/view"
)

// Broadcaster sends a rendered fragment to every open page.
type Broadcaster interface {
	Broadcast(ctx context.Context, message []byte)
}

// MessageSubscriber listens for appended messages on the bus, renders each
// one as an out-of-band fragment and broadcasts it to every message panel.
type MessageSubscriber struct {
	subscriber  pubsub.Subscriber
	renderer    rendering.Renderer
	broadcaster Broadcaster
}

// NewMessageSubscriber creates a new MessageSubscriber.
func NewMessageSubscriber(sub pubsub.Subscriber, renderer rendering.Renderer, broadcaster Broadcaster) *MessageSubscriber {
	return &MessageSubscriber{
		subscriber:  sub,
		renderer:    renderer,
		broadcaster: broadcaster,
	}
}

// Start subscribes to the message topic. Delivery stops when ctx is canceled.
func (ms *MessageSubscriber) Start(ctx context.Context) error {
	slog.Info("Starting message panel subscriber")
	return pubsub.Subscribe(ctx, ms.subscriber, messages.TopicAppended, ms.handleAppended)
}

func (ms *MessageSubscriber) handleAppended(ctx context.Context, ev messages.Appended) error {
	frame, err := ms.renderer.RenderComponent(ctx, view.AppendedMessage(ev.Text))
	if err != nil {
		return fmt.Errorf("render message %d: %w", ev.Index, err)
	}
	ms.broadcaster.Broadcast(ctx, frame)
	return nil
}
