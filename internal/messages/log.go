// Package messages holds the process-wide message log shown under every page.
package messages

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tourofheroes/heroes/internal/pubsub"
)

// Appended is published on the bus every time a message is added.
type Appended struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// TopicAppended carries every appended message.
var TopicAppended = pubsub.NewEvent[Appended]("messages.entry.appended")

// Log is an append-only list of messages. Entries are never evicted.
type Log struct {
	mu        sync.RWMutex
	entries   []string
	publisher pubsub.Publisher
	logger    *slog.Logger
}

// New creates an empty log. publisher may be nil, in which case appends are
// not announced on the bus.
func New(publisher pubsub.Publisher) *Log {
	return &Log{
		publisher: publisher,
		logger:    slog.Default().With("component", "messages"),
	}
}

// Add appends a message.
func (l *Log) Add(message string) {
	l.mu.Lock()
	l.entries = append(l.entries, message)
	index := len(l.entries) - 1
	l.mu.Unlock()

	if l.publisher == nil {
		return
	}
	// Publish outside the lock so slow subscribers never block readers.
	if err := pubsub.Publish(context.Background(), l.publisher, TopicAppended, Appended{Index: index, Text: message}); err != nil {
		l.logger.Error("Failed to publish appended message", "error", err)
	}
}

// All returns a snapshot of the log in append order.
func (l *Log) All() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
