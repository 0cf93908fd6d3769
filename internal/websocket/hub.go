// Package websocket fans rendered HTML fragments out to every connected
// browser.
package websocket

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Hub maintains the set of connected clients and broadcasts to them.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	clients    map[*Client]struct{}
	count      atomic.Int64
	done       chan struct{}
}

// NewHub creates a hub. Run must be started before clients connect.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, sendBuffer),
		clients:    make(map[*Client]struct{}),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			close(c.send)
		}
		clear(h.clients)
		h.count.Store(0)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			slog.Debug("WebSocket client registered", "clientID", c.ID, "total", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.count.Store(int64(len(h.clients)))
				slog.Debug("WebSocket client unregistered", "clientID", c.ID, "total", len(h.clients))
			}

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					slog.Warn("Client send buffer full, dropping message", "clientID", c.ID)
				}
			}
		}
	}
}

// Broadcast queues message for every connected client.
func (h *Hub) Broadcast(ctx context.Context, message []byte) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	case <-ctx.Done():
	}
}

// Count returns the number of registered clients.
func (h *Hub) Count() int {
	return int(h.count.Load())
}

// Handler upgrades the request and keeps the client registered until the
// connection closes.
func (h *Hub) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
			InsecureSkipVerify: true, // In production, check origin.
		})
		if err != nil {
			slog.Error("Failed to upgrade connection to WebSocket", "error", err)
			return err
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithCancel(c.Request().Context())
		defer cancel()

		client := &Client{
			ID:   uuid.NewString(),
			conn: conn,
			send: make(chan []byte, sendBuffer),
		}
		select {
		case h.register <- client:
		case <-h.done:
			return nil
		case <-ctx.Done():
			return nil
		}

		go client.writePump(ctx)
		client.readPump(ctx)

		select {
		case h.unregister <- client:
		case <-h.done:
		}
		conn.Close(websocket.StatusNormalClosure, "")
		return nil
	}
}
