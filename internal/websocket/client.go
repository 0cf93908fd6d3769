package websocket

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	sendBuffer   = 64
	writeTimeout = 10 * time.Second
)

// Client is one connected browser.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte
}

// readPump keeps the connection serviced until the peer goes away. The
// browser never sends anything on this socket, so frames are discarded.
func (c *Client) readPump(ctx context.Context) {
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			logReadError(c.ID, err)
			return
		}
	}
}

// writePump writes queued frames until send is closed or ctx is done.
func (c *Client) writePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case message, ok := <-c.send:
			if !ok {
				return
			}
			if err := Write(ctx, c.conn, message); err != nil {
				slog.Error("WebSocket write error", "clientID", c.ID, "error", err)
				return
			}
		}
	}
}

// Write sends one text frame with the package write timeout.
func Write(ctx context.Context, conn *websocket.Conn, message []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, message)
}

func logReadError(clientID string, err error) {
	switch status := websocket.CloseStatus(err); {
	case status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway:
		slog.Debug("WebSocket closed by client", "clientID", clientID)
	case errors.Is(err, io.EOF) || errors.Is(err, context.Canceled):
		slog.Debug("WebSocket connection ended", "clientID", clientID)
	default:
		slog.Warn("WebSocket read error", "clientID", clientID, "error", err)
	}
}
