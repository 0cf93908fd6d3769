package tour

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tourofheroes/heroes/internal/modules/tour/components"
	"github.com/tourofheroes/heroes/internal/rendering"
	"github.com/tourofheroes/heroes/internal/search"
	ws "github.com/tourofheroes/heroes/internal/websocket"
)

// searchFrame is what the htmx ws extension sends for the search input.
type searchFrame struct {
	Term string `json:"term"`
}

// SearchSocket drives one search pipeline per connection: keystroke frames in,
// rendered result lists out.
type SearchSocket struct {
	pipeline *search.Pipeline
	renderer rendering.Renderer
}

// NewSearchSocket creates a new SearchSocket.
func NewSearchSocket(pipeline *search.Pipeline, renderer rendering.Renderer) *SearchSocket {
	return &SearchSocket{pipeline: pipeline, renderer: renderer}
}

// Handle upgrades the connection and serves it until the browser leaves.
func (s *SearchSocket) Handle(c echo.Context) error {
	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		InsecureSkipVerify: true, // In production, check origin.
	})
	if err != nil {
		slog.Error("Failed to upgrade search connection", "error", err)
		return err
	}
	defer conn.CloseNow()

	connID := uuid.NewString()
	logger := slog.Default().With("component", "search.socket", "connID", connID)
	logger.Debug("Search socket connected")

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	terms := make(chan string)
	results := s.pipeline.Run(ctx, terms)

	written := make(chan struct{})
	go func() {
		defer close(written)
		for heroes := range results {
			frame, err := s.renderer.RenderComponent(ctx, components.SearchResults(heroes))
			if err != nil {
				logger.Error("Failed to render search results", "error", err)
				continue
			}
			if err := ws.Write(ctx, conn, frame); err != nil {
				logger.Debug("Search socket write failed", "error", err)
				cancel()
				return
			}
		}
	}()

	s.readTerms(ctx, conn, terms, logger)
	close(terms)
	cancel()
	<-written

	conn.Close(websocket.StatusNormalClosure, "")
	logger.Debug("Search socket closed")
	return nil
}

// readTerms forwards every frame's term until the connection or ctx ends.
func (s *SearchSocket) readTerms(ctx context.Context, conn *websocket.Conn, terms chan<- string, logger *slog.Logger) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var frame searchFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			logger.Warn("Ignoring malformed search frame", "error", err)
			continue
		}
		select {
		case terms <- frame.Term:
		case <-ctx.Done():
			return
		}
	}
}
