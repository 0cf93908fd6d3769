package tour

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourofheroes/heroes/internal/domain"
	"github.com/tourofheroes/heroes/internal/messages"
	"github.com/tourofheroes/heroes/internal/pubsub"
	"github.com/tourofheroes/heroes/internal/rendering"
	"github.com/tourofheroes/heroes/internal/search"
)

type searcherFunc func(ctx context.Context, term string) []domain.Hero

func (f searcherFunc) Search(ctx context.Context, term string) []domain.Hero {
	return f(ctx, term)
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestSearchSocket_RendersLatestResults(t *testing.T) {
	var mu sync.Mutex
	var searched []string
	searcher := searcherFunc(func(_ context.Context, term string) []domain.Hero {
		mu.Lock()
		searched = append(searched, term)
		mu.Unlock()
		var hits []domain.Hero
		for _, h := range sampleHeroes {
			if strings.Contains(strings.ToLower(h.Name), strings.ToLower(term)) {
				hits = append(hits, h)
			}
		}
		return hits
	})

	socket := NewSearchSocket(search.NewPipeline(searcher, 20*time.Millisecond), rendering.NewUniversalRenderer())
	e := echo.New()
	e.GET("/ws/search", socket.Handle)
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL(srv, "/ws/search"), nil)
	require.NoError(t, err)
	defer conn.Close()

	for _, term := range []string{"m", "ma", "mag"} {
		require.NoError(t, conn.WriteJSON(map[string]string{"term": term, "HEADERS": "ignored"}))
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	body := string(frame)
	assert.Contains(t, body, `id="search-results"`)
	assert.Contains(t, body, "Magneta")
	assert.NotContains(t, body, "Narco")

	mu.Lock()
	assert.Equal(t, []string{"mag"}, searched, "only the settled term is searched")
	mu.Unlock()
}

func TestSearchSocket_IgnoresMalformedFrames(t *testing.T) {
	searcher := searcherFunc(func(context.Context, string) []domain.Hero {
		return []domain.Hero{{ID: 15, Name: "Magneta"}}
	})
	socket := NewSearchSocket(search.NewPipeline(searcher, 10*time.Millisecond), rendering.NewUniversalRenderer())
	e := echo.New()
	e.GET("/ws/search", socket.Handle)
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL(srv, "/ws/search"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(gorillaws.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(map[string]string{"term": "mag"}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(frame), "Magneta")
}

type recordingBroadcaster struct {
	frames chan []byte
}

func (b *recordingBroadcaster) Broadcast(_ context.Context, message []byte) {
	b.frames <- message
}

func TestMessageSubscriber_BroadcastsAppendedMessages(t *testing.T) {
	bus := pubsub.NewWatermillBridge()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broadcaster := &recordingBroadcaster{frames: make(chan []byte, 1)}
	sub := NewMessageSubscriber(bus, rendering.NewUniversalRenderer(), broadcaster)
	require.NoError(t, sub.Start(ctx))

	log := messages.New(bus)
	log.Add("HeroService: fetched heroes")

	select {
	case frame := <-broadcaster.frames:
		assert.Contains(t, string(frame), `hx-swap-oob="beforeend:#messages-list"`)
		assert.Contains(t, string(frame), "<li>HeroService: fetched heroes</li>")
	case <-time.After(2 * time.Second):
		t.Fatal("message was never broadcast")
	}
}
