package backend

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourofheroes/heroes/internal/domain"
	"github.com/tourofheroes/heroes/internal/heroes"
	"github.com/tourofheroes/heroes/internal/messages"
)

func newInProcessClient(store *Store, log *messages.Log) *heroes.Client {
	hc := &http.Client{Transport: Transport(NewAPI(store)), Timeout: time.Second}
	return heroes.NewClient(InProcessBaseURL, log, heroes.WithHTTPClient(hc))
}

func TestTransport_ClientRoundTrip(t *testing.T) {
	store := NewStore(DefaultHeroes)
	log := messages.New(nil)
	c := newInProcessClient(store, log)
	ctx := context.Background()

	assert.Len(t, c.List(ctx), 10)

	created := c.Add(ctx, domain.Hero{Name: "Bolt"})
	require.NotNil(t, created)
	assert.Equal(t, 21, created.ID)

	assert.True(t, c.Update(ctx, domain.Hero{ID: 21, Name: "Bolt II"}))
	got := c.Get(ctx, 21)
	require.NotNil(t, got)
	assert.Equal(t, "Bolt II", got.Name)

	assert.Len(t, c.Search(ctx, "bolt"), 1)
	assert.True(t, c.Delete(ctx, domain.HeroID(21)))
	assert.Nil(t, c.GetNo404(ctx, 21))

	assert.Equal(t, []string{
		"HeroService: fetched heroes",
		"HeroService: added hero w/ id=21",
		"HeroService: updated hero id=21",
		"HeroService: fetched hero id=21",
		`HeroService: found heroes matching "bolt"`,
		"HeroService: deleted hero id=21",
		"HeroService: did not find hero id=21",
	}, log.All())
}

func TestTransport_NotFoundIsHTTPError(t *testing.T) {
	log := messages.New(nil)
	c := newInProcessClient(NewStore(DefaultHeroes), log)

	assert.Nil(t, c.Get(context.Background(), 99))
	require.Equal(t, 1, log.Len())
	assert.Contains(t, log.All()[0], "getHero id=99 failed: http failure response for GET http://heroes.local/apis/heroes/99: 404 Not Found")
}

func TestTransport_CanceledContext(t *testing.T) {
	rt := Transport(NewAPI(NewStore(DefaultHeroes)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, InProcessBaseURL+"/apis/heroes", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	assert.ErrorIs(t, err, context.Canceled)
}
