package messages

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourofheroes/heroes/internal/pubsub"
)

func TestLog_AppendOrder(t *testing.T) {
	log := New(nil)

	log.Add("HeroService: fetched heroes")
	log.Add("HeroService: fetched hero id=12")

	assert.Equal(t, []string{"HeroService: fetched heroes", "HeroService: fetched hero id=12"}, log.All())
	assert.Equal(t, 2, log.Len())
}

func TestLog_AllReturnsSnapshot(t *testing.T) {
	log := New(nil)
	log.Add("first")

	snapshot := log.All()
	snapshot[0] = "mutated"
	log.Add("second")

	assert.Equal(t, []string{"first", "second"}, log.All())
}

func TestLog_ConcurrentAdds(t *testing.T) {
	log := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				log.Add("entry")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, log.Len())
}

func TestLog_PublishesAppends(t *testing.T) {
	bus := pubsub.NewWatermillBridge()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Appended, 2)
	require.NoError(t, pubsub.Subscribe(ctx, bus, TopicAppended, func(ctx context.Context, a Appended) error {
		got <- a
		return nil
	}))

	log := New(bus)
	log.Add("HeroService: added hero w/ id=21")

	select {
	case a := <-got:
		assert.Equal(t, 0, a.Index)
		assert.Equal(t, "HeroService: added hero w/ id=21", a.Text)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for appended event")
	}
}
