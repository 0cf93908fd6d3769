package search

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect[T any](t *testing.T, ch <-chan T, timeout time.Duration) []T {
	t.Helper()
	var got []T
	deadline := time.After(timeout)
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, v)
		case <-deadline:
			t.Fatalf("channel not closed within %s; got %v so far", timeout, got)
			return got
		}
	}
}

func TestDebounce_CoalescesBursts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan string)
	out := Debounce(ctx, in, 50*time.Millisecond)

	go func() {
		for _, s := range []string{"m", "ma", "mag"} {
			in <- s
			time.Sleep(5 * time.Millisecond)
		}
		time.Sleep(120 * time.Millisecond)
		in <- "magm"
		time.Sleep(120 * time.Millisecond)
		close(in)
	}()

	assert.Equal(t, []string{"mag", "magm"}, collect(t, out, time.Second))
}

func TestDebounce_FlushesPendingOnClose(t *testing.T) {
	in := make(chan int, 2)
	in <- 1
	in <- 2
	close(in)

	out := Debounce(context.Background(), in, time.Hour)

	assert.Equal(t, []int{2}, collect(t, out, time.Second))
}

func TestDebounce_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan int)
	out := Debounce(ctx, in, time.Hour)

	in <- 1
	cancel()

	assert.Empty(t, collect(t, out, time.Second))
}

func TestDistinctUntilChanged(t *testing.T) {
	in := make(chan string, 6)
	for _, s := range []string{"a", "a", "b", "b", "a", "a"} {
		in <- s
	}
	close(in)

	out := DistinctUntilChanged(context.Background(), in)

	assert.Equal(t, []string{"a", "b", "a"}, collect(t, out, time.Second))
}

func TestSwitchMap_LatestWins(t *testing.T) {
	in := make(chan int)
	var canceled atomic.Int32

	fn := func(ctx context.Context, v int) int {
		if v == 1 {
			// The first call is slow and is superseded before it finishes.
			select {
			case <-ctx.Done():
				canceled.Add(1)
			case <-time.After(200 * time.Millisecond):
			}
			return v * 10
		}
		return v * 10
	}

	out := SwitchMap(context.Background(), in, fn)

	go func() {
		in <- 1
		time.Sleep(20 * time.Millisecond)
		in <- 2
		close(in)
	}()

	got := collect(t, out, time.Second)
	assert.Equal(t, []int{20}, got, "superseded result is discarded")
	assert.Equal(t, int32(1), canceled.Load(), "superseded call sees its context canceled")
}

func TestSwitchMap_LateStaleResultIsDropped(t *testing.T) {
	in := make(chan int)
	// The stale call ignores cancellation and resolves after the fresh one.
	fn := func(_ context.Context, v int) int {
		if v == 1 {
			time.Sleep(100 * time.Millisecond)
		}
		return v
	}

	out := SwitchMap(context.Background(), in, fn)
	go func() {
		in <- 1
		time.Sleep(10 * time.Millisecond)
		in <- 2
		close(in)
	}()

	assert.Equal(t, []int{2}, collect(t, out, time.Second))
}

func TestSwitchMap_SequentialValuesAllDelivered(t *testing.T) {
	in := make(chan int)
	out := SwitchMap(context.Background(), in, func(_ context.Context, v int) int { return v + 1 })

	results := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		in <- i
		select {
		case r := <-out:
			results = append(results, r)
		case <-time.After(time.Second):
			require.FailNow(t, "no result")
		}
	}
	close(in)

	assert.Equal(t, []int{1, 2, 3}, results)
	assert.Empty(t, collect(t, out, time.Second))
}
