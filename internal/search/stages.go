// Package search turns a stream of raw search-box input into a stream of
// hero lists.
//
// Each stage owns its output channel and closes it when its input is closed
// or the context is done, so stages compose by plain function application.
package search

import (
	"context"
	"time"
)

// Debounce forwards a value only after wait has elapsed with no newer value.
// A value still pending when in is closed is flushed before out is closed.
func Debounce[T any](ctx context.Context, in <-chan T, wait time.Duration) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)

		var (
			pending T
			has     bool
			timer   *time.Timer
			fire    <-chan time.Time
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					if has {
						select {
						case out <- pending:
						case <-ctx.Done():
						}
					}
					return
				}
				pending, has = v, true
				if timer == nil {
					timer = time.NewTimer(wait)
				} else {
					timer.Reset(wait)
				}
				fire = timer.C
			case <-fire:
				fire, has = nil, false
				select {
				case out <- pending:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// DistinctUntilChanged drops a value equal to the one emitted just before it.
func DistinctUntilChanged[T comparable](ctx context.Context, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)

		var (
			last T
			seen bool
		)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				if seen && v == last {
					continue
				}
				last, seen = v, true
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

type generation[R any] struct {
	id    uint64
	value R
}

// SwitchMap calls fn for every value of in and forwards its result, but only
// for the most recent value: a new value cancels the context passed to the
// previous call and any result it still produces is discarded. out is closed
// once in is closed and every started call has returned.
func SwitchMap[T, R any](ctx context.Context, in <-chan T, fn func(context.Context, T) R) <-chan R {
	out := make(chan R)
	go func() {
		defer close(out)

		var (
			current  uint64
			inflight int
			cancel   context.CancelFunc = func() {}
			results                     = make(chan generation[R])
			stop                        = make(chan struct{})
		)
		defer func() {
			cancel()
			close(stop)
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					in = nil
					if inflight == 0 {
						return
					}
					continue
				}
				cancel()
				current++
				var callCtx context.Context
				callCtx, cancel = context.WithCancel(ctx)
				inflight++
				go func(id uint64, v T) {
					r := fn(callCtx, v)
					select {
					case results <- generation[R]{id: id, value: r}:
					case <-stop:
					}
				}(current, v)
			case r := <-results:
				inflight--
				if r.id == current {
					select {
					case out <- r.value:
					case <-ctx.Done():
						return
					}
				}
				if in == nil && inflight == 0 {
					return
				}
			}
		}
	}()
	return out
}
