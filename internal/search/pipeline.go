package search

import (
	"context"
	"time"

	"github.com/tourofheroes/heroes/internal/domain"
)

// DefaultDebounce is the input silence required before a term is searched.
const DefaultDebounce = 300 * time.Millisecond

// Searcher resolves a term to matching heroes. A blank term must resolve to an
// empty result without blocking.
type Searcher interface {
	Search(ctx context.Context, term string) []domain.Hero
}

// Pipeline chains debounce, duplicate suppression and switch-latest search.
type Pipeline struct {
	searcher Searcher
	debounce time.Duration
}

// NewPipeline creates a pipeline. A non-positive debounce selects DefaultDebounce.
func NewPipeline(searcher Searcher, debounce time.Duration) *Pipeline {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Pipeline{searcher: searcher, debounce: debounce}
}

// Debounce returns the configured quiet interval.
func (p *Pipeline) Debounce() time.Duration {
	return p.debounce
}

// Run consumes raw terms until terms is closed or ctx is done. Only the result
// of the most recently started search is ever delivered.
func (p *Pipeline) Run(ctx context.Context, terms <-chan string) <-chan []domain.Hero {
	debounced := Debounce(ctx, terms, p.debounce)
	distinct := DistinctUntilChanged(ctx, debounced)
	return SwitchMap(ctx, distinct, p.searcher.Search)
}
