package tour

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tourofheroes/heroes/internal/domain"
)

// topHeroesFrom and topHeroesTo select the dashboard's slice of the list.
const (
	topHeroesFrom = 1
	topHeroesTo   = 5
)

// deleteTimeout bounds a fire-and-forget delete that outlives its request.
const deleteTimeout = 10 * time.Second

// HeroService is the data access the views depend on. heroes.Client satisfies it.
type HeroService interface {
	List(ctx context.Context) []domain.Hero
	Get(ctx context.Context, id int) *domain.Hero
	Add(ctx context.Context, hero domain.Hero) *domain.Hero
	Update(ctx context.Context, hero domain.Hero) bool
	Delete(ctx context.Context, ref domain.HeroRef) bool
}

// DashboardState is what the dashboard shows.
type DashboardState struct {
	TopHeroes []domain.Hero
}

// DashboardController loads the dashboard.
type DashboardController struct {
	heroes HeroService
}

// NewDashboardController creates a new DashboardController.
func NewDashboardController(heroes HeroService) *DashboardController {
	return &DashboardController{heroes: heroes}
}

// Init loads the heroes and keeps the second to fifth.
func (dc *DashboardController) Init(ctx context.Context) DashboardState {
	all := dc.heroes.List(ctx)
	from := min(topHeroesFrom, len(all))
	to := min(topHeroesTo, len(all))
	return DashboardState{TopHeroes: slices.Clone(all[from:to])}
}

// HeroesState is the list shown on the heroes page.
type HeroesState struct {
	Heroes []domain.Hero
}

// Append returns a copy of s with h at the end.
func (s HeroesState) Append(h domain.Hero) HeroesState {
	return HeroesState{Heroes: append(slices.Clone(s.Heroes), h)}
}

// Without returns a copy of s without the hero with id.
func (s HeroesState) Without(id int) HeroesState {
	return HeroesState{Heroes: slices.DeleteFunc(slices.Clone(s.Heroes), func(h domain.Hero) bool {
		return h.ID == id
	})}
}

// HeroesController handles the heroes list.
type HeroesController struct {
	heroes  HeroService
	pending sync.WaitGroup
}

// NewHeroesController creates a new HeroesController.
func NewHeroesController(heroes HeroService) *HeroesController {
	return &HeroesController{heroes: heroes}
}

// Init loads every hero.
func (hc *HeroesController) Init(ctx context.Context) HeroesState {
	return HeroesState{Heroes: hc.heroes.List(ctx)}
}

// Add creates a hero named name, trimmed. A blank name changes nothing and
// sends nothing. The created hero is returned along with the new state; both
// are unchanged when creation fails.
func (hc *HeroesController) Add(ctx context.Context, s HeroesState, name string) (HeroesState, *domain.Hero) {
	name = domain.NormalizeName(name)
	if name == "" {
		return s, nil
	}
	created := hc.heroes.Add(ctx, domain.Hero{Name: name})
	if created == nil {
		return s, nil
	}
	return s.Append(*created), created
}

// Delete removes the hero from the state at once and deletes it in the
// background. The outcome is only visible in the message log.
func (hc *HeroesController) Delete(ctx context.Context, s HeroesState, ref domain.HeroRef) HeroesState {
	next := s.Without(ref.RefID())

	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), deleteTimeout)
	hc.pending.Add(1)
	go func() {
		defer hc.pending.Done()
		defer cancel()
		hc.heroes.Delete(bg, ref)
	}()

	return next
}

// Wait blocks until every background delete has finished.
func (hc *HeroesController) Wait() {
	hc.pending.Wait()
}

// DetailState is the hero being edited; Hero is nil when it could not be loaded.
type DetailState struct {
	Hero *domain.Hero
}

// DetailController loads and saves a single hero.
type DetailController struct {
	heroes HeroService
}

// NewDetailController creates a new DetailController.
func NewDetailController(heroes HeroService) *DetailController {
	return &DetailController{heroes: heroes}
}

// Init loads the hero with id.
func (dc *DetailController) Init(ctx context.Context, id int) DetailState {
	return DetailState{Hero: dc.heroes.Get(ctx, id)}
}

// Save writes the hero back, with its name trimmed.
func (dc *DetailController) Save(ctx context.Context, hero domain.Hero) bool {
	hero.Name = domain.NormalizeName(hero.Name)
	return dc.heroes.Update(ctx, hero)
}
