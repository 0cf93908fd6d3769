package backend

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/tourofheroes/heroes/internal/domain"
)

// firstGeneratedID is the id handed out when the collection is empty.
const firstGeneratedID = 11

// DefaultHeroes is the collection the store starts with when no seed file is
// configured.
var DefaultHeroes = []domain.Hero{
	{ID: 11, Name: "Dr Nice"},
	{ID: 12, Name: "Narco"},
	{ID: 13, Name: "Bombasto"},
	{ID: 14, Name: "Celeritas"},
	{ID: 15, Name: "Magneta"},
	{ID: 16, Name: "RubberMan"},
	{ID: 17, Name: "Dynama"},
	{ID: 18, Name: "Dr IQ"},
	{ID: 19, Name: "Magma"},
	{ID: 20, Name: "Tornado"},
}

// Store is the in-memory hero collection. It keeps insertion order.
type Store struct {
	mu     sync.RWMutex
	heroes []domain.Hero
}

// NewStore creates a store holding a copy of seed.
func NewStore(seed []domain.Hero) *Store {
	return &Store{heroes: slices.Clone(seed)}
}

// List returns a snapshot of every hero.
func (s *Store) List() []domain.Hero {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nonNil(slices.Clone(s.heroes))
}

// Get returns the hero with id or domain.ErrNotFound.
func (s *Store) Get(id int) (domain.Hero, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.heroes[i], nil
	}
	return domain.Hero{}, domain.ErrNotFound
}

// FilterByID returns the hero with id as a one-element slice, or an empty one.
func (s *Store) FilterByID(id int) []domain.Hero {
	h, err := s.Get(id)
	if err != nil {
		return []domain.Hero{}
	}
	return []domain.Hero{h}
}

// Search returns heroes whose name contains term, ignoring case.
func (s *Store) Search(term string) []domain.Hero {
	// A Caser keeps state and must not be shared between goroutines.
	fold := cases.Fold()
	needle := fold.String(term)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Hero{}
	for _, h := range s.heroes {
		if strings.Contains(fold.String(h.Name), needle) {
			out = append(out, h)
		}
	}
	return out
}

// Create stores a new hero under a generated id.
func (s *Store) Create(name string) domain.Hero {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := domain.Hero{ID: s.genID(), Name: name}
	s.heroes = append(s.heroes, h)
	return h
}

// Upsert replaces the hero with the same id, or appends it when the id is
// unknown. It reports whether the hero was newly added.
func (s *Store) Upsert(h domain.Hero) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(h.ID); i >= 0 {
		s.heroes[i] = h
		return false
	}
	s.heroes = append(s.heroes, h)
	return true
}

// Delete removes the hero with id and reports whether it existed.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.heroes = slices.Delete(s.heroes, i, i+1)
	return true
}

// Reset replaces the whole collection.
func (s *Store) Reset(heroes []domain.Hero) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heroes = slices.Clone(heroes)
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.heroes, func(h domain.Hero) bool { return h.ID == id })
}

// genID must be called with the write lock held.
func (s *Store) genID() int {
	if len(s.heroes) == 0 {
		return firstGeneratedID
	}
	maxID := 0
	for _, h := range s.heroes {
		maxID = max(maxID, h.ID)
	}
	return maxID + 1
}

func nonNil(heroes []domain.Hero) []domain.Hero {
	if heroes == nil {
		return []domain.Hero{}
	}
	return heroes
}
