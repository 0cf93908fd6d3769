package domain

import "strings"

// Hero is the single record type of the application.
// ID is assigned by the backend and is zero until the hero has been created.
type Hero struct {
	ID   int    `json:"id,omitempty" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// HeroRef is anything that identifies a hero: a full record or a bare id.
type HeroRef interface {
	RefID() int
}

// RefID implements HeroRef.
func (h Hero) RefID() int {
	return h.ID
}

// HeroID is a bare hero identifier.
type HeroID int

// RefID implements HeroRef.
func (id HeroID) RefID() int {
	return int(id)
}

// NormalizeName trims surrounding whitespace from a hero name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ValidName reports whether name is non-empty after trimming.
func ValidName(name string) bool {
	return NormalizeName(name) != ""
}
