package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the hero store and its HTTP surface.
var (
	ErrNotFound    = errors.New("requested hero not found")
	ErrInvalidHero = errors.New("invalid hero: name must not be blank")
)
