// Package model contains domain models passed between layers.
package model

import "slices"

// ObtainMethod describes how an expert is acquired.
type ObtainMethod string

const (
	// ObtainStory experts are granted by the story and are always owned.
	ObtainStory ObtainMethod = "story"
	// ObtainPurchase experts cost medals and need an investigator level.
	ObtainPurchase ObtainMethod = "purchase"
)

// Valid reports whether m is a known obtain method.
func (m ObtainMethod) Valid() bool {
	return m == ObtainStory || m == ObtainPurchase
}

// Expert is an acquirable unit. Immutable once loaded.
type Expert struct {
	ID            string
	Genres        []string
	Traits        []string
	Obtain        ObtainMethod
	Cost          int // medals, purchase only
	RequiredLevel int // investigator level, purchase only
}

// HasGenre reports whether the expert belongs to genre.
func (e Expert) HasGenre(genre string) bool {
	return slices.Contains(e.Genres, genre)
}

// HasTrait reports whether the expert carries trait.
func (e Expert) HasTrait(trait string) bool {
	return slices.Contains(e.Traits, trait)
}

// Matches reports whether the expert satisfies every set constraint of r.
func (e Expert) Matches(r Requirement) bool {
	if r.Genre != "" && !e.HasGenre(r.Genre) {
		return false
	}
	if r.Trait != "" && !e.HasTrait(r.Trait) {
		return false
	}
	return true
}

// IsStory reports whether the expert is granted automatically.
func (e Expert) IsStory() bool {
	return e.Obtain == ObtainStory
}
