package model

import "sort"

// Trait is the display metadata of a trait tag.
type Trait struct {
	Label string
	Color string
}

// Catalog is the static dataset: experts, stages per tier and tag metadata.
// It is loaded once and treated as read-only afterwards.
type Catalog struct {
	Experts map[string]Expert
	Stages  map[Tier][]Stage
	Genres  map[string]string
	Traits  map[string]Trait
}

// Expert looks up an expert by id.
func (c *Catalog) Expert(id string) (Expert, bool) {
	e, ok := c.Experts[id]
	return e, ok
}

// Stage looks up a stage by tier and id.
func (c *Catalog) Stage(tier Tier, id string) (Stage, bool) {
	for _, s := range c.Stages[tier] {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// ExpertIDs returns every expert id in lexicographic order.
func (c *Catalog) ExpertIDs() []string {
	ids := make([]string, 0, len(c.Experts))
	for id := range c.Experts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GenreLabel returns the display label of a genre, or the id when unknown.
func (c *Catalog) GenreLabel(id string) string {
	if label, ok := c.Genres[id]; ok && label != "" {
		return label
	}
	return id
}

// TraitInfo returns the trait metadata, falling back to the id as label.
func (c *Catalog) TraitInfo(id string) Trait {
	if t, ok := c.Traits[id]; ok {
		if t.Label == "" {
			t.Label = id
		}
		return t
	}
	return Trait{Label: id}
}

// StageCounts returns the number of stages per tier keyed by tier name.
func (c *Catalog) StageCounts() map[string]int {
	out := make(map[string]int, len(c.Stages))
	for _, tier := range Tiers() {
		out[string(tier)] = len(c.Stages[tier])
	}
	return out
}
