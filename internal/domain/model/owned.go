package model

import "sort"

// OwnedSet is an immutable snapshot of owned expert IDs. The zero value is
// an empty set and safe to use.
type OwnedSet struct {
	ids map[string]struct{}
}

// NewOwnedSet builds a set from ids; duplicates collapse.
func NewOwnedSet(ids ...string) OwnedSet {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return OwnedSet{ids: m}
}

// Has reports whether id is owned.
func (o OwnedSet) Has(id string) bool {
	_, ok := o.ids[id]
	return ok
}

// Len returns the number of owned ids.
func (o OwnedSet) Len() int {
	return len(o.ids)
}

// With returns a copy of the set with id added. The receiver is untouched.
func (o OwnedSet) With(id string) OwnedSet {
	m := make(map[string]struct{}, len(o.ids)+1)
	for k := range o.ids {
		m[k] = struct{}{}
	}
	m[id] = struct{}{}
	return OwnedSet{ids: m}
}

// IDs returns the owned ids in lexicographic order.
func (o OwnedSet) IDs() []string {
	out := make([]string, 0, len(o.ids))
	for id := range o.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Each calls fn for every owned id in unspecified order.
func (o OwnedSet) Each(fn func(id string)) {
	for id := range o.ids {
		fn(id)
	}
}
