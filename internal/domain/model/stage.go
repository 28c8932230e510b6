package model

// Tier partitions stages by difficulty.
type Tier string

const (
	TierNormal Tier = "normal"
	TierElite  Tier = "elite"
)

// Tiers returns every tier in display order.
func Tiers() []Tier {
	return []Tier{TierNormal, TierElite}
}

// ParseTier maps a raw string to a Tier.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierNormal, TierElite:
		return Tier(s), true
	}
	return "", false
}

// Requirement is a (genre, trait) constraint pair. An empty field means
// "no constraint on this axis".
type Requirement struct {
	Genre string
	Trait string
}

// Stage is an unlock condition with one or two requirements.
type Stage struct {
	ID           string
	Requirements []Requirement
}

// Status is the satisfaction level of a stage for an owned set.
// The numeric value is the level used for comparisons.
type Status int

const (
	StatusUnsatisfied Status = iota
	StatusPartial
	StatusFull
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusUnsatisfied:
		return "unsatisfied"
	case StatusPartial:
		return "partially-satisfied"
	case StatusFull:
		return "fully-satisfied"
	default:
		return "unknown"
	}
}

// StageState pairs a stage with its derived status.
type StageState struct {
	StageID string
	Status  Status
}
