// Package types contains common types used across the application
package types

import "fmt"

// Display texts shared by the HTTP, CLI and TUI surfaces.
const (
	NoteOwned      = "You have this expert."
	NoteNoGain     = "You would gain nothing by obtaining this expert."
	StoryObtain    = "Given automatically by completing story missions"
	RequirementSep = " | "
)

// PurchaseObtain renders the acquisition line of a purchasable expert.
func PurchaseObtain(cost, level int) string {
	return fmt.Sprintf("%d medals / Requires %d investigator level", cost, level)
}

// Medal marks one of the first three positions of a ranking.
type Medal struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// MedalFor returns the medal for a 1-based position, or nil past the podium.
func MedalFor(position int) *Medal {
	switch position {
	case 1:
		return &Medal{Label: "1st", Color: "gold"}
	case 2:
		return &Medal{Label: "2nd", Color: "silver"}
	case 3:
		return &Medal{Label: "3rd", Color: "peru"}
	default:
		return nil
	}
}

// TraitView is a trait tag ready for display.
type TraitView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// RequirementView renders a requirement with labels instead of ids.
type RequirementView struct {
	Genre string     `json:"genre,omitempty"`
	Trait *TraitView `json:"trait,omitempty"`
	Text  string     `json:"text"`
}

// StageView is a stage with its requirements rendered for display.
type StageView struct {
	ID           string            `json:"id"`
	Tier         string            `json:"tier"`
	Requirements []RequirementView `json:"requirements"`
}

// StageGain is a stage that would improve, and the status it would reach.
type StageGain struct {
	StageView
	Status string `json:"status"`
	Level  int    `json:"level"`
}

// ExpertView describes an expert for display.
type ExpertView struct {
	ID            string      `json:"id"`
	Obtain        string      `json:"obtain"`
	Acquisition   string      `json:"acquisition"`
	Cost          int         `json:"cost,omitempty"`
	RequiredLevel int         `json:"required_level,omitempty"`
	Genres        []string    `json:"genres"`
	Traits        []TraitView `json:"traits"`
}

// Recommendation is a ranked roster entry.
type Recommendation struct {
	Position   int         `json:"position"`
	Medal      *Medal      `json:"medal,omitempty"`
	Expert     ExpertView  `json:"expert"`
	Owned      bool        `json:"owned"`
	TotalGain  int         `json:"total_gain"`
	Note       string      `json:"note,omitempty"`
	NormalGain []StageGain `json:"normal_gain"`
	EliteGain  []StageGain `json:"elite_gain"`
}

// Stats summarises the loaded dataset.
type Stats struct {
	Experts       int            `json:"experts"`
	StoryExperts  int            `json:"story_experts"`
	Stages        map[string]int `json:"stages"`
	Genres        int            `json:"genres"`
	Traits        int            `json:"traits"`
	DatasetSource string         `json:"dataset_source,omitempty"`
}
