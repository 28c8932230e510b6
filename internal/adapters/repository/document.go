package repository

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/okian/expertcalc/internal/domain/model"
	"github.com/okian/expertcalc/internal/validation"
)

// document is the on-disk shape of the catalog.
type document struct {
	Experts map[string]expertDoc  `json:"experts" yaml:"experts" validate:"required,min=1,dive"`
	Stages  map[string][]stageDoc `json:"stages" yaml:"stages" validate:"dive,keys,oneof=normal elite,endkeys,dive"`
	Genres  map[string]string     `json:"genres" yaml:"genres"`
	Traits  map[string]traitDoc   `json:"traits" yaml:"traits"`
}

type expertDoc struct {
	Genres        []string `json:"genres" yaml:"genres" validate:"dive,required"`
	Traits        []string `json:"traits" yaml:"traits" validate:"dive,required"`
	Obtain        string   `json:"obtain" yaml:"obtain" validate:"required,oneof=story purchase"`
	Cost          int      `json:"cost" yaml:"cost" validate:"gte=0"`
	RequiredLevel int      `json:"required_level" yaml:"required_level" validate:"required_if=Obtain purchase,gte=0"`
}

type stageDoc struct {
	ID           string           `json:"id" yaml:"id" validate:"required"`
	Requirements []requirementDoc `json:"requirements" yaml:"requirements" validate:"min=1,max=2"`
}

type requirementDoc struct {
	Genre string `json:"genre" yaml:"genre"`
	Trait string `json:"trait" yaml:"trait"`
}

type traitDoc struct {
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
}

// Parse decodes and validates a catalog document.
func Parse(data []byte, format Format) (*model.Catalog, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: decode json: %w", ErrLoadDataset, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: decode yaml: %w", ErrLoadDataset, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := validation.ValidateStruct(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	if problems := doc.references(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDataset, strings.Join(problems, "; "))
	}
	return doc.catalog(), nil
}

// references reports dangling genre/trait ids and duplicate stage ids,
// in a stable order.
func (d *document) references() []string {
	var problems []string

	for _, id := range sortedKeys(d.Experts) {
		e := d.Experts[id]
		for _, g := range e.Genres {
			if _, ok := d.Genres[g]; !ok {
				problems = append(problems, fmt.Sprintf("expert %s: unknown genre %q", id, g))
			}
		}
		for _, t := range e.Traits {
			if _, ok := d.Traits[t]; !ok {
				problems = append(problems, fmt.Sprintf("expert %s: unknown trait %q", id, t))
			}
		}
	}

	for _, tier := range model.Tiers() {
		seen := make(map[string]struct{}, len(d.Stages[string(tier)]))
		for _, s := range d.Stages[string(tier)] {
			if _, dup := seen[s.ID]; dup {
				problems = append(problems, fmt.Sprintf("%s stage %s: duplicate id", tier, s.ID))
			}
			seen[s.ID] = struct{}{}
			for _, r := range s.Requirements {
				if r.Genre != "" {
					if _, ok := d.Genres[r.Genre]; !ok {
						problems = append(problems, fmt.Sprintf("%s stage %s: unknown genre %q", tier, s.ID, r.Genre))
					}
				}
				if r.Trait != "" {
					if _, ok := d.Traits[r.Trait]; !ok {
						problems = append(problems, fmt.Sprintf("%s stage %s: unknown trait %q", tier, s.ID, r.Trait))
					}
				}
			}
		}
	}

	return problems
}

func (d *document) catalog() *model.Catalog {
	c := &model.Catalog{
		Experts: make(map[string]model.Expert, len(d.Experts)),
		Stages:  make(map[model.Tier][]model.Stage, len(model.Tiers())),
		Genres:  make(map[string]string, len(d.Genres)),
		Traits:  make(map[string]model.Trait, len(d.Traits)),
	}

	for id, e := range d.Experts {
		c.Experts[id] = model.Expert{
			ID:            id,
			Genres:        e.Genres,
			Traits:        e.Traits,
			Obtain:        model.ObtainMethod(e.Obtain),
			Cost:          e.Cost,
			RequiredLevel: e.RequiredLevel,
		}
	}
	for _, tier := range model.Tiers() {
		docs := d.Stages[string(tier)]
		stages := make([]model.Stage, len(docs))
		for i, s := range docs {
			reqs := make([]model.Requirement, len(s.Requirements))
			for j, r := range s.Requirements {
				reqs[j] = model.Requirement{Genre: r.Genre, Trait: r.Trait}
			}
			stages[i] = model.Stage{ID: s.ID, Requirements: reqs}
		}
		c.Stages[tier] = stages
	}
	for id, label := range d.Genres {
		c.Genres[id] = label
	}
	for id, t := range d.Traits {
		c.Traits[id] = model.Trait{Label: t.Label, Color: t.Color}
	}
	return c
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
