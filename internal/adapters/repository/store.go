// Package repository loads the static expert/stage catalog.
package repository

import (
	"context"

	"github.com/okian/expertcalc/internal/domain/model"
)

// Store provides read access to the static catalog.
type Store interface {
	// Load reads, validates and returns the catalog.
	// Errors wrap ErrLoadDataset or ErrInvalidDataset.
	Load(ctx context.Context) (*model.Catalog, error)

	// Source describes where the catalog comes from.
	Source() string
}

// Format selects the document decoder.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)
