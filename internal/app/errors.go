package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoCatalog     = errors.New("catalog is required")
	ErrUnknownExpert = errors.New("unknown expert")
	ErrUnknownTier   = errors.New("unknown stage tier")
)
