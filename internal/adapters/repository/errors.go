package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrLoadDataset       = errors.New("failed to load dataset")
	ErrInvalidDataset    = errors.New("invalid dataset")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrDatasetTooLarge   = errors.New("dataset exceeds size limit")
)
