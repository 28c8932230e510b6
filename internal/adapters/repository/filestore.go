package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/expertcalc/internal/domain/model"
	"github.com/okian/expertcalc/pkg/logger"
	"github.com/okian/expertcalc/pkg/metrics"
)

const defaultMaxBytes = 8 << 20

// FileStore reads the catalog from a JSON or YAML file.
type FileStore struct {
	path     string
	format   Format
	maxBytes int64
	logger   logger.Logger
}

// NewFileStore creates a store for path. Without WithFormat the decoder is
// picked from the extension: .json, .yaml or .yml.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:     path,
		maxBytes: defaultMaxBytes,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the dataset path.
func (s *FileStore) Source() string {
	return s.path
}

// Load reads and validates the file.
func (s *FileStore) Load(ctx context.Context) (*model.Catalog, error) {
	catalog, err := s.load(ctx)
	metrics.RecordCatalogLoad(err == nil)
	if err != nil {
		s.logger.Error(ctx, "dataset load failed", logger.String("path", s.path), logger.Error(err))
		return nil, err
	}

	counts := catalog.StageCounts()
	metrics.UpdateCatalog(len(catalog.Experts), counts)
	s.logger.Info(ctx, "dataset loaded",
		logger.String("path", s.path),
		logger.Int("experts", len(catalog.Experts)),
		logger.Int("normalStages", counts[string(model.TierNormal)]),
		logger.Int("eliteStages", counts[string(model.TierElite)]),
	)
	return catalog, nil
}

func (s *FileStore) load(ctx context.Context) (*model.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}

	format := s.format
	if format == "" {
		var err error
		if format, err = formatFor(s.path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrLoadDataset, s.path, err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrDatasetTooLarge, s.path, s.maxBytes)
	}

	return Parse(data, format)
}

func formatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
