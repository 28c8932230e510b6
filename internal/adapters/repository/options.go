package repository

import "github.com/okian/expertcalc/pkg/logger"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used to report loads.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxFileSize bounds the accepted document size in bytes.
func WithMaxFileSize(n int64) Option {
	return func(s *FileStore) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithFormat forces a decoder instead of guessing from the file extension.
func WithFormat(f Format) Option {
	return func(s *FileStore) {
		s.format = f
	}
}
