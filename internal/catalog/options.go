package catalog

import (
	"bookcatalog/internal/book"

	"go.uber.org/zap"
)

// Option configures a Manager.
type Option func(*Manager)

// WithBlobKey changes the slot the collection is persisted under.
func WithBlobKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.blobKey = key
		}
	}
}

// WithRating turns the optional rating field on or off.
func WithRating(enabled bool) Option {
	return func(m *Manager) {
		m.opts.RatingEnabled = enabled
	}
}

// WithTagPolicy decides whether empty tag tokens are dropped or kept.
func WithTagPolicy(policy book.TagPolicy) Option {
	return func(m *Manager) {
		m.opts.TagPolicy = policy
	}
}

// WithLogger sets the logger for load warnings and render failures.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithIDGenerator replaces the UUIDv7 generator, mostly for tests.
func WithIDGenerator(next func() string) Option {
	return func(m *Manager) {
		if next != nil {
			m.newID = next
		}
	}
}
