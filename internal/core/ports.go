package core

import (
	"context"
)

// Classifier defines the interface for spam classification backends
type Classifier interface {
	// ClassifyMessage scores a message and reports how likely it is to be spam
	ClassifyMessage(ctx context.Context, msg *Message) (*ClassificationResult, error)
}

// CacheRepository defines the interface for caching classification results
type CacheRepository interface {
	// Get retrieves a cached entry for a message digest
	Get(ctx context.Context, textDigest string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, textDigest string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
