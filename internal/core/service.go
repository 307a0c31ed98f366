package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/mikey/bayes-spam-classifier/internal/whitelist"
	"go.uber.org/zap"
)

// MessageDigest returns the cache key for a message text
func MessageDigest(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// ClassifierService is the core service for spam classification
type ClassifierService struct {
	classifier   Classifier
	cache        CacheRepository
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
	threshold    float64
	whitelist    *whitelist.Checker
}

// NewClassifierService creates a new classifier service
func NewClassifierService(
	classifier Classifier,
	cache CacheRepository,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	threshold float64,
	whitelistChecker *whitelist.Checker,
) *ClassifierService {
	return &ClassifierService{
		classifier:   classifier,
		cache:        cache,
		logger:       logger,
		cacheEnabled: cacheEnabled,
		cacheTTL:     cacheTTL,
		threshold:    threshold,
		whitelist:    whitelistChecker,
	}
}

// Classify checks if a message is spam
func (s *ClassifierService) Classify(ctx context.Context, msg *Message) (*ClassificationResult, error) {
	// Check whitelist first
	if s.whitelist != nil && s.whitelist.IsWhitelisted(msg.From) {
		s.logger.Info("Skipping classification for whitelisted domain",
			zap.String("sender", msg.From),
			zap.String("action", "whitelist_bypass"))

		return &ClassificationResult{
			IsSpam:       false,
			Score:        0.0,
			Confidence:   1.0,
			Explanation:  "Sender domain is whitelisted",
			ClassifiedAt: time.Now(),
			ModelUsed:    "whitelist",
		}, nil
	}

	digest := MessageDigest(msg.Text())

	// Check cache if enabled
	if s.cacheEnabled {
		if entry, err := s.cache.Get(ctx, digest); err == nil {
			s.logger.Debug("Cache hit for message", zap.String("digest", digest))
			return &ClassificationResult{
				IsSpam:       entry.IsSpam,
				Score:        float64(entry.Score),
				Confidence:   1.0, // High confidence since it's cached
				Explanation:  "Result from cache",
				ClassifiedAt: time.Now(),
				ModelUsed:    "cache",
			}, nil
		}
	}

	// Run the classifier
	result, err := s.classifier.ClassifyMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	// Apply threshold
	result.IsSpam = result.Score >= s.threshold

	// Update cache with result if enabled
	if s.cacheEnabled {
		expiresAt := time.Now().Add(s.cacheTTL)
		entry := &CacheEntry{
			TextDigest: digest,
			IsSpam:     result.IsSpam,
			Score:      float32(result.Score),
			LastSeen:   time.Now(),
			ExpiresAt:  expiresAt,
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	return result, nil
}

// IsSpam determines if a result is spam based on the threshold
func (s *ClassifierService) IsSpam(result *ClassificationResult) bool {
	return result.Score >= s.threshold
}
