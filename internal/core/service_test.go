package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/bayes-spam-classifier/internal/whitelist"
)

type stubClassifier struct {
	result *ClassificationResult
	err    error
	calls  int
}

func (s *stubClassifier) ClassifyMessage(ctx context.Context, msg *Message) (*ClassificationResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := *s.result
	return &out, nil
}

type stubCache struct {
	entries  map[string]*CacheEntry
	setCalls int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]*CacheEntry)}
}

func (s *stubCache) Get(ctx context.Context, digest string) (*CacheEntry, error) {
	entry, ok := s.entries[digest]
	if !ok {
		return nil, errors.New("cache entry not found")
	}
	return entry, nil
}

func (s *stubCache) Set(ctx context.Context, entry *CacheEntry) error {
	s.setCalls++
	s.entries[entry.TextDigest] = entry
	return nil
}

func (s *stubCache) Delete(ctx context.Context, digest string) error {
	delete(s.entries, digest)
	return nil
}

func (s *stubCache) Cleanup(ctx context.Context) error { return nil }

func spammyResult(score float64) *ClassificationResult {
	return &ClassificationResult{
		Score:        score,
		Confidence:   0.9,
		Explanation:  "stub",
		ClassifiedAt: time.Now(),
		ModelUsed:    "stub-model",
	}
}

func TestClassifyAppliesThreshold(t *testing.T) {
	classifier := &stubClassifier{result: spammyResult(0.6)}
	svc := NewClassifierService(classifier, nil, zap.NewNop(), false, 0, 0.5, nil)

	result, err := svc.Classify(context.Background(), &Message{From: "a@b.com", Body: "hello"})
	require.NoError(t, err)
	assert.True(t, result.IsSpam)

	strict := NewClassifierService(&stubClassifier{result: spammyResult(0.6)}, nil, zap.NewNop(), false, 0, 0.7, nil)
	result, err = strict.Classify(context.Background(), &Message{From: "a@b.com", Body: "hello"})
	require.NoError(t, err)
	assert.False(t, result.IsSpam)
}

func TestClassifyWhitelistBypass(t *testing.T) {
	classifier := &stubClassifier{result: spammyResult(0.99)}
	checker := whitelist.NewChecker([]string{"trusted.com"}, zap.NewNop())
	svc := NewClassifierService(classifier, nil, zap.NewNop(), false, 0, 0.5, checker)

	result, err := svc.Classify(context.Background(), &Message{From: "boss@trusted.com", Body: "wire money now"})
	require.NoError(t, err)

	assert.False(t, result.IsSpam)
	assert.Zero(t, result.Score)
	assert.Equal(t, "whitelist", result.ModelUsed)
	assert.Zero(t, classifier.calls, "classifier should not run for whitelisted senders")
}

func TestClassifyCacheHitSkipsClassifier(t *testing.T) {
	cache := newStubCache()
	msg := &Message{From: "a@b.com", Body: "buy cheap meds"}
	digest := MessageDigest(msg.Text())
	cache.entries[digest] = &CacheEntry{
		TextDigest: digest,
		IsSpam:     true,
		Score:      0.91,
		LastSeen:   time.Now(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}

	classifier := &stubClassifier{result: spammyResult(0.1)}
	svc := NewClassifierService(classifier, cache, zap.NewNop(), true, time.Hour, 0.5, nil)

	result, err := svc.Classify(context.Background(), msg)
	require.NoError(t, err)

	assert.True(t, result.IsSpam)
	assert.InDelta(t, 0.91, result.Score, 1e-6)
	assert.Equal(t, "cache", result.ModelUsed)
	assert.Zero(t, classifier.calls)
}

func TestClassifyCacheMissStoresResult(t *testing.T) {
	cache := newStubCache()
	classifier := &stubClassifier{result: spammyResult(0.8)}
	svc := NewClassifierService(classifier, cache, zap.NewNop(), true, time.Hour, 0.5, nil)

	msg := &Message{From: "a@b.com", Body: "free prize"}
	_, err := svc.Classify(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, 1, classifier.calls)
	assert.Equal(t, 1, cache.setCalls)

	entry, err := cache.Get(context.Background(), MessageDigest(msg.Text()))
	require.NoError(t, err)
	assert.True(t, entry.IsSpam)
}

func TestClassifyPropagatesClassifierError(t *testing.T) {
	classifier := &stubClassifier{err: errors.New("model not loaded")}
	svc := NewClassifierService(classifier, nil, zap.NewNop(), false, 0, 0.5, nil)

	_, err := svc.Classify(context.Background(), &Message{From: "a@b.com", Body: "hello"})
	assert.Error(t, err)
}

func TestMessageDigestNormalizes(t *testing.T) {
	assert.Equal(t, MessageDigest("Hello World"), MessageDigest("  hello world  "))
	assert.NotEqual(t, MessageDigest("hello"), MessageDigest("goodbye"))
}

func TestMessageTextJoinsSubjectAndBody(t *testing.T) {
	msg := &Message{Subject: "Hi", Body: "there"}
	assert.Equal(t, "Hi there", msg.Text())

	noSubject := &Message{Body: "there"}
	assert.Equal(t, "there", noSubject.Text())
}
