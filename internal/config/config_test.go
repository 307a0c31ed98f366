package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "naive_bayes", cfg.GetString("classifier.type"))
	assert.InDelta(t, 1.0, cfg.GetFloat64("classifier.alpha"), 1e-9)
	assert.InDelta(t, 0.5, cfg.GetFloat64("spam.threshold"), 1e-9)
	assert.InDelta(t, 0.3, cfg.GetFloat64("corpus.test_ratio"), 1e-9)
	assert.Equal(t, int64(42), cfg.GetInt64("corpus.split_seed"))
	assert.Equal(t, "memory", cfg.GetString("cache.type"))
	assert.True(t, cfg.GetBool("cache.enabled"))
	assert.True(t, cfg.GetBool("vectorizer.lowercase"))
	assert.Equal(t, 2, cfg.GetInt("vectorizer.min_token_length"))
}

func TestGetDuration(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	ttl, err := cfg.GetDuration("cache.ttl")
	require.NoError(t, err)
	assert.Equal(t, "24h0m0s", ttl.String())
}

func TestTypedSubConfigs(t *testing.T) {
	v := NewEmptyViper()
	v.Set("vectorizer.stop_words", []string{"the", "a"})
	v.Set("model.path", "/tmp/model.json")
	cfg := NewFromViper(v)

	vec := cfg.GetVectorizer()
	assert.True(t, vec.StripAccents)
	assert.Equal(t, []string{"the", "a"}, vec.StopWords)

	assert.Equal(t, "/tmp/model.json", cfg.GetModel().Path)

	corpusCfg := cfg.GetCorpus()
	assert.Empty(t, corpusCfg.CSVPath)
	assert.InDelta(t, 0.3, corpusCfg.TestRatio, 1e-9)
}

func TestOverridesViaViper(t *testing.T) {
	v := NewEmptyViper()
	v.Set("classifier.alpha", 0.5)
	cfg := NewFromViper(v)

	assert.InDelta(t, 0.5, cfg.GetClassifier().Alpha, 1e-9)
}
