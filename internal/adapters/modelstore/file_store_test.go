package modelstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleModel() *Model {
	return &Model{
		Version:        "multinomial-nb-tfidf/v1",
		TrainedAt:      time.Now().UTC().Truncate(time.Second),
		CorpusSize:     10,
		Alpha:          1.0,
		Classes:        []string{"ham", "spam"},
		ClassLogPrior:  []float64{-0.693, -0.693},
		FeatureLogProb: [][]float64{{-1.2, -2.3}, {-2.1, -1.1}},
		Vocabulary:     map[string]int{"prize": 0, "meeting": 1},
		IDF:            []float64{1.4, 1.4},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	store := NewFileStore(path, zap.NewNop())

	model := sampleModel()
	require.NoError(t, store.Save(model))

	loaded, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, model.Version, loaded.Version)
	assert.Equal(t, model.Classes, loaded.Classes)
	assert.Equal(t, model.Vocabulary, loaded.Vocabulary)
	assert.InDelta(t, model.FeatureLogProb[0][1], loaded.FeatureLogProb[0][1], 1e-12)
}

func TestSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "models", "model.json")
	store := NewFileStore(path, zap.NewNop())

	require.NoError(t, store.Save(sampleModel()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	store := NewFileStore(path, zap.NewNop())

	require.NoError(t, store.Save(sampleModel()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "model.json", entries[0].Name())
}

func TestSaveRejectsInconsistentModel(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "model.json"), zap.NewNop())

	bad := sampleModel()
	bad.IDF = []float64{1.4} // vocabulary has two terms

	assert.Error(t, store.Save(bad))
}

func TestLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())

	_, err := store.Load()
	assert.Error(t, err)
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewFileStore(path, zap.NewNop())
	_, err := store.Load()
	assert.Error(t, err)
}

func TestValidateCatchesRaggedLikelihoods(t *testing.T) {
	m := sampleModel()
	m.FeatureLogProb = [][]float64{{-1.2, -2.3}, {-2.1}}

	assert.Error(t, m.Validate())
}
