package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/bayes-spam-classifier/internal/core"
)

func TestBuiltinCorpusShape(t *testing.T) {
	examples := Builtin()

	require.Len(t, examples, 10)

	var spam, ham int
	for _, ex := range examples {
		switch ex.Label {
		case core.LabelSpam:
			spam++
		case core.LabelHam:
			ham++
		default:
			t.Fatalf("unexpected label %q", ex.Label)
		}
		assert.NotEmpty(t, ex.Text)
	}
	assert.Equal(t, 5, spam)
	assert.Equal(t, 5, ham)
}

func TestSaveAndLoadCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	examples := Builtin()

	require.NoError(t, SaveCSV(path, examples))

	loaded, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, examples, loaded)
}

func TestSaveCSVCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "dataset.csv")

	require.NoError(t, SaveCSV(path, Builtin()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadCSVRejectsUnknownLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("text,label\nhello,unknown\n"), 0644))

	_, err := LoadCSV(path)
	assert.ErrorContains(t, err, "unknown label")
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestSplitIsDeterministic(t *testing.T) {
	examples := Builtin()

	train1, test1, err := Split(examples, 0.3, 42)
	require.NoError(t, err)
	train2, test2, err := Split(examples, 0.3, 42)
	require.NoError(t, err)

	assert.Equal(t, train1, train2)
	assert.Equal(t, test1, test2)
}

func TestSplitSizes(t *testing.T) {
	examples := Builtin()

	train, test, err := Split(examples, 0.3, 1)
	require.NoError(t, err)

	assert.Len(t, test, 3)
	assert.Len(t, train, 7)
	assert.ElementsMatch(t, examples, append(append([]Example{}, train...), test...))
}

func TestSplitKeepsBothSidesNonEmpty(t *testing.T) {
	examples := Builtin()[:2]

	train, test, err := Split(examples, 0.05, 7)
	require.NoError(t, err)
	assert.Len(t, train, 1)
	assert.Len(t, test, 1)
}

func TestSplitRejectsBadInput(t *testing.T) {
	_, _, err := Split(Builtin()[:1], 0.3, 1)
	assert.Error(t, err)

	_, _, err = Split(Builtin(), 0, 1)
	assert.Error(t, err)

	_, _, err = Split(Builtin(), 1, 1)
	assert.Error(t, err)
}
