package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePerfectPredictions(t *testing.T) {
	actual := []string{"spam", "ham", "spam", "ham"}

	report, err := Evaluate(actual, actual)
	require.NoError(t, err)

	assert.Equal(t, 1.0, report.Accuracy)
	assert.Equal(t, 1.0, report.PerClass["spam"].Precision)
	assert.Equal(t, 1.0, report.PerClass["spam"].Recall)
	assert.Equal(t, 1.0, report.PerClass["spam"].F1)
	assert.Equal(t, 2, report.PerClass["spam"].Support)
}

func TestEvaluateMixedPredictions(t *testing.T) {
	actual := []string{"spam", "spam", "ham", "ham"}
	predicted := []string{"spam", "ham", "ham", "ham"}

	report, err := Evaluate(actual, predicted)
	require.NoError(t, err)

	assert.InDelta(t, 0.75, report.Accuracy, 1e-9)

	// spam: tp=1, fp=0, fn=1
	assert.InDelta(t, 1.0, report.PerClass["spam"].Precision, 1e-9)
	assert.InDelta(t, 0.5, report.PerClass["spam"].Recall, 1e-9)

	// ham: tp=2, fp=1, fn=0
	assert.InDelta(t, 2.0/3.0, report.PerClass["ham"].Precision, 1e-9)
	assert.InDelta(t, 1.0, report.PerClass["ham"].Recall, 1e-9)

	assert.Equal(t, 1, report.Confusion["spam"]["ham"])
	assert.Equal(t, 0, report.Confusion["ham"]["spam"])
}

func TestEvaluateNeverPredictedClassReportsZero(t *testing.T) {
	actual := []string{"spam", "ham"}
	predicted := []string{"ham", "ham"}

	report, err := Evaluate(actual, predicted)
	require.NoError(t, err)

	// spam was never predicted: precision and F1 are 0, not NaN
	assert.Zero(t, report.PerClass["spam"].Precision)
	assert.Zero(t, report.PerClass["spam"].Recall)
	assert.Zero(t, report.PerClass["spam"].F1)
}

func TestEvaluateMacroAverages(t *testing.T) {
	actual := []string{"spam", "spam", "ham", "ham"}
	predicted := []string{"spam", "ham", "ham", "ham"}

	report, err := Evaluate(actual, predicted)
	require.NoError(t, err)

	expectedMacroPrecision := (1.0 + 2.0/3.0) / 2
	expectedMacroRecall := (0.5 + 1.0) / 2
	assert.InDelta(t, expectedMacroPrecision, report.MacroPrecision, 1e-9)
	assert.InDelta(t, expectedMacroRecall, report.MacroRecall, 1e-9)
}

func TestEvaluateInputValidation(t *testing.T) {
	_, err := Evaluate(nil, nil)
	assert.Error(t, err)

	_, err = Evaluate([]string{"spam"}, []string{"spam", "ham"})
	assert.Error(t, err)
}

func TestReportStringRendersAllSections(t *testing.T) {
	report, err := Evaluate([]string{"spam", "ham"}, []string{"spam", "ham"})
	require.NoError(t, err)

	out := report.String()
	assert.Contains(t, out, "Accuracy: 1.0000")
	assert.Contains(t, out, "Confusion matrix")
	assert.Contains(t, out, "precision")
	assert.Contains(t, out, "macro avg")
}
