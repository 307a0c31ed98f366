package evaluation

import (
	"fmt"
	"sort"
	"strings"
)

// ClassMetrics holds the per-class quality numbers
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report summarizes classifier quality on a labelled evaluation set
type Report struct {
	Labels    []string
	Confusion map[string]map[string]int // actual label -> predicted label -> count
	Accuracy  float64
	PerClass  map[string]ClassMetrics

	MacroPrecision float64
	MacroRecall    float64
	MacroF1        float64
}

// Evaluate compares predicted labels against actual labels
func Evaluate(actual, predicted []string) (*Report, error) {
	if len(actual) == 0 {
		return nil, fmt.Errorf("cannot evaluate on an empty label set")
	}
	if len(actual) != len(predicted) {
		return nil, fmt.Errorf("got %d actual labels but %d predictions", len(actual), len(predicted))
	}

	labelSet := make(map[string]struct{})
	for _, l := range actual {
		labelSet[l] = struct{}{}
	}
	for _, l := range predicted {
		labelSet[l] = struct{}{}
	}
	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	confusion := make(map[string]map[string]int, len(labels))
	for _, l := range labels {
		confusion[l] = make(map[string]int, len(labels))
	}

	correct := 0
	for i := range actual {
		confusion[actual[i]][predicted[i]]++
		if actual[i] == predicted[i] {
			correct++
		}
	}

	report := &Report{
		Labels:    labels,
		Confusion: confusion,
		Accuracy:  float64(correct) / float64(len(actual)),
		PerClass:  make(map[string]ClassMetrics, len(labels)),
	}

	for _, label := range labels {
		tp := confusion[label][label]
		var fp, fn int
		for _, other := range labels {
			if other != label {
				fp += confusion[other][label]
				fn += confusion[label][other]
			}
		}
		support := tp + fn

		m := ClassMetrics{Support: support}
		// Undefined ratios report 0 rather than NaN
		if tp+fp > 0 {
			m.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			m.Recall = float64(tp) / float64(tp+fn)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}

		report.PerClass[label] = m
		report.MacroPrecision += m.Precision
		report.MacroRecall += m.Recall
		report.MacroF1 += m.F1
	}

	n := float64(len(labels))
	report.MacroPrecision /= n
	report.MacroRecall /= n
	report.MacroF1 /= n

	return report, nil
}

// String renders the report for terminal output
func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Accuracy: %.4f\n\n", r.Accuracy)

	b.WriteString("Confusion matrix (rows = actual, cols = predicted):\n")
	fmt.Fprintf(&b, "%12s", "")
	for _, l := range r.Labels {
		fmt.Fprintf(&b, "%10s", l)
	}
	b.WriteString("\n")
	for _, actual := range r.Labels {
		fmt.Fprintf(&b, "%12s", actual)
		for _, predicted := range r.Labels {
			fmt.Fprintf(&b, "%10d", r.Confusion[actual][predicted])
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%12s%12s%12s%12s%10s\n", "", "precision", "recall", "f1", "support")
	for _, label := range r.Labels {
		m := r.PerClass[label]
		fmt.Fprintf(&b, "%12s%12.4f%12.4f%12.4f%10d\n", label, m.Precision, m.Recall, m.F1, m.Support)
	}
	fmt.Fprintf(&b, "%12s%12.4f%12.4f%12.4f\n", "macro avg", r.MacroPrecision, r.MacroRecall, r.MacroF1)

	return b.String()
}
