package bayes

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// MultinomialNB is a multinomial Naive Bayes model over TF-IDF features
// with Lidstone smoothing.
type MultinomialNB struct {
	alpha          float64
	classes        []string
	classLogPrior  []float64
	featureLogProb *mat.Dense
}

// NewMultinomialNB creates an unfitted model. Alpha is the smoothing
// parameter; 1.0 gives classic Laplace smoothing.
func NewMultinomialNB(alpha float64) (*MultinomialNB, error) {
	if alpha <= 0 {
		return nil, fmt.Errorf("smoothing parameter must be positive, got %g", alpha)
	}
	return &MultinomialNB{alpha: alpha}, nil
}

// RestoreMultinomialNB rebuilds a fitted model from persisted parameters
func RestoreMultinomialNB(alpha float64, classes []string, classLogPrior []float64, featureLogProb [][]float64) (*MultinomialNB, error) {
	if len(classes) == 0 {
		return nil, errors.New("no classes in persisted model")
	}
	if len(classLogPrior) != len(classes) || len(featureLogProb) != len(classes) {
		return nil, fmt.Errorf("inconsistent persisted model: %d classes, %d priors, %d likelihood rows",
			len(classes), len(classLogPrior), len(featureLogProb))
	}

	nFeatures := len(featureLogProb[0])
	flp := mat.NewDense(len(classes), nFeatures, nil)
	for c, row := range featureLogProb {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("ragged likelihood matrix: row %d has %d features, want %d", c, len(row), nFeatures)
		}
		flp.SetRow(c, row)
	}

	return &MultinomialNB{
		alpha:          alpha,
		classes:        classes,
		classLogPrior:  classLogPrior,
		featureLogProb: flp,
	}, nil
}

// Fit estimates class priors and feature likelihoods from the training matrix
func (m *MultinomialNB) Fit(x *mat.Dense, y []string) error {
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return errors.New("cannot fit on empty training matrix")
	}
	if rows != len(y) {
		return fmt.Errorf("feature matrix has %d rows but %d labels given", rows, len(y))
	}

	// Stable class ordering
	counts := make(map[string]int)
	for _, label := range y {
		counts[label]++
	}
	classes := make([]string, 0, len(counts))
	for label := range counts {
		classes = append(classes, label)
	}
	sort.Strings(classes)

	classIndex := make(map[string]int, len(classes))
	for i, label := range classes {
		classIndex[label] = i
	}

	classLogPrior := make([]float64, len(classes))
	for i, label := range classes {
		classLogPrior[i] = math.Log(float64(counts[label]) / float64(rows))
	}

	// Per-class feature sums
	featureSums := mat.NewDense(len(classes), cols, nil)
	for i := 0; i < rows; i++ {
		c := classIndex[y[i]]
		for j := 0; j < cols; j++ {
			featureSums.Set(c, j, featureSums.At(c, j)+x.At(i, j))
		}
	}

	featureLogProb := mat.NewDense(len(classes), cols, nil)
	for c := range classes {
		var total float64
		for j := 0; j < cols; j++ {
			total += featureSums.At(c, j)
		}
		denom := math.Log(total + m.alpha*float64(cols))
		for j := 0; j < cols; j++ {
			featureLogProb.Set(c, j, math.Log(featureSums.At(c, j)+m.alpha)-denom)
		}
	}

	m.classes = classes
	m.classLogPrior = classLogPrior
	m.featureLogProb = featureLogProb
	return nil
}

// jointLogLikelihood computes the unnormalized class log scores for each row of x
func (m *MultinomialNB) jointLogLikelihood(x *mat.Dense) (*mat.Dense, error) {
	if m.classes == nil {
		return nil, errors.New("model has not been fitted")
	}

	rows, cols := x.Dims()
	_, nFeatures := m.featureLogProb.Dims()
	if cols != nFeatures {
		return nil, fmt.Errorf("input has %d features but model was fitted with %d", cols, nFeatures)
	}

	jll := mat.NewDense(rows, len(m.classes), nil)
	jll.Mul(x, m.featureLogProb.T())
	for i := 0; i < rows; i++ {
		for c := range m.classes {
			jll.Set(i, c, jll.At(i, c)+m.classLogPrior[c])
		}
	}
	return jll, nil
}

// Predict returns the most likely class per row of x
func (m *MultinomialNB) Predict(x *mat.Dense) ([]string, error) {
	jll, err := m.jointLogLikelihood(x)
	if err != nil {
		return nil, err
	}

	rows, _ := x.Dims()
	labels := make([]string, rows)
	for i := 0; i < rows; i++ {
		best := 0
		for c := 1; c < len(m.classes); c++ {
			if jll.At(i, c) > jll.At(i, best) {
				best = c
			}
		}
		labels[i] = m.classes[best]
	}
	return labels, nil
}

// PredictProba returns the normalized posterior probabilities per row of x,
// columns ordered as Classes().
func (m *MultinomialNB) PredictProba(x *mat.Dense) (*mat.Dense, error) {
	jll, err := m.jointLogLikelihood(x)
	if err != nil {
		return nil, err
	}

	rows, _ := x.Dims()
	probs := mat.NewDense(rows, len(m.classes), nil)
	for i := 0; i < rows; i++ {
		// log-sum-exp keeps the normalization stable
		maxLog := jll.At(i, 0)
		for c := 1; c < len(m.classes); c++ {
			if jll.At(i, c) > maxLog {
				maxLog = jll.At(i, c)
			}
		}

		var sum float64
		for c := range m.classes {
			sum += math.Exp(jll.At(i, c) - maxLog)
		}
		logSum := maxLog + math.Log(sum)

		for c := range m.classes {
			probs.Set(i, c, math.Exp(jll.At(i, c)-logSum))
		}
	}
	return probs, nil
}

// Classes returns the fitted class labels in column order
func (m *MultinomialNB) Classes() []string {
	return m.classes
}

// ClassLogPrior returns the fitted log priors
func (m *MultinomialNB) ClassLogPrior() []float64 {
	return m.classLogPrior
}

// FeatureLogProb returns the fitted per-class feature log likelihoods
// as one row slice per class.
func (m *MultinomialNB) FeatureLogProb() [][]float64 {
	if m.featureLogProb == nil {
		return nil
	}
	rows, cols := m.featureLogProb.Dims()
	out := make([][]float64, rows)
	for c := 0; c < rows; c++ {
		row := make([]float64, cols)
		mat.Row(row, c, m.featureLogProb)
		out[c] = row
	}
	return out
}

// Alpha returns the smoothing parameter
func (m *MultinomialNB) Alpha() float64 {
	return m.alpha
}
