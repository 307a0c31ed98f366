package vectorizer

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/mikey/bayes-spam-classifier/internal/textproc"
)

// ErrNotFitted is returned when Transform is called before Fit
var ErrNotFitted = errors.New("vectorizer has not been fitted")

// TFIDF converts documents into L2-normalized TF-IDF weight matrices.
// The vocabulary and document frequencies are learned by Fit and frozen
// afterwards; unseen terms map to zero columns.
type TFIDF struct {
	tokenizer *textproc.Tokenizer
	vocab     map[string]int
	terms     []string
	idf       []float64
	logger    *zap.Logger
}

// NewTFIDF creates a new unfitted TF-IDF vectorizer
func NewTFIDF(tokenizer *textproc.Tokenizer, logger *zap.Logger) *TFIDF {
	return &TFIDF{
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Restore rebuilds a fitted vectorizer from persisted state
func Restore(tokenizer *textproc.Tokenizer, vocab map[string]int, idf []float64, logger *zap.Logger) (*TFIDF, error) {
	if len(vocab) != len(idf) {
		return nil, fmt.Errorf("vocabulary size %d does not match idf size %d", len(vocab), len(idf))
	}

	terms := make([]string, len(vocab))
	for term, idx := range vocab {
		if idx < 0 || idx >= len(terms) {
			return nil, fmt.Errorf("vocabulary index %d for term %q out of range", idx, term)
		}
		if terms[idx] != "" {
			return nil, fmt.Errorf("vocabulary terms %q and %q share column %d", terms[idx], term, idx)
		}
		terms[idx] = term
	}

	return &TFIDF{
		tokenizer: tokenizer,
		vocab:     vocab,
		terms:     terms,
		idf:       idf,
		logger:    logger,
	}, nil
}

// Fit learns the vocabulary and inverse document frequencies from docs
func (v *TFIDF) Fit(docs []string) error {
	if len(docs) == 0 {
		return errors.New("cannot fit vectorizer on empty document set")
	}

	// Document frequency per term
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range v.tokenizer.Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	if len(df) == 0 {
		return errors.New("empty vocabulary: no terms survived tokenization")
	}

	// Sorted vocabulary keeps column order stable across runs
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		vocab[term] = i
		// Smoothed idf, matching the conventional TfidfVectorizer formula
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	v.vocab = vocab
	v.terms = terms
	v.idf = idf

	if v.logger != nil {
		v.logger.Debug("Fitted TF-IDF vectorizer",
			zap.Int("documents", len(docs)),
			zap.Int("vocabulary_size", len(terms)))
	}

	return nil
}

// Transform converts docs into a len(docs) x VocabularySize() TF-IDF matrix
func (v *TFIDF) Transform(docs []string) (*mat.Dense, error) {
	if v.vocab == nil {
		return nil, ErrNotFitted
	}

	x := mat.NewDense(len(docs), len(v.terms), nil)
	for i, doc := range docs {
		counts := make(map[int]float64)
		for _, tok := range v.tokenizer.Tokenize(doc) {
			if j, ok := v.vocab[tok]; ok {
				counts[j]++
			}
		}

		var sumSquares float64
		for j, tf := range counts {
			w := tf * v.idf[j]
			x.Set(i, j, w)
			sumSquares += w * w
		}

		// L2 normalization per row
		if sumSquares > 0 {
			norm := math.Sqrt(sumSquares)
			for j := range counts {
				x.Set(i, j, x.At(i, j)/norm)
			}
		}
	}

	return x, nil
}

// FitTransform fits the vectorizer and transforms docs in one pass
func (v *TFIDF) FitTransform(docs []string) (*mat.Dense, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// Vocabulary returns the term-to-column mapping
func (v *TFIDF) Vocabulary() map[string]int {
	return v.vocab
}

// VocabularySize returns the number of learned terms
func (v *TFIDF) VocabularySize() int {
	return len(v.terms)
}

// IDF returns the learned inverse document frequencies
func (v *TFIDF) IDF() []float64 {
	return v.idf
}
