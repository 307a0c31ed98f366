package bayes

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/bayes-spam-classifier/internal/core"
	"github.com/mikey/bayes-spam-classifier/internal/textproc"
	"github.com/mikey/bayes-spam-classifier/internal/vectorizer"
)

// Classifier is an implementation of the core.Classifier interface backed by
// a fitted TF-IDF vectorizer and a multinomial Naive Bayes model.
type Classifier struct {
	vec       *vectorizer.TFIDF
	model     *MultinomialNB
	tokenizer *textproc.Tokenizer
	modelName string
	logger    *zap.Logger
}

// NewClassifier creates a classifier from fitted components
func NewClassifier(
	vec *vectorizer.TFIDF,
	model *MultinomialNB,
	tokenizer *textproc.Tokenizer,
	modelName string,
	logger *zap.Logger,
) (*Classifier, error) {
	spamIdx := -1
	for i, label := range model.Classes() {
		if label == core.LabelSpam {
			spamIdx = i
		}
	}
	if spamIdx < 0 {
		return nil, fmt.Errorf("model classes %v do not include %q", model.Classes(), core.LabelSpam)
	}

	return &Classifier{
		vec:       vec,
		model:     model,
		tokenizer: tokenizer,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// ClassifyMessage scores a message and reports how likely it is to be spam
func (c *Classifier) ClassifyMessage(ctx context.Context, msg *core.Message) (*core.ClassificationResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	text := msg.Text()
	x, err := c.vec.Transform([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize message: %w", err)
	}

	probs, err := c.model.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("failed to score message: %w", err)
	}

	spamIdx := c.classIndex(core.LabelSpam)
	score := probs.At(0, spamIdx)

	// Confidence is the margin of the winning posterior over a coin flip
	confidence := math.Abs(score-0.5) * 2

	result := &core.ClassificationResult{
		IsSpam:       score >= 0.5,
		Score:        score,
		Confidence:   confidence,
		Explanation:  c.explain(text, spamIdx),
		ClassifiedAt: time.Now(),
		ModelUsed:    c.modelName,
		ProcessingID: uuid.NewString(),
	}

	c.logger.Debug("Classified message",
		zap.String("sender", msg.From),
		zap.Float64("spam_score", score),
		zap.String("processing_id", result.ProcessingID))

	return result, nil
}

func (c *Classifier) classIndex(label string) int {
	for i, cl := range c.model.Classes() {
		if cl == label {
			return i
		}
	}
	return -1
}

// explain names the in-vocabulary tokens that pulled the posterior furthest
// toward the spam class
func (c *Classifier) explain(text string, spamIdx int) string {
	if len(c.model.Classes()) != 2 {
		return "Posterior over a degenerate class set"
	}
	hamIdx := 1 - spamIdx
	vocab := c.vec.Vocabulary()
	flp := c.model.FeatureLogProb()

	type weighted struct {
		token  string
		weight float64
	}

	seen := make(map[string]struct{})
	var terms []weighted
	for _, tok := range c.tokenizer.Tokenize(text) {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		j, ok := vocab[tok]
		if !ok {
			continue
		}
		terms = append(terms, weighted{token: tok, weight: flp[spamIdx][j] - flp[hamIdx][j]})
	}

	if len(terms) == 0 {
		return "No known vocabulary terms in message"
	}

	sort.Slice(terms, func(i, j int) bool { return terms[i].weight > terms[j].weight })

	top := make([]string, 0, 3)
	for _, t := range terms {
		if t.weight <= 0 || len(top) == 3 {
			break
		}
		top = append(top, t.token)
	}

	if len(top) == 0 {
		return "All known terms weigh toward ham"
	}
	return "Strongest spam indicators: " + strings.Join(top, ", ")
}
