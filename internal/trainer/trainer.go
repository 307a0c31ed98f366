package trainer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/bayes-spam-classifier/internal/adapters/bayes"
	"github.com/mikey/bayes-spam-classifier/internal/adapters/modelstore"
	"github.com/mikey/bayes-spam-classifier/internal/config"
	"github.com/mikey/bayes-spam-classifier/internal/core"
	"github.com/mikey/bayes-spam-classifier/internal/corpus"
	"github.com/mikey/bayes-spam-classifier/internal/evaluation"
	"github.com/mikey/bayes-spam-classifier/internal/textproc"
	"github.com/mikey/bayes-spam-classifier/internal/vectorizer"
)

// ModelVersion names the pipeline baked into saved model files
const ModelVersion = "multinomial-nb-tfidf/v1"

// demoMessages are classified after training to show the model on unseen text
var demoMessages = []core.Message{
	{From: "promo@deals.example.net", Subject: "Free prize waiting", Body: "You won a free prize, click the link to claim it now"},
	{From: "anna@work.example.com", Subject: "Monday meeting", Body: "Can we reschedule the meeting to Monday morning?"},
	{From: "offers@credit.example.org", Subject: "Instant approval", Body: "Cheap loans approved instantly, no credit check required"},
}

// Trainer runs the full train / evaluate / persist pipeline
type Trainer struct {
	cfg       *config.Config
	logger    *zap.Logger
	tokenizer *textproc.Tokenizer
	store     *modelstore.FileStore
}

// NewTrainer creates a new Trainer
func NewTrainer(cfg *config.Config, logger *zap.Logger, tokenizer *textproc.Tokenizer, store *modelstore.FileStore) *Trainer {
	return &Trainer{
		cfg:       cfg,
		logger:    logger,
		tokenizer: tokenizer,
		store:     store,
	}
}

// Run executes the pipeline: build corpus, optional CSV export, split,
// fit, evaluate, save, then classify the demo messages.
func (t *Trainer) Run(ctx context.Context) error {
	examples := corpus.Builtin()
	t.logger.Info("Built synthetic corpus", zap.Int("size", len(examples)))

	corpusCfg := t.cfg.GetCorpus()
	if corpusCfg.CSVPath != "" {
		if err := corpus.SaveCSV(corpusCfg.CSVPath, examples); err != nil {
			return fmt.Errorf("failed to export dataset: %w", err)
		}
		t.logger.Info("Exported dataset", zap.String("path", corpusCfg.CSVPath))
	}

	train, test, err := corpus.Split(examples, corpusCfg.TestRatio, corpusCfg.SplitSeed)
	if err != nil {
		return fmt.Errorf("failed to split corpus: %w", err)
	}
	t.logger.Info("Split corpus",
		zap.Int("train_size", len(train)),
		zap.Int("test_size", len(test)),
		zap.Int64("seed", corpusCfg.SplitSeed))

	// Fit the vectorizer on training documents only
	vec := vectorizer.NewTFIDF(t.tokenizer, t.logger)
	xTrain, err := vec.FitTransform(corpus.Texts(train))
	if err != nil {
		return fmt.Errorf("failed to fit vectorizer: %w", err)
	}

	classifierCfg := t.cfg.GetClassifier()
	nb, err := bayes.NewMultinomialNB(classifierCfg.Alpha)
	if err != nil {
		return fmt.Errorf("failed to create classifier: %w", err)
	}
	if err := nb.Fit(xTrain, corpus.Labels(train)); err != nil {
		return fmt.Errorf("failed to fit classifier: %w", err)
	}
	t.logger.Info("Fitted classifier",
		zap.Int("vocabulary_size", vec.VocabularySize()),
		zap.Float64("alpha", classifierCfg.Alpha),
		zap.Strings("classes", nb.Classes()))

	// Evaluate on the held out rows
	xTest, err := vec.Transform(corpus.Texts(test))
	if err != nil {
		return fmt.Errorf("failed to vectorize test set: %w", err)
	}
	predicted, err := nb.Predict(xTest)
	if err != nil {
		return fmt.Errorf("failed to predict on test set: %w", err)
	}
	report, err := evaluation.Evaluate(corpus.Labels(test), predicted)
	if err != nil {
		return fmt.Errorf("failed to evaluate: %w", err)
	}

	fmt.Printf("\n=== Evaluation (%d held out messages) ===\n", len(test))
	fmt.Print(report.String())

	// Persist the trained pipeline
	model := &modelstore.Model{
		Version:        ModelVersion,
		TrainedAt:      time.Now(),
		CorpusSize:     len(examples),
		Alpha:          classifierCfg.Alpha,
		Classes:        nb.Classes(),
		ClassLogPrior:  nb.ClassLogPrior(),
		FeatureLogProb: nb.FeatureLogProb(),
		Vocabulary:     vec.Vocabulary(),
		IDF:            vec.IDF(),
	}
	if err := t.store.Save(model); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}

	// Classify the demo messages with the freshly trained pipeline
	classifier, err := bayes.NewClassifier(vec, nb, t.tokenizer, ModelVersion, t.logger)
	if err != nil {
		return fmt.Errorf("failed to build classifier: %w", err)
	}

	fmt.Printf("\n=== Predictions on new messages ===\n")
	for _, msg := range demoMessages {
		result, err := classifier.ClassifyMessage(ctx, &msg)
		if err != nil {
			return fmt.Errorf("failed to classify demo message: %w", err)
		}
		fmt.Printf("\nFrom: %s\nText: %s\n", msg.From, msg.Text())
		fmt.Printf("Is spam: %t (score %.4f, confidence %.4f)\n", result.IsSpam, result.Score, result.Confidence)
		fmt.Printf("Explanation: %s\n", result.Explanation)
	}

	return nil
}
