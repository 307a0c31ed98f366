package factory

import (
	"fmt"

	"github.com/mikey/bayes-spam-classifier/internal/adapters/bayes"
	"github.com/mikey/bayes-spam-classifier/internal/adapters/modelstore"
	"github.com/mikey/bayes-spam-classifier/internal/config"
	"github.com/mikey/bayes-spam-classifier/internal/core"
	"github.com/mikey/bayes-spam-classifier/internal/textproc"
	"github.com/mikey/bayes-spam-classifier/internal/vectorizer"
	"go.uber.org/zap"
)

// ClassifierFactory creates classifiers from a persisted model
type ClassifierFactory struct {
	cfg       *config.Config
	logger    *zap.Logger
	tokenizer *textproc.Tokenizer
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger, tokenizer *textproc.Tokenizer) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:       cfg,
		logger:    logger,
		tokenizer: tokenizer,
	}
}

// CreateClassifier creates a classifier based on the configuration
func (f *ClassifierFactory) CreateClassifier() (core.Classifier, error) {
	classifierCfg := f.cfg.GetClassifier()

	switch classifierCfg.Type {
	case "naive_bayes":
		return f.createNaiveBayes()
	default:
		return nil, fmt.Errorf("unsupported classifier type: %s", classifierCfg.Type)
	}
}

// createNaiveBayes restores the TF-IDF + Naive Bayes pipeline from the model file
func (f *ClassifierFactory) createNaiveBayes() (core.Classifier, error) {
	store := modelstore.NewFileStore(f.cfg.GetModel().Path, f.logger)

	model, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load trained model: %w", err)
	}

	vec, err := vectorizer.Restore(f.tokenizer, model.Vocabulary, model.IDF, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to restore vectorizer: %w", err)
	}

	nb, err := bayes.RestoreMultinomialNB(model.Alpha, model.Classes, model.ClassLogPrior, model.FeatureLogProb)
	if err != nil {
		return nil, fmt.Errorf("failed to restore classifier: %w", err)
	}

	f.logger.Info("Loaded trained model",
		zap.String("path", store.Path()),
		zap.String("version", model.Version),
		zap.Time("trained_at", model.TrainedAt),
		zap.Int("vocabulary_size", len(model.Vocabulary)))

	return bayes.NewClassifier(vec, nb, f.tokenizer, model.Version, f.logger)
}
