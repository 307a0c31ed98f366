package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/bayes-spam-classifier/internal/adapters/modelstore"
	"github.com/mikey/bayes-spam-classifier/internal/config"
	"github.com/mikey/bayes-spam-classifier/internal/factory"
	"github.com/mikey/bayes-spam-classifier/internal/logging"
	"github.com/mikey/bayes-spam-classifier/internal/textproc"
	"github.com/mikey/bayes-spam-classifier/internal/trainer"
)

// BuildContainer creates and configures a dependency injection container
// for the training pipeline
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTokenizerFactory); err != nil {
		return nil, err
	}

	// Register tokenizer
	if err := container.Provide(func(f *factory.TokenizerFactory) *textproc.Tokenizer {
		return f.CreateTokenizer()
	}); err != nil {
		return nil, err
	}

	// Register model store
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *modelstore.FileStore {
		return modelstore.NewFileStore(cfg.GetModel().Path, logger)
	}); err != nil {
		return nil, err
	}

	// Register trainer
	if err := container.Provide(trainer.NewTrainer); err != nil {
		return nil, err
	}

	return container, nil
}
