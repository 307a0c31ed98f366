package factory

import (
	"github.com/mikey/bayes-spam-classifier/internal/config"
	"github.com/mikey/bayes-spam-classifier/internal/textproc"
	"go.uber.org/zap"
)

// TokenizerFactory creates tokenizers from configuration
type TokenizerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTokenizerFactory creates a new TokenizerFactory
func NewTokenizerFactory(cfg *config.Config, logger *zap.Logger) *TokenizerFactory {
	return &TokenizerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTokenizer creates a new Tokenizer
func (f *TokenizerFactory) CreateTokenizer() *textproc.Tokenizer {
	vecCfg := f.cfg.GetVectorizer()
	return textproc.NewTokenizer(
		vecCfg.Lowercase,
		vecCfg.StripAccents,
		vecCfg.StopWords,
		vecCfg.MinTokenLength,
		f.logger,
	)
}
