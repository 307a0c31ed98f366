package di

import (
	"flag"
	"strings"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/bayes-spam-classifier/internal/config"
	"github.com/mikey/bayes-spam-classifier/internal/core"
	"github.com/mikey/bayes-spam-classifier/internal/factory"
	"github.com/mikey/bayes-spam-classifier/internal/logging"
	"github.com/mikey/bayes-spam-classifier/internal/textproc"
	"github.com/mikey/bayes-spam-classifier/internal/whitelist"
)

// CLIFlags contains all command line flags for the detector CLI
type CLIFlags struct {
	// Model flags
	ModelPath string

	// Spam detection flags
	SpamThreshold    float64
	WhitelistDomains string

	// Cache flags
	CacheEnabled bool
	CacheType    string

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Model flags
	flag.StringVar(&flags.ModelPath, "model", "/data/spam_model.json", "Path to the trained model file")

	// Spam detection flags
	flag.Float64Var(&flags.SpamThreshold, "threshold", 0.5, "Posterior threshold for spam detection")
	flag.StringVar(&flags.WhitelistDomains, "whitelist", "", "Comma-separated list of whitelisted domains")

	// Cache flags
	flag.BoolVar(&flags.CacheEnabled, "cache", true, "Enable the prediction cache")
	flag.StringVar(&flags.CacheType, "cache-type", "memory", "Prediction cache backend (memory, sqlite, mysql)")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input email file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container
// for the detector CLI
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTokenizerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}

	// Register tokenizer
	if err := container.Provide(func(f *factory.TokenizerFactory) *textproc.Tokenizer {
		return f.CreateTokenizer()
	}); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register cache repository
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register cache TTL and enabled flag
	if err := container.Provide(func(f *factory.CacheFactory) (time.Duration, error) {
		return f.GetCacheTTL()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) bool {
		return f.IsCacheEnabled()
	}); err != nil {
		return nil, err
	}

	// Register spam threshold
	if err := container.Provide(func(cfg *config.Config) float64 {
		return cfg.GetFloat64("spam.threshold")
	}); err != nil {
		return nil, err
	}

	// Register whitelist checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *whitelist.Checker {
		return whitelist.NewChecker(cfg.GetStringSlice("spam.whitelisted_domains"), logger)
	}); err != nil {
		return nil, err
	}

	// Register classifier service
	if err := container.Provide(core.NewClassifierService); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set classifier configuration
	v.Set("classifier.type", "naive_bayes")
	v.Set("model.path", flags.ModelPath)

	// Set spam threshold
	v.Set("spam.threshold", flags.SpamThreshold)

	// Set cache configuration
	v.Set("cache.enabled", flags.CacheEnabled)
	v.Set("cache.type", flags.CacheType)

	// Set whitelisted domains
	if flags.WhitelistDomains != "" {
		domains := strings.Split(flags.WhitelistDomains, ",")
		for i, domain := range domains {
			domains[i] = strings.TrimSpace(domain)
		}
		v.Set("spam.whitelisted_domains", domains)
	} else {
		v.Set("spam.whitelisted_domains", []string{})
	}

	return config.NewFromViper(v)
}
