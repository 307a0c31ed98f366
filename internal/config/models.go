package config

// CorpusConfig represents the configuration for the training corpus
type CorpusConfig struct {
	CSVPath   string
	TestRatio float64
	SplitSeed int64
}

// VectorizerConfig represents the configuration for the TF-IDF vectorizer
type VectorizerConfig struct {
	Lowercase      bool
	StripAccents   bool
	StopWords      []string
	MinTokenLength int
}

// ClassifierConfig represents the configuration for the classifier
type ClassifierConfig struct {
	Type  string
	Alpha float64
}

// ModelConfig represents the configuration for model persistence
type ModelConfig struct {
	Path string
}

// GetCorpus returns the corpus configuration
func (c *Config) GetCorpus() CorpusConfig {
	return CorpusConfig{
		CSVPath:   c.GetString("corpus.csv_path"),
		TestRatio: c.GetFloat64("corpus.test_ratio"),
		SplitSeed: c.GetInt64("corpus.split_seed"),
	}
}

// GetVectorizer returns the vectorizer configuration
func (c *Config) GetVectorizer() VectorizerConfig {
	return VectorizerConfig{
		Lowercase:      c.GetBool("vectorizer.lowercase"),
		StripAccents:   c.GetBool("vectorizer.strip_accents"),
		StopWords:      c.GetStringSlice("vectorizer.stop_words"),
		MinTokenLength: c.GetInt("vectorizer.min_token_length"),
	}
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	return ClassifierConfig{
		Type:  c.GetString("classifier.type"),
		Alpha: c.GetFloat64("classifier.alpha"),
	}
}

// GetModel returns the model persistence configuration
func (c *Config) GetModel() ModelConfig {
	return ModelConfig{
		Path: c.GetString("model.path"),
	}
}
