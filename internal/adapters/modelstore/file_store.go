package modelstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Model is the persisted form of a trained classification pipeline:
// the vectorizer state plus the Naive Bayes parameters.
type Model struct {
	Version        string         `json:"version"`
	TrainedAt      time.Time      `json:"trained_at"`
	CorpusSize     int            `json:"corpus_size"`
	Alpha          float64        `json:"alpha"`
	Classes        []string       `json:"classes"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`
	Vocabulary     map[string]int `json:"vocabulary"`
	IDF            []float64      `json:"idf"`
}

// Validate checks the persisted parameter shapes for consistency
func (m *Model) Validate() error {
	if len(m.Classes) == 0 {
		return fmt.Errorf("model has no classes")
	}
	if len(m.ClassLogPrior) != len(m.Classes) {
		return fmt.Errorf("model has %d classes but %d priors", len(m.Classes), len(m.ClassLogPrior))
	}
	if len(m.FeatureLogProb) != len(m.Classes) {
		return fmt.Errorf("model has %d classes but %d likelihood rows", len(m.Classes), len(m.FeatureLogProb))
	}
	if len(m.Vocabulary) != len(m.IDF) {
		return fmt.Errorf("model has %d vocabulary terms but %d idf weights", len(m.Vocabulary), len(m.IDF))
	}
	for c, row := range m.FeatureLogProb {
		if len(row) != len(m.Vocabulary) {
			return fmt.Errorf("likelihood row %d has %d features but vocabulary has %d terms", c, len(row), len(m.Vocabulary))
		}
	}
	return nil
}

// FileStore persists trained models as JSON files
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewFileStore creates a store writing to path
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Save writes the model atomically via a temp file rename
func (s *FileStore) Save(m *Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.Validate(); err != nil {
		return fmt.Errorf("refusing to save inconsistent model: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move model file into place: %w", err)
	}

	s.logger.Info("Saved trained model",
		zap.String("path", s.path),
		zap.Int("vocabulary_size", len(m.Vocabulary)),
		zap.Strings("classes", m.Classes))

	return nil
}

// Load reads and validates the model file
func (s *FileStore) Load() (*Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model file: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("model file %s is inconsistent: %w", s.path, err)
	}

	return &m, nil
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}
