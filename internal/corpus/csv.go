package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/bayes-spam-classifier/internal/core"
)

// SaveCSV writes examples to path as a two-column CSV with a header row
func SaveCSV(path string, examples []Example) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"text", "label"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, ex := range examples {
		if err := w.Write([]string{ex.Text, ex.Label}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

// LoadCSV reads a dataset written by SaveCSV. Rows with an unknown label
// are rejected.
func LoadCSV(path string) ([]Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset file %s is empty", path)
	}

	// Skip the header row
	rows := records
	if records[0][0] == "text" && records[0][1] == "label" {
		rows = records[1:]
	}

	examples := make([]Example, 0, len(rows))
	for i, rec := range rows {
		label := rec[1]
		if label != core.LabelSpam && label != core.LabelHam {
			return nil, fmt.Errorf("row %d has unknown label %q", i+1, label)
		}
		examples = append(examples, Example{Text: rec[0], Label: label})
	}

	return examples, nil
}
