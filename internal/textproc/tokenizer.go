package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer turns raw message text into the token stream the vectorizer consumes
type Tokenizer struct {
	lowercase      bool
	stripAccents   bool
	stopWords      map[string]struct{}
	minTokenLength int
	folder         transform.Transformer
	logger         *zap.Logger
}

// NewTokenizer creates a new Tokenizer
func NewTokenizer(lowercase bool, stripAccents bool, stopWords []string, minTokenLength int, logger *zap.Logger) *Tokenizer {
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	return &Tokenizer{
		lowercase:      lowercase,
		stripAccents:   stripAccents,
		stopWords:      stop,
		minTokenLength: minTokenLength,
		folder:         transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		logger:         logger,
	}
}

// Tokenize splits text into normalized tokens
func (t *Tokenizer) Tokenize(text string) []string {
	text = t.SanitizeUTF8(text)

	if t.stripAccents {
		if folded, _, err := transform.String(t.folder, text); err == nil {
			text = folded
		} else if t.logger != nil {
			t.logger.Debug("Accent folding failed, using raw text", zap.Error(err))
		}
	}

	if t.lowercase {
		text = strings.ToLower(text)
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if utf8.RuneCountInString(tok) < t.minTokenLength {
			continue
		}
		// Drop pure numbers, they carry no spam signal in a tiny corpus
		if !containsLetter(tok) {
			continue
		}
		if _, ok := t.stopWords[tok]; ok {
			continue
		}
		tokens = append(tokens, tok)
	}

	return tokens
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (t *Tokenizer) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	// Replace invalid UTF-8 sequences with nothing
	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				// Skip invalid UTF-8 sequences
				continue
			}
		}
		result = append(result, r)
	}

	if t.logger != nil {
		t.logger.Debug("Text sanitized",
			zap.Int("original_size", len(text)),
			zap.Int("sanitized_size", len(string(result))))
	}

	return string(result)
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
