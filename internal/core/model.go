package core

import (
	"time"
)

// Labels assignable to a message. Every labelled record carries exactly one of these.
const (
	LabelSpam = "spam"
	LabelHam  = "ham"
)

// Message represents an email message to classify
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
	Headers map[string][]string
}

// Text returns the flattened text the classifier operates on
func (m *Message) Text() string {
	if m.Subject == "" {
		return m.Body
	}
	return m.Subject + " " + m.Body
}

// ClassificationResult represents the result of classifying a message
type ClassificationResult struct {
	IsSpam       bool
	Score        float64
	Confidence   float64
	Explanation  string
	ClassifiedAt time.Time
	ModelUsed    string
	ProcessingID string
}

// CacheEntry is a cached classification keyed by message digest
type CacheEntry struct {
	TextDigest string
	IsSpam     bool
	Score      float32
	LastSeen   time.Time
	ExpiresAt  time.Time
}
