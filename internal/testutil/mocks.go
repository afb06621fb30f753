// Package testutil holds test doubles shared across package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/dshills/revsent/internal/analysis"
)

// MockClassifier is a mock implementation of analysis.Classifier for testing
type MockClassifier struct {
	ClassifyFunc func(ctx context.Context, req analysis.Request) ([]byte, error)

	mu          sync.Mutex
	CallCount   int
	LastRequest analysis.Request
}

func (m *MockClassifier) Classify(ctx context.Context, req analysis.Request) ([]byte, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastRequest = req
	m.mu.Unlock()

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, req)
	}

	// Default: a confident positive sentiment, or three nouns
	if req.Kind == analysis.KindNouns {
		return []byte(`[{"entity_group":"NOUN","word":"phone"},{"entity_group":"VERB","word":"works"},{"entity_group":"NOUN","word":"battery"},{"entity_group":"PROPN","word":"Samsung"}]`), nil
	}
	return []byte(`[[{"label":"POSITIVE","score":0.93},{"label":"NEGATIVE","score":0.07}]]`), nil
}

// Calls returns the number of Classify calls so far.
func (m *MockClassifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// Payload returns a ClassifyFunc that always answers with body.
func Payload(body string) func(context.Context, analysis.Request) ([]byte, error) {
	return func(context.Context, analysis.Request) ([]byte, error) {
		return []byte(body), nil
	}
}

// Failure returns a ClassifyFunc that always fails with err.
func Failure(err error) func(context.Context, analysis.Request) ([]byte, error) {
	return func(context.Context, analysis.Request) ([]byte, error) {
		return nil, err
	}
}
