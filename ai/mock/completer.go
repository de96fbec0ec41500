package mock

import (
	"context"

	"github.com/trangdata/askalex/ai"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, uses default deterministic behavior.
	CompleteFunc func(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error)

	callCount int
}

// NewMockCompleter creates a mock completer with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete returns a canned completion. The default echoes a fixed answer
// with token usage derived from the prompt length, so cost arithmetic in
// callers stays exercised.
func (m *MockCompleter) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	m.callCount++

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}

	model := req.Model
	if model == "" {
		model = "gpt-35-turbo"
	}

	return &ai.Completion{
		Text:             "This is a mock answer.",
		Model:            model,
		PromptTokens:     len(req.Prompt) / 4,
		CompletionTokens: 6,
	}, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockCompleter) Reset() {
	m.callCount = 0
	m.CompleteFunc = nil
}
