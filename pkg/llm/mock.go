package llm

import (
	"context"
)

// MockCompleter is a configurable mock for testing. Set CompleteFunc to
// control behavior; calls are counted for verification.
type MockCompleter struct {
	// CompleteFunc is called when Complete is invoked. If nil, Complete
	// returns an empty answer and nil error.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	// CompleteCalls counts invocations.
	CompleteCalls int

	// LastPrompt records the most recent prompt for assertions.
	LastPrompt string
}

// Complete implements Completer.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.CompleteCalls++
	m.LastPrompt = prompt
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", nil
}

// Ensure MockCompleter implements Completer at compile time.
var _ Completer = (*MockCompleter)(nil)
