// Package llm provides completion-endpoint clients for the translation
// pipeline.
package llm

import (
	"context"
)

// Completer is the interface all completion backends implement. Complete
// sends the combined prompt and returns the model's answer text verbatim,
// untrimmed. Failures are returned as *Error with a classification.
// Use this interface for dependency injection to enable mocking in tests.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
