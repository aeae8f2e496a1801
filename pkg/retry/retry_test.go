package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flaggedError declares its own retryability.
type flaggedError struct {
	retryable bool
}

func (e flaggedError) Error() string     { return "flagged" }
func (e flaggedError) IsRetryable() bool { return e.retryable }

func fastConfig() *Config {
	return &Config{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDoWithResult_SucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "answer", nil
	})
	if err != nil || got != "answer" {
		t.Fatalf("got (%q, %v)", got, err)
	}
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}

func TestDoWithResult_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	got, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		if calls < 3 {
			return "", flaggedError{retryable: true}
		}
		return "answer", nil
	})
	if err != nil || got != "answer" {
		t.Fatalf("got (%q, %v)", got, err)
	}
	if calls != 3 {
		t.Errorf("calls = %d", calls)
	}
}

func TestDoWithResult_PermanentFailureReturnsImmediately(t *testing.T) {
	calls := 0
	_, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "", flaggedError{retryable: false}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("permanent failure must not be retried, calls = %d", calls)
	}
}

func TestDoWithResult_ExhaustsRetries(t *testing.T) {
	calls := 0
	_, err := DoWithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "", flaggedError{retryable: true}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 4 { // initial attempt + 3 retries
		t.Errorf("calls = %d", calls)
	}
}

func TestDoWithResult_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &Config{MaxRetries: 5, InitialDelay: time.Hour, MaxDelay: time.Hour, Multiplier: 2}

	go cancel()
	_, err := DoWithResult(ctx, cfg, func() (string, error) {
		return "", flaggedError{retryable: true}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIsRetryable_PatternFallback(t *testing.T) {
	if !IsRetryable(errors.New("HTTP 503 service unavailable")) {
		t.Error("503 should match the transient patterns")
	}
	if IsRetryable(errors.New("invalid api key")) {
		t.Error("auth failures are not transient")
	}
	if IsRetryable(nil) {
		t.Error("nil is not retryable")
	}
}

func TestApplyJitter_Bounds(t *testing.T) {
	delay := 100 * time.Millisecond
	for i := 0; i < 50; i++ {
		jittered := applyJitter(delay, 0.1)
		if jittered < 90*time.Millisecond || jittered > 110*time.Millisecond {
			t.Fatalf("jittered delay %v outside +/-10%%", jittered)
		}
	}
	if applyJitter(delay, 0) != delay {
		t.Error("zero jitter factor must leave delay unchanged")
	}
}
