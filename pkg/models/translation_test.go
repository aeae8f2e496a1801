package models

import "testing"

func TestNewModelResult_Success(t *testing.T) {
	r := NewModelResult("some answer", nil)
	if !r.Succeeded() {
		t.Fatalf("expected success, got %+v", r)
	}
	if r.Answer != "some answer" || r.Error != "" {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestNewModelResult_Failure(t *testing.T) {
	r := NewModelResult("", errTest)
	if r.Succeeded() {
		t.Fatalf("expected failure, got %+v", r)
	}
	if r.Answer != "" || r.Error != "boom" {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestTranslationFailure_NeverEmptyDescription(t *testing.T) {
	r := TranslationFailure("", "raw")
	if r.ErrorDescription == "" {
		t.Error("failure must carry a non-empty error description")
	}
	if r.SQL != "" {
		t.Errorf("failure must carry empty SQL, got %q", r.SQL)
	}
}

func TestTranslationSuccess_Invariants(t *testing.T) {
	r := TranslationSuccess("SELECT 1;", "raw text")
	if r.Status != StatusSuccess || r.SQL != "SELECT 1;" || r.ErrorDescription != "" {
		t.Errorf("unexpected result: %+v", r)
	}
	if r.RawResponse != "raw text" {
		t.Errorf("raw response not preserved: %q", r.RawResponse)
	}
}

type testError struct{}

func (testError) Error() string { return "boom" }

var errTest = testError{}
