// Package models defines the data contracts of the translation pipeline.
package models

// Status values used by ModelResult and TranslationResult.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// ModelResult is the normalized outcome of a single completion call.
// Answer is non-empty only when Status is StatusSuccess.
type ModelResult struct {
	Status string `json:"status"`
	Answer string `json:"answer"`
	Error  string `json:"error"`
}

// NewModelResult normalizes an (answer, error) pair from a completion
// backend into a ModelResult.
func NewModelResult(answer string, err error) ModelResult {
	if err != nil {
		return ModelResult{Status: StatusFailure, Error: err.Error()}
	}
	return ModelResult{Status: StatusSuccess, Answer: answer}
}

// Succeeded reports whether the completion call produced an answer.
func (r ModelResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// TranslationResult is the externally visible contract of the pipeline.
// Success implies a non-empty SQL and an empty ErrorDescription; failure
// implies an empty SQL and a non-empty ErrorDescription. RawResponse
// carries the model's original answer text whenever one was received.
type TranslationResult struct {
	Status           string `json:"status"`
	SQL              string `json:"sql"`
	ErrorDescription string `json:"error_description"`
	RawResponse      string `json:"raw_response"`
}

// TranslationSuccess builds a successful result carrying the given SQL.
func TranslationSuccess(sql, rawResponse string) TranslationResult {
	return TranslationResult{
		Status:      StatusSuccess,
		SQL:         sql,
		RawResponse: rawResponse,
	}
}

// TranslationFailure builds a failed result. A failure must always carry a
// human-readable description, so an empty one is replaced with a generic
// message rather than returned blank.
func TranslationFailure(errorDescription, rawResponse string) TranslationResult {
	if errorDescription == "" {
		errorDescription = "translation failed"
	}
	return TranslationResult{
		Status:           StatusFailure,
		ErrorDescription: errorDescription,
		RawResponse:      rawResponse,
	}
}
