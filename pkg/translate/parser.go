// Package translate turns raw model answers into the pipeline's output
// contract. Model output is not guaranteed to be well-formed: it may be
// wrapped in markdown, surrounded by prose, missing fields, or carry the
// SQL outside any JSON. The parser degrades through a fixed sequence of
// extraction strategies and never fails on malformed input.
package translate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sqlbridge/engine/pkg/jsonutil"
	"github.com/sqlbridge/engine/pkg/models"
)

const (
	// noSQLMessage is used when the model returned the contract JSON but
	// no usable SQL and no explanation.
	noSQLMessage = "LLM couldn't generate SQL query"

	// unparseableMessage is used when no extraction strategy applied.
	unparseableMessage = "Failed to parse model response."
)

// fenceMarkers matches the markdown code-fence markup models like to wrap
// JSON in.
var fenceMarkers = regexp.MustCompile("```json\\s*|\\s*```")

// sqlStatementPattern matches the first SQL statement in free text, from a
// leading keyword to the first semicolon, spanning newlines.
var sqlStatementPattern = regexp.MustCompile(`(?is)(?:SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP).*?;`)

// Parser interprets raw model answers. Strategies are attempted in strict
// precedence order: de-fenced JSON first, then a direct SQL statement in
// the original text, then a terminal parse failure.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a Parser. If logger is nil, a no-op logger is used.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger.Named("parser")}
}

// Parse resolves a raw, non-empty model answer into a TranslationResult.
// RawResponse always carries the original answer text regardless of which
// strategy resolved it.
func (p *Parser) Parse(answer string) models.TranslationResult {
	cleaned := fenceMarkers.ReplaceAllString(answer, "")

	var parseErr error
	if candidate, found := extractJSONObject(cleaned); found {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
			// Keep the parse failure for the terminal message; the direct
			// SQL fallback still gets its chance first.
			parseErr = err
		} else {
			sqlRaw, hasSQL := fields["sql"]
			errRaw, hasErr := fields["error_description"]
			if hasSQL && hasErr {
				return p.decide(sqlRaw, errRaw, answer)
			}
			p.logger.Debug("JSON candidate lacks contract fields, trying SQL fallback")
		}
	}

	// Direct-statement fallback searches the original untouched answer, not
	// the de-fenced text.
	if match := sqlStatementPattern.FindString(answer); match != "" {
		return models.TranslationSuccess(strings.TrimSpace(match), answer)
	}

	if parseErr != nil {
		return models.TranslationFailure(
			fmt.Sprintf("Failed to parse model response: %v", parseErr), answer)
	}
	return models.TranslationFailure(unparseableMessage, answer)
}

// decide applies the field normalization and decision rule: success only
// when sql is non-empty and error_description is empty. A reply carrying
// both is a failure; the model's explanation wins as a signal of reported
// infeasibility.
func (p *Parser) decide(sqlRaw, errRaw json.RawMessage, answer string) models.TranslationResult {
	sqlQuery := strings.TrimSpace(jsonutil.FlexibleStringValue(sqlRaw))
	sqlQuery = stripOuterQuotes(sqlQuery)
	errDesc := strings.TrimSpace(jsonutil.FlexibleStringValue(errRaw))

	if sqlQuery != "" && errDesc == "" {
		return models.TranslationSuccess(sqlQuery, answer)
	}

	if errDesc == "" {
		errDesc = noSQLMessage
	}
	return models.TranslationFailure(errDesc, answer)
}

// stripOuterQuotes removes exactly one layer of wrapping straight double
// quotes, if present.
func stripOuterQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// extractJSONObject finds the first syntactically complete JSON object in
// s, at any nesting depth, skipping braces inside string literals. Returns
// false when no balanced object-shaped substring exists.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
