// Package jsonutil tolerates the type drift LLMs exhibit when asked for
// JSON string fields.
package jsonutil

import (
	"encoding/json"
	"strconv"
)

// FlexibleStringValue converts a json.RawMessage to a string, accepting the
// numbers and booleans models sometimes emit where a string was requested.
// Returns an empty string for null, absent, or empty values.
func FlexibleStringValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		return strVal
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		if numVal == float64(int64(numVal)) {
			return strconv.FormatInt(int64(numVal), 10)
		}
		return strconv.FormatFloat(numVal, 'g', -1, 64)
	}

	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return strconv.FormatBool(boolVal)
	}

	return string(raw)
}
