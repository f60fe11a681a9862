// Package formatting provides parsing utilities for model completion text.
package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrParseFailed is returned when no parseable JSON object can be
// extracted from completion content.
var ErrParseFailed = errors.New("failed to parse response")

// Parse extracts the first brace-delimited JSON object from content and
// unmarshals it into T. The scan runs from the first '{' to the last '}',
// which tolerates leading prose and markdown fencing around the object.
// Returns ErrParseFailed if no such substring exists or unmarshaling fails.
func Parse[T any](content string) (T, error) {
	var result T

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return result, fmt.Errorf("%w: no JSON object in content", ErrParseFailed)
	}

	if err := json.Unmarshal([]byte(content[start:end+1]), &result); err != nil {
		return result, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	return result, nil
}
