// Package jsonpath extracts single values from JSON documents using gjson
// path expressions (for example "user.name" or "items.0.id").
package jsonpath

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Extract returns the value at path within document as a string. A missing
// path or empty input is an error; JSON null extracts as "null".
func Extract(document, path string) (string, error) {
	if document == "" {
		return "", fmt.Errorf("empty JSON document")
	}
	if path == "" {
		return "", fmt.Errorf("empty path expression")
	}

	result := gjson.Get(document, path)
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// ExtractValue encodes an already-decoded value back to JSON and extracts
// path from it.
func ExtractValue(value any, path string) (string, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("cannot encode value: %w", err)
	}
	return Extract(string(encoded), path)
}
