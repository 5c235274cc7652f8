package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	jsonFencePattern    = regexp.MustCompile("(?s)```json[ \\t]*\\r?\\n?(.*?)```")
	plainFencePattern   = regexp.MustCompile("(?s)```[ \\t]*\\r?\\n(.*?)```")
	objectSpanPattern   = regexp.MustCompile(`(?s)\{.*\}`)
	residualFenceMarker = regexp.MustCompile("```(?:json)?")
)

// findJSONCandidate picks the text to parse, first match wins: a ```json
// fenced block, any untagged fenced block, then the outermost {...} span.
func findJSONCandidate(text string) (string, bool) {
	if m := jsonFencePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := plainFencePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := objectSpanPattern.FindString(text); m != "" {
		return m, true
	}
	return "", false
}

func extractCandidate(text string) ([]byte, error) {
	candidate, ok := findJSONCandidate(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON candidate in %d bytes", ErrExtractionFailed, len(text))
	}
	candidate = strings.TrimSpace(residualFenceMarker.ReplaceAllString(candidate, ""))
	if !strings.HasPrefix(candidate, "{") {
		return nil, fmt.Errorf("%w: candidate is not an object", ErrExtractionFailed)
	}
	return []byte(candidate), nil
}

// ExtractJSON returns the JSON object embedded in raw generated text.
// Numbers are kept as json.Number. Any failure is ErrExtractionFailed.
func ExtractJSON(text string) (map[string]any, error) {
	candidate, err := extractCandidate(text)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(candidate))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after object", ErrExtractionFailed)
	}
	return obj, nil
}

// ExtractJSONInto decodes the embedded object straight into v. Shape
// mismatches are ErrExtractionFailed as well.
func ExtractJSONInto(text string, v any) error {
	candidate, err := extractCandidate(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(candidate, v); err != nil {
		return fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	return nil
}
