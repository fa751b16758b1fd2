package assembler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/JaimeStill/slide-lab/internal/deck"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```[A-Za-z0-9_-]*\\s*\\n?(.*?)\\n?```")

// StripFence removes a surrounding fenced code block, with or without a
// language tag, and trims whitespace. Unfenced input is returned trimmed.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	s = strings.TrimLeft(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}

// decodeObject turns raw generated text into the top-level JSON object's
// fields. Prose around a fenced block is tolerated.
func decodeObject(raw string) (map[string]json.RawMessage, error) {
	candidates := []string{StripFence(raw)}
	if m := jsonBlockRegex.FindStringSubmatch(raw); len(m) > 1 {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}

	var lastErr error
	for _, c := range candidates {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(c), &fields); err != nil {
			lastErr = err
			continue
		}
		if fields == nil {
			lastErr = fmt.Errorf("top-level value is null")
			continue
		}
		return fields, nil
	}

	return nil, fmt.Errorf("%w: %v", deck.ErrContentFormat, lastErr)
}

func requireString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return "", fmt.Errorf("%w: %s is required", deck.ErrSchemaValidation, key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s must be a string", deck.ErrSchemaValidation, key)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: %s must not be empty", deck.ErrSchemaValidation, key)
	}
	return s, nil
}

func optionalString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s must be a string", deck.ErrSchemaValidation, key)
	}
	return s, nil
}

// optionalText accepts a string or a list of strings. Lists are joined one
// item per line, which is how generated bullet points commonly arrive.
func optionalText(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err == nil {
		return strings.Join(items, "\n"), nil
	}

	return "", fmt.Errorf("%w: %s must be a string or list of strings", deck.ErrSchemaValidation, key)
}

func requireList(fields map[string]json.RawMessage, key string) ([]map[string]json.RawMessage, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return nil, fmt.Errorf("%w: %s is required", deck.ErrSchemaValidation, key)
	}
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s must be a list of objects", deck.ErrSchemaValidation, key)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s must not be empty", deck.ErrSchemaValidation, key)
	}
	return items, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// ParseFields decodes raw generated text into string fields. Every key in
// required must be present and non-empty. Keys in optional may be absent,
// a string, or a list of strings.
func ParseFields(raw string, required, optional []string) (map[string]string, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(required)+len(optional))
	for _, key := range required {
		v, err := optionalText(fields, key)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("%w: %s is required", deck.ErrSchemaValidation, key)
		}
		out[key] = v
	}
	for _, key := range optional {
		v, err := optionalText(fields, key)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}
