// Package decode converts loosely typed JSON payloads into typed values.
package decode

import "encoding/json"

// FromMap round-trips data through JSON into T. Keys T does not declare
// are ignored; values of the wrong JSON type fail.
func FromMap[T any](data map[string]any) (T, error) {
	var result T
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}
