package domain

import (
	"encoding/json"
	"strings"
)

// presentFields records which keys appeared in a JSON object, so that a
// partial update can tell an absent field from one explicitly set to null.
type presentFields map[string]bool

func decodePresent(data []byte) (presentFields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	present := make(presentFields, len(raw))
	for k := range raw {
		present[k] = true
	}
	return present, nil
}

// has reports whether key was sent. encoding/json binds object keys to
// struct fields case-insensitively, so "Height" counts as "height".
func (p presentFields) has(key string) bool {
	if p[key] {
		return true
	}
	for k := range p {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// setRequired copies a present value into changes. Null is rejected because
// the column is NOT NULL.
func setRequired[T any](changes map[string]interface{}, present presentFields, key string, v *T) error {
	if !present.has(key) {
		return nil
	}
	if v == nil {
		return NewValidationError(key, "may not be null")
	}
	changes[key] = *v
	return nil
}

func setNullable[T any](changes map[string]interface{}, present presentFields, key string, v *T) {
	if !present.has(key) {
		return
	}
	if v == nil {
		changes[key] = nil
		return
	}
	changes[key] = *v
}
