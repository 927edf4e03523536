package models

import (
	"errors"
	"strconv"
	"strings"
)

var ErrIncorrectPair = errors.New("argument must be name=value")

// Record is an untyped resource row, used for resources without a dedicated
// model.
type Record map[string]any

// ID returns the record identifier rendered as a string.
func (r Record) ID() string {
	switch v := r["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// PairsFromStrings parses "name=value" arguments. Repeated names collect their
// values into a slice so they are sent as repeated query keys.
func PairsFromStrings(s []string) (map[string]any, error) {
	out := make(map[string]any, len(s))
	for _, item := range s {
		name, value, ok := strings.Cut(item, "=")
		if !ok || name == "" {
			return nil, ErrIncorrectPair
		}
		switch prev := out[name].(type) {
		case nil:
			out[name] = value
		case string:
			out[name] = []string{prev, value}
		case []string:
			out[name] = append(prev, value)
		}
	}
	return out, nil
}
