package inpost

import (
	"regexp"
	"strings"
)

var (
	camelBoundary   = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	lowerToUpperRun = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// CamelToSnake converts a camelCase identifier to snake_case. Runs of
// consecutive capitals stay together ("userID" becomes "user_id").
func CamelToSnake(name string) string {
	s := camelBoundary.ReplaceAllString(name, "${1}_${2}")
	s = lowerToUpperRun.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// ConvertKeysToSnakeCase recursively rewrites mapping keys from camelCase
// to snake_case throughout nested maps and slices. Scalar values are
// returned untouched, so the conversion is idempotent on input that is
// already snake_case.
func ConvertKeysToSnakeCase(data any) any {
	switch v := data.(type) {
	case map[string]any:
		converted := make(map[string]any, len(v))
		for key, value := range v {
			converted[CamelToSnake(key)] = ConvertKeysToSnakeCase(value)
		}
		return converted
	case []any:
		converted := make([]any, len(v))
		for i, item := range v {
			converted[i] = ConvertKeysToSnakeCase(item)
		}
		return converted
	default:
		return data
	}
}
