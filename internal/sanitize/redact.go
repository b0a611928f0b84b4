package sanitize

import (
	"fmt"
	"strings"
)

// RedactionMarker replaces any value stored under a sensitive key.
const RedactionMarker = "***REDACTED***"

// DefaultRedactLength is the truncation cap applied by callers that log
// request or response excerpts.
const DefaultRedactLength = 200

// sensitiveKeywords is matched case-insensitively as a substring of map keys.
// Any key containing one of these has its value replaced before logging.
var sensitiveKeywords = []string{
	"password",
	"token",
	"api_key",
	"apikey",
	"secret",
	"authorization",
	"auth",
	"credential",
	"apitoken",
	"accesstoken",
	"refreshtoken",
	"privatekey",
	"apisecret",
	"clientsecret",
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Redact renders data for logging with sensitive fields replaced and the
// result truncated to maxLength. It recurses through nested maps and slices
// (the shapes produced by decoding JSON into any) and never fails; unknown
// types are formatted with their default representation.
func Redact(data any, maxLength int) string {
	result := redactValue(data)
	if maxLength > 0 && len(result) > maxLength {
		result = result[:maxLength] + "...[truncated]"
	}
	return result
}

func redactValue(data any) string {
	switch v := data.(type) {
	case map[string]any:
		parts := make([]string, 0, len(v))
		for key, value := range v {
			if isSensitiveKey(key) {
				parts = append(parts, fmt.Sprintf("%s: %s", key, RedactionMarker))
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s", key, redactValue(value)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, redactValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
