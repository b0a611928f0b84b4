package tools

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Pagination defaults applied when the caller omits the corresponding
// arguments. maxResults is clamped to [1, 100]; startAt to >= 0.
const (
	DefaultMaxResults = 50
	MinMaxResults     = 1
	MaxMaxResults     = 100
)

// requireArgs checks that every required key is present with a non-empty
// value. All missing keys are reported in a single error so the caller can
// fix the invocation in one round trip.
func requireArgs(args map[string]any, required ...string) error {
	var missing []string
	for _, key := range required {
		value, ok := args[key]
		if !ok || value == nil {
			missing = append(missing, key)
			continue
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrMissingArguments, strings.Join(missing, ", "))
	}
	return nil
}

// stringArg returns the argument as a string. JSON numbers are formatted
// rather than rejected because MCP clients routinely send numeric-looking
// identifiers (transition ids) as numbers.
func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// intArg returns the argument as an int, or fallback when absent or not
// numeric. JSON decoding delivers numbers as float64.
func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		return fallback
	default:
		return fallback
	}
}

// maxResultsArg applies the page-size default and clamps to [1, 100].
func maxResultsArg(args map[string]any) int {
	n := intArg(args, "maxResults", DefaultMaxResults)
	if n < MinMaxResults {
		return MinMaxResults
	}
	if n > MaxMaxResults {
		return MaxMaxResults
	}
	return n
}

// startAtArg applies the offset default and clamps to >= 0.
func startAtArg(args map[string]any) int {
	n := intArg(args, "startAt", 0)
	if n < 0 {
		return 0
	}
	return n
}
