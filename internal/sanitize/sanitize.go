// Package sanitize validates and normalizes caller-supplied tool arguments
// before they are allowed anywhere near the Jira REST API. Structural fields
// (issue keys, project keys, endpoint paths) are checked against allow-list
// grammars; JQL uses a narrow deny-list so legitimate query syntax stays
// usable while shell/SQL metacharacter injection is blocked.
//
// All functions here are pure and synchronous: validation never touches the
// network and never logs.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxTextLength caps free-text fields (summaries, descriptions, comments).
const MaxTextLength = 32768

var (
	issueKeyPattern   = regexp.MustCompile(`^[A-Z][A-Z0-9]+-[0-9]+$`)
	projectKeyPattern = regexp.MustCompile(`^[A-Z0-9_]{2,10}$`)
	endpointPattern   = regexp.MustCompile(`^[a-zA-Z0-9/_-]+$`)
	transitionPattern = regexp.MustCompile(`^[0-9]+$`)
)

// IssueKey validates a Jira issue key such as "DSP-9050": one uppercase
// letter, further uppercase letters or digits, a hyphen, then digits. No
// case-folding is performed; lowercase keys are rejected.
func IssueKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: issueKey must be a non-empty string", ErrInvalidInput)
	}
	if !issueKeyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: issueKey %q does not match PROJECT-123 format", ErrInvalidInput, key)
	}
	return key, nil
}

// ProjectKey validates a Jira project key: 2-10 uppercase letters, digits or
// underscores.
func ProjectKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: projectKey must be a non-empty string", ErrInvalidInput)
	}
	if !projectKeyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: projectKey %q must be 2-10 uppercase letters, digits or underscores", ErrInvalidInput, key)
	}
	return key, nil
}

// Endpoint validates a relative API endpoint path. Only letters, digits,
// slashes, underscores and hyphens are allowed; ".." and leading "/" are
// rejected to prevent path traversal and absolute-path escapes.
func Endpoint(endpoint string) (string, error) {
	if endpoint == "" {
		return "", fmt.Errorf("%w: endpoint must be a non-empty string", ErrInvalidInput)
	}
	if !endpointPattern.MatchString(endpoint) {
		return "", fmt.Errorf("%w: endpoint %q contains disallowed characters", ErrInvalidInput, endpoint)
	}
	if strings.Contains(endpoint, "..") || strings.HasPrefix(endpoint, "/") {
		return "", fmt.Errorf("%w: endpoint %q is not a safe relative path", ErrInvalidInput, endpoint)
	}
	return endpoint, nil
}

// jqlForbiddenRunes are shell metacharacters that have no place in a JQL
// query and are common injection vectors.
var jqlForbiddenRunes = []rune{';', '|', '&', '$', '`', '\n', '\r', '\x00'}

// jqlForbiddenPatterns are SQL comment markers that could hide the tail of a
// query from review.
var jqlForbiddenPatterns = []string{"--", "/*", "*/"}

// JQL trims and validates a JQL query. Unicode letters and ordinary
// punctuation are unrestricted; only the forbidden metacharacter set and
// comment patterns are rejected, so end-user query syntax stays usable.
func JQL(jql string) (string, error) {
	trimmed := strings.TrimSpace(jql)
	if trimmed == "" {
		return "", fmt.Errorf("%w: jql must be a non-empty string", ErrInvalidInput)
	}
	for _, r := range jqlForbiddenRunes {
		if strings.ContainsRune(trimmed, r) {
			return "", fmt.Errorf("%w: jql contains forbidden character %q", ErrInvalidInput, r)
		}
	}
	for _, p := range jqlForbiddenPatterns {
		if strings.Contains(trimmed, p) {
			return "", fmt.Errorf("%w: jql contains forbidden pattern %q", ErrInvalidInput, p)
		}
	}
	return trimmed, nil
}

// Text trims and validates a free-text field (summary, description, comment
// body). The field name is used in error messages only.
func Text(field, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidInput, field)
	}
	if len(trimmed) > MaxTextLength {
		return "", fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrInvalidInput, field, MaxTextLength)
	}
	return trimmed, nil
}

// TransitionID validates a workflow transition identifier: a non-empty string
// of digits as returned by the transitions endpoint.
func TransitionID(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: transitionId must be a non-empty string", ErrInvalidInput)
	}
	if !transitionPattern.MatchString(id) {
		return "", fmt.Errorf("%w: transitionId %q must be numeric", ErrInvalidInput, id)
	}
	return id, nil
}
