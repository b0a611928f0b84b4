package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueKey(t *testing.T) {
	t.Run("ValidKeys", func(t *testing.T) {
		for _, key := range []string{"DSP-9050", "PROJ-123", "A1B2-456", "AB-1"} {
			got, err := IssueKey(key)
			require.NoError(t, err, "IssueKey(%q) should be valid", key)
			assert.Equal(t, key, got, "valid keys must round-trip unchanged")
		}
	})

	t.Run("InvalidKeys", func(t *testing.T) {
		invalid := []string{
			"",
			"dsp-9050",   // lowercase
			"DSP9050",    // missing hyphen
			"DSP-",       // no digits
			"DSP-12a",    // non-numeric suffix
			"DSP/9050",   // path separator
			"1AB-123",    // must start with a letter
			"A-123",      // prefix too short
			"DSP-9-0-50", // multiple hyphens
			"../issue",
		}
		for _, key := range invalid {
			_, err := IssueKey(key)
			require.Error(t, err, "IssueKey(%q) should be rejected", key)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

func TestProjectKey(t *testing.T) {
	t.Run("ValidKeys", func(t *testing.T) {
		for _, key := range []string{"DSP", "PROJ", "A123", "MY_PROJ", "AB"} {
			got, err := ProjectKey(key)
			require.NoError(t, err)
			assert.Equal(t, key, got)
		}
	})

	t.Run("InvalidKeys", func(t *testing.T) {
		invalid := []string{"", "dsp", "A", "PROJ!", "TOOLONGKEY1", "PR OJ", "PR-J"}
		for _, key := range invalid {
			_, err := ProjectKey(key)
			require.Error(t, err, "ProjectKey(%q) should be rejected", key)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

func TestEndpoint(t *testing.T) {
	t.Run("ValidEndpoints", func(t *testing.T) {
		for _, ep := range []string{"issue", "issue/DSP-9050", "issue/DSP-9050/transitions", "search/jql", "project"} {
			got, err := Endpoint(ep)
			require.NoError(t, err, "Endpoint(%q) should be valid", ep)
			assert.Equal(t, ep, got)
		}
	})

	t.Run("RejectsTraversalAndAbsolutePaths", func(t *testing.T) {
		invalid := []string{
			"",
			"/issue",            // absolute
			"issue/../secret",   // traversal
			"..",                // traversal
			"issue?expand=all",  // query metacharacters
			"issue DSP",         // whitespace
			"issue\x00",         // NUL
			"issue#fragment",    // fragment
			"https://evil.test", // scheme smuggling
		}
		for _, ep := range invalid {
			_, err := Endpoint(ep)
			require.Error(t, err, "Endpoint(%q) should be rejected", ep)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

func TestJQL(t *testing.T) {
	t.Run("ValidQueriesRoundTripTrimmed", func(t *testing.T) {
		valid := []string{
			"project = DSP AND status = Open",
			"  summary ~ \"großes Übel\" ORDER BY created DESC  ",
			"assignee = currentUser() AND priority > Medium",
		}
		for _, jql := range valid {
			got, err := JQL(jql)
			require.NoError(t, err, "JQL(%q) should be valid", jql)
			assert.Equal(t, strings.TrimSpace(jql), got)
		}
	})

	t.Run("ForbiddenCharacters", func(t *testing.T) {
		invalid := []string{
			"project = DSP; rm -rf /tmp",
			"project = DSP | cat /etc/passwd",
			"project = DSP & whoami",
			"project = `id`",
			"project = $HOME",
			"project = DSP\nORDER BY created",
			"project = DSP\x00",
		}
		for _, jql := range invalid {
			_, err := JQL(jql)
			require.Error(t, err, "JQL(%q) should be rejected", jql)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("ForbiddenCommentPatterns", func(t *testing.T) {
		for _, jql := range []string{"project = DSP -- hidden", "project = DSP /* x */"} {
			_, err := JQL(jql)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("EmptyOrWhitespace", func(t *testing.T) {
		for _, jql := range []string{"", "   ", "\t"} {
			_, err := JQL(jql)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

func TestText(t *testing.T) {
	t.Run("TrimsAndReturns", func(t *testing.T) {
		got, err := Text("summary", "  fix the login flow  ")
		require.NoError(t, err)
		assert.Equal(t, "fix the login flow", got)
	})

	t.Run("RejectsEmpty", func(t *testing.T) {
		_, err := Text("summary", "   ")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "summary", "error should name the field")
	})

	t.Run("RejectsOverLength", func(t *testing.T) {
		_, err := Text("comment", strings.Repeat("a", MaxTextLength+1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("AcceptsMaxLength", func(t *testing.T) {
		text := strings.Repeat("a", MaxTextLength)
		got, err := Text("comment", text)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	})
}

func TestTransitionID(t *testing.T) {
	t.Run("ValidIDs", func(t *testing.T) {
		for _, id := range []string{"3", "21", "10001"} {
			got, err := TransitionID(id)
			require.NoError(t, err)
			assert.Equal(t, id, got)
		}
	})

	t.Run("InvalidIDs", func(t *testing.T) {
		for _, id := range []string{"", "abc", "21a", "-3", "2 1"} {
			_, err := TransitionID(id)
			require.Error(t, err, "TransitionID(%q) should be rejected", id)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

func TestRedact(t *testing.T) {
	t.Run("RedactsSensitiveKeys", func(t *testing.T) {
		data := map[string]any{
			"user":     "admin",
			"apiToken": "secret123",
			"password": "hunter2",
		}
		out := Redact(data, 0)
		assert.NotContains(t, out, "secret123")
		assert.NotContains(t, out, "hunter2")
		assert.Contains(t, out, RedactionMarker)
		assert.Contains(t, out, "admin", "non-sensitive values are kept")
	})

	t.Run("RedactsNestedStructures", func(t *testing.T) {
		data := map[string]any{
			"request": map[string]any{
				"headers": map[string]any{"Authorization": "Basic abc123xyz"},
				"items":   []any{map[string]any{"clientSecret": "deep-secret"}},
			},
		}
		out := Redact(data, 0)
		assert.NotContains(t, out, "abc123xyz")
		assert.NotContains(t, out, "deep-secret")
	})

	t.Run("CaseInsensitiveKeyMatch", func(t *testing.T) {
		out := Redact(map[string]any{"API_TOKEN": "tok", "RefreshToken": "ref"}, 0)
		assert.NotContains(t, out, "tok")
		assert.NotContains(t, out, "ref")
	})

	t.Run("TruncatesLongOutput", func(t *testing.T) {
		out := Redact(strings.Repeat("x", 500), DefaultRedactLength)
		assert.Len(t, out, DefaultRedactLength+len("...[truncated]"))
		assert.True(t, strings.HasSuffix(out, "...[truncated]"))
	})

	t.Run("HandlesScalarsAndSlices", func(t *testing.T) {
		assert.Equal(t, "42", Redact(42, 0))
		assert.Equal(t, "[a, b]", Redact([]any{"a", "b"}, 0))
	})
}
