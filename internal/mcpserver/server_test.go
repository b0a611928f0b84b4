package mcpserver

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karolswdev/jiramcp/internal/tools"
)

type stubExecutor struct {
	result any
}

func (s *stubExecutor) Execute(ctx context.Context, method, endpoint string, query url.Values, body any) (any, error) {
	return s.result, nil
}

func TestToolDefinitionsCoverCatalogue(t *testing.T) {
	definitions := toolDefinitions()
	require.Len(t, definitions, len(tools.Names()), "every catalogue entry needs a schema")
	for _, name := range tools.Names() {
		def, ok := definitions[name]
		require.True(t, ok, "missing schema for %q", name)
		assert.Equal(t, string(name), def.Name, "schema name must match catalogue name")
		assert.NotEmpty(t, def.Description)
	}
}

func TestRequiredArgumentsDeclared(t *testing.T) {
	definitions := toolDefinitions()

	requiredByTool := map[tools.Name][]string{
		tools.SearchJira:          {"jql"},
		tools.ListJiraIssues:      {"projectKey"},
		tools.GetJiraIssue:        {"issueKey"},
		tools.GetJiraComments:     {"issueKey"},
		tools.GetJiraTransitions:  {"issueKey"},
		tools.GetJiraProjects:     nil,
		tools.CreateJiraIssue:     {"projectKey", "summary"},
		tools.AddJiraComment:      {"issueKey", "comment"},
		tools.UpdateJiraIssue:     {"issueKey"},
		tools.TransitionJiraIssue: {"issueKey", "transitionId"},
	}

	for name, required := range requiredByTool {
		def := definitions[name]
		assert.ElementsMatch(t, required, def.InputSchema.Required, "required args for %q", name)
	}
}

func TestNewRegistersWithoutPanicking(t *testing.T) {
	dispatcher := tools.NewDispatcher(&stubExecutor{result: map[string]any{}})
	srv := New(dispatcher, "test")
	require.NotNil(t, srv)
}
