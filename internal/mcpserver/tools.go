package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/karolswdev/jiramcp/internal/tools"
)

// toolDefinitions declares the schema for every tool in the catalogue. The
// names must stay aligned with the tools package constants; registration
// panics on drift so a mismatch cannot ship.
func toolDefinitions() map[tools.Name]mcp.Tool {
	return map[tools.Name]mcp.Tool{
		tools.SearchJira: mcp.NewTool(string(tools.SearchJira),
			mcp.WithDescription("Search Jira issues using a JQL query"),
			mcp.WithString("jql",
				mcp.Required(),
				mcp.Description("JQL query string (e.g. 'project = DSP AND status = Open')"),
			),
			mcp.WithNumber("maxResults",
				mcp.Description("Maximum number of results to return (default: 50, max: 100)"),
				mcp.DefaultNumber(50),
			),
			mcp.WithNumber("startAt",
				mcp.Description("Index of the first result to return (default: 0)"),
				mcp.DefaultNumber(0),
			),
		),
		tools.ListJiraIssues: mcp.NewTool(string(tools.ListJiraIssues),
			mcp.WithDescription("List issues for a project, newest first"),
			mcp.WithString("projectKey",
				mcp.Required(),
				mcp.Description("Project key (e.g. 'DSP', 'PROJ')"),
			),
			mcp.WithNumber("maxResults",
				mcp.Description("Maximum number of results to return (default: 50, max: 100)"),
				mcp.DefaultNumber(50),
			),
		),
		tools.GetJiraIssue: mcp.NewTool(string(tools.GetJiraIssue),
			mcp.WithDescription("Get full details for a specific Jira issue"),
			mcp.WithString("issueKey",
				mcp.Required(),
				mcp.Description("Issue key (e.g. 'DSP-9050')"),
			),
		),
		tools.GetJiraComments: mcp.NewTool(string(tools.GetJiraComments),
			mcp.WithDescription("Get all comments for a Jira issue"),
			mcp.WithString("issueKey",
				mcp.Required(),
				mcp.Description("Issue key (e.g. 'DSP-9050')"),
			),
		),
		tools.GetJiraTransitions: mcp.NewTool(string(tools.GetJiraTransitions),
			mcp.WithDescription("Get the available workflow transitions for a Jira issue"),
			mcp.WithString("issueKey",
				mcp.Required(),
				mcp.Description("Issue key (e.g. 'DSP-9050')"),
			),
		),
		tools.GetJiraProjects: mcp.NewTool(string(tools.GetJiraProjects),
			mcp.WithDescription("List all Jira projects accessible to the authenticated user"),
		),
		tools.CreateJiraIssue: mcp.NewTool(string(tools.CreateJiraIssue),
			mcp.WithDescription("Create a new Jira issue"),
			mcp.WithString("projectKey",
				mcp.Required(),
				mcp.Description("Project key (e.g. 'DSP', 'PROJ')"),
			),
			mcp.WithString("summary",
				mcp.Required(),
				mcp.Description("Issue summary/title"),
			),
			mcp.WithString("description",
				mcp.Description("Issue description (plain text, converted to rich text)"),
			),
			mcp.WithString("issueType",
				mcp.Description("Issue type (default: 'Task')"),
				mcp.DefaultString("Task"),
			),
		),
		tools.AddJiraComment: mcp.NewTool(string(tools.AddJiraComment),
			mcp.WithDescription("Add a comment to a Jira issue"),
			mcp.WithString("issueKey",
				mcp.Required(),
				mcp.Description("Issue key (e.g. 'DSP-9050')"),
			),
			mcp.WithString("comment",
				mcp.Required(),
				mcp.Description("Comment text (plain text, converted to rich text)"),
			),
		),
		tools.UpdateJiraIssue: mcp.NewTool(string(tools.UpdateJiraIssue),
			mcp.WithDescription("Update the summary and/or description of a Jira issue"),
			mcp.WithString("issueKey",
				mcp.Required(),
				mcp.Description("Issue key (e.g. 'DSP-9050')"),
			),
			mcp.WithString("summary",
				mcp.Description("New summary (at least one of summary/description is required)"),
			),
			mcp.WithString("description",
				mcp.Description("New description (at least one of summary/description is required)"),
			),
		),
		tools.TransitionJiraIssue: mcp.NewTool(string(tools.TransitionJiraIssue),
			mcp.WithDescription("Transition a Jira issue to a new workflow status"),
			mcp.WithString("issueKey",
				mcp.Required(),
				mcp.Description("Issue key (e.g. 'DSP-9050')"),
			),
			mcp.WithString("transitionId",
				mcp.Required(),
				mcp.Description("Transition ID, as returned by get_jira_transitions"),
			),
		),
	}
}
