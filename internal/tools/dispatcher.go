// Package tools maps tool names to handlers over the Jira API. Every handler
// follows the same shape: check required arguments (reporting all missing
// keys at once), sanitize each present argument, apply defaults, convert
// free-text bodies to ADF where Jira expects rich text, and execute the
// request through the shared session. Handlers never swallow errors; typed
// failures propagate to the caller unchanged.
package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/karolswdev/jiramcp/internal/adf"
	"github.com/karolswdev/jiramcp/internal/sanitize"
)

// Name identifies one tool in the closed catalogue.
type Name string

// The tool catalogue. Dispatch resolves these through an explicit switch, so
// an unregistered name can only ever hit the UnknownTool arm.
const (
	SearchJira          Name = "search_jira"
	ListJiraIssues      Name = "list_jira_issues"
	GetJiraIssue        Name = "get_jira_issue"
	GetJiraComments     Name = "get_jira_comments"
	GetJiraTransitions  Name = "get_jira_transitions"
	GetJiraProjects     Name = "get_jira_projects"
	CreateJiraIssue     Name = "create_jira_issue"
	AddJiraComment      Name = "add_jira_comment"
	UpdateJiraIssue     Name = "update_jira_issue"
	TransitionJiraIssue Name = "transition_jira_issue"
)

// Names lists the full catalogue in registration order.
func Names() []Name {
	return []Name{
		SearchJira,
		ListJiraIssues,
		GetJiraIssue,
		GetJiraComments,
		GetJiraTransitions,
		GetJiraProjects,
		CreateJiraIssue,
		AddJiraComment,
		UpdateJiraIssue,
		TransitionJiraIssue,
	}
}

// standardIssueFields is the default field set returned by search queries;
// enough to be useful without overwhelming the response.
var standardIssueFields = "summary,status,assignee,priority,created,updated,description"

// Executor runs one sanitized request against the Jira API. Satisfied by
// *jiraclient.Client; tests substitute a fake.
type Executor interface {
	Execute(ctx context.Context, method, endpoint string, query url.Values, body any) (any, error)
}

// Dispatcher routes tool invocations to their handlers through the shared
// session handle it was constructed with.
type Dispatcher struct {
	exec Executor
}

// NewDispatcher returns a Dispatcher executing requests through exec.
func NewDispatcher(exec Executor) *Dispatcher {
	return &Dispatcher{exec: exec}
}

// Dispatch resolves name against the tool catalogue and runs the matching
// handler. Unknown names fail with ErrUnknownTool before anything else
// happens.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	log.Debug().Str("tool", name).Msg("Dispatching tool invocation")

	var (
		result any
		err    error
	)
	switch Name(name) {
	case SearchJira:
		result, err = d.searchJira(ctx, args)
	case ListJiraIssues:
		result, err = d.listJiraIssues(ctx, args)
	case GetJiraIssue:
		result, err = d.getJiraIssue(ctx, args)
	case GetJiraComments:
		result, err = d.getJiraComments(ctx, args)
	case GetJiraTransitions:
		result, err = d.getJiraTransitions(ctx, args)
	case GetJiraProjects:
		result, err = d.getJiraProjects(ctx)
	case CreateJiraIssue:
		result, err = d.createJiraIssue(ctx, args)
	case AddJiraComment:
		result, err = d.addJiraComment(ctx, args)
	case UpdateJiraIssue:
		result, err = d.updateJiraIssue(ctx, args)
	case TransitionJiraIssue:
		result, err = d.transitionJiraIssue(ctx, args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	if err != nil {
		log.Error().Err(err).Str("tool", name).Msg("Tool invocation failed")
		return nil, err
	}
	log.Debug().Str("tool", name).Msg("Tool invocation succeeded")
	return result, nil
}

func (d *Dispatcher) searchJira(ctx context.Context, args map[string]any) (any, error) {
	if err := requireArgs(args, "jql"); err != nil {
		return nil, err
	}
	jql, err := sanitize.JQL(stringArg(args, "jql"))
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("jql", jql)
	query.Set("maxResults", strconv.Itoa(maxResultsArg(args)))
	query.Set("startAt", strconv.Itoa(startAtArg(args)))
	query.Set("fields", standardIssueFields)
	return d.exec.Execute(ctx, http.MethodGet, "search/jql", query, nil)
}

func (d *Dispatcher) listJiraIssues(ctx context.Context, args map[string]any) (any, error) {
	if err := requireArgs(args, "projectKey"); err != nil {
		return nil, err
	}
	projectKey, err := sanitize.ProjectKey(stringArg(args, "projectKey"))
	if err != nil {
		return nil, err
	}

	// The JQL is assembled from the validated key only; nothing
	// caller-controlled is interpolated raw.
	query := url.Values{}
	query.Set("jql", fmt.Sprintf("project = %s ORDER BY created DESC", projectKey))
	query.Set("maxResults", strconv.Itoa(maxResultsArg(args)))
	query.Set("fields", standardIssueFields)
	return d.exec.Execute(ctx, http.MethodGet, "search/jql", query, nil)
}

func (d *Dispatcher) getJiraIssue(ctx context.Context, args map[string]any) (any, error) {
	issueKey, err := requiredIssueKey(args)
	if err != nil {
		return nil, err
	}
	return d.exec.Execute(ctx, http.MethodGet, "issue/"+issueKey, nil, nil)
}

func (d *Dispatcher) getJiraComments(ctx context.Context, args map[string]any) (any, error) {
	issueKey, err := requiredIssueKey(args)
	if err != nil {
		return nil, err
	}
	return d.exec.Execute(ctx, http.MethodGet, "issue/"+issueKey+"/comment", nil, nil)
}

func (d *Dispatcher) getJiraTransitions(ctx context.Context, args map[string]any) (any, error) {
	issueKey, err := requiredIssueKey(args)
	if err != nil {
		return nil, err
	}
	return d.exec.Execute(ctx, http.MethodGet, "issue/"+issueKey+"/transitions", nil, nil)
}

func (d *Dispatcher) getJiraProjects(ctx context.Context) (any, error) {
	return d.exec.Execute(ctx, http.MethodGet, "project", nil, nil)
}

func (d *Dispatcher) createJiraIssue(ctx context.Context, args map[string]any) (any, error) {
	if err := requireArgs(args, "projectKey", "summary"); err != nil {
		return nil, err
	}
	projectKey, err := sanitize.ProjectKey(stringArg(args, "projectKey"))
	if err != nil {
		return nil, err
	}
	summary, err := sanitize.Text("summary", stringArg(args, "summary"))
	if err != nil {
		return nil, err
	}
	issueType := stringArg(args, "issueType")
	if issueType == "" {
		issueType = "Task"
	}

	fields := map[string]any{
		"project":   map[string]any{"key": projectKey},
		"summary":   summary,
		"issuetype": map[string]any{"name": issueType},
	}
	if raw := stringArg(args, "description"); raw != "" {
		description, err := sanitize.Text("description", raw)
		if err != nil {
			return nil, err
		}
		fields["description"] = adf.FromText(description)
	}

	log.Info().Str("project", projectKey).Msg("Creating issue")
	return d.exec.Execute(ctx, http.MethodPost, "issue", nil, map[string]any{"fields": fields})
}

func (d *Dispatcher) addJiraComment(ctx context.Context, args map[string]any) (any, error) {
	if err := requireArgs(args, "issueKey", "comment"); err != nil {
		return nil, err
	}
	issueKey, err := sanitize.IssueKey(stringArg(args, "issueKey"))
	if err != nil {
		return nil, err
	}
	comment, err := sanitize.Text("comment", stringArg(args, "comment"))
	if err != nil {
		return nil, err
	}

	log.Info().Str("issue", issueKey).Msg("Adding comment")
	body := map[string]any{"body": adf.FromText(comment)}
	return d.exec.Execute(ctx, http.MethodPost, "issue/"+issueKey+"/comment", nil, body)
}

func (d *Dispatcher) updateJiraIssue(ctx context.Context, args map[string]any) (any, error) {
	issueKey, err := requiredIssueKey(args)
	if err != nil {
		return nil, err
	}

	updateFields := map[string]any{}
	if raw, ok := args["summary"]; ok && raw != nil {
		summary, err := sanitize.Text("summary", stringArg(args, "summary"))
		if err != nil {
			return nil, err
		}
		updateFields["summary"] = summary
	}
	if raw, ok := args["description"]; ok && raw != nil {
		description, err := sanitize.Text("description", stringArg(args, "description"))
		if err != nil {
			return nil, err
		}
		updateFields["description"] = adf.FromText(description)
	}
	if len(updateFields) == 0 {
		return nil, fmt.Errorf("%w: summary or description", ErrMissingArguments)
	}

	log.Info().Str("issue", issueKey).Msg("Updating issue")
	if _, err := d.exec.Execute(ctx, http.MethodPut, "issue/"+issueKey, nil, map[string]any{"fields": updateFields}); err != nil {
		return nil, err
	}
	return map[string]any{"message": fmt.Sprintf("Issue %s updated successfully", issueKey)}, nil
}

func (d *Dispatcher) transitionJiraIssue(ctx context.Context, args map[string]any) (any, error) {
	if err := requireArgs(args, "issueKey", "transitionId"); err != nil {
		return nil, err
	}
	issueKey, err := sanitize.IssueKey(stringArg(args, "issueKey"))
	if err != nil {
		return nil, err
	}
	transitionID, err := sanitize.TransitionID(stringArg(args, "transitionId"))
	if err != nil {
		return nil, err
	}

	log.Info().Str("issue", issueKey).Str("transition", transitionID).Msg("Transitioning issue")
	body := map[string]any{"transition": map[string]any{"id": transitionID}}
	if _, err := d.exec.Execute(ctx, http.MethodPost, "issue/"+issueKey+"/transitions", nil, body); err != nil {
		return nil, err
	}
	return map[string]any{"message": fmt.Sprintf("Issue %s transitioned successfully", issueKey)}, nil
}

// requiredIssueKey is the shared precondition for the issueKey-only tools.
func requiredIssueKey(args map[string]any) (string, error) {
	if err := requireArgs(args, "issueKey"); err != nil {
		return "", err
	}
	return sanitize.IssueKey(stringArg(args, "issueKey"))
}
