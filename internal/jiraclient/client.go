// Package jiraclient owns the single authenticated HTTP session used for all
// Jira REST API traffic and the request executor that runs sanitized calls
// through it. The Client is an explicitly owned resource handle: it is
// constructed once at startup, shared by all concurrent tool invocations
// (the pooled transport is safe for concurrent use), and closed exactly once
// on shutdown by whoever created it.
package jiraclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/karolswdev/jiramcp/internal/config"
	"github.com/karolswdev/jiramcp/internal/sanitize"
)

const (
	apiBasePath = "/rest/api/3/"

	requestTimeout = 30 * time.Second
	connectTimeout = 10 * time.Second

	maxConns        = 10
	maxConnsPerHost = 5

	excerptLength = sanitize.DefaultRedactLength
)

// Client holds the shared, pooled, authenticated HTTP session for the
// process lifetime. All methods are safe for concurrent use; backpressure
// beyond the per-host connection limit is provided by the transport itself.
type Client struct {
	baseURL    *url.URL
	authHeader string
	httpClient *http.Client
	closed     chan struct{}
}

// New builds the shared session from validated configuration. The Basic
// credential header is computed once and reused for every request; it is
// never logged. HTTPS enforcement happens at config validation, not here,
// so tests can point the client at a local mock upstream.
func New(cfg *config.Config, apiToken string) (*Client, error) {
	if cfg.JiraURL == "" {
		return nil, config.ErrJiraURLMissing
	}
	baseURL, err := url.Parse(strings.TrimRight(cfg.JiraURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Jira URL: %w", err)
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(cfg.JiraUsername + ":" + apiToken))

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		MaxConnsPerHost:     maxConnsPerHost,
		MaxIdleConns:        maxConns,
		MaxIdleConnsPerHost: maxConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
	}

	log.Debug().
		Str("jira_url", config.RedactedURL(baseURL.String())).
		Int("max_conns", maxConns).
		Int("max_conns_per_host", maxConnsPerHost).
		Dur("request_timeout", requestTimeout).
		Msg("Created Jira HTTP session")

	return &Client{
		baseURL:    baseURL,
		authHeader: "Basic " + credentials,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
		closed: make(chan struct{}),
	}, nil
}

// Close releases the session's pooled connections. It is idempotent and safe
// to call from a defer on every shutdown path.
func (c *Client) Close() {
	select {
	case <-c.closed:
		return
	default:
		close(c.closed)
		c.httpClient.CloseIdleConnections()
		log.Debug().Msg("Closed Jira HTTP session")
	}
}

// Execute runs one request against the Jira REST API. The endpoint is
// sanitized before any network I/O; query parameters are percent-encoded by
// url.Values, never concatenated by hand; a non-nil body is JSON-encoded.
// 2xx responses decode to a JSON-compatible value (an empty map for empty
// bodies); failures surface as the package's typed errors. No retries are
// performed here.
func (c *Client) Execute(ctx context.Context, method, endpoint string, query url.Values, body any) (any, error) {
	cleanEndpoint, err := sanitize.Endpoint(endpoint)
	if err != nil {
		return nil, err
	}

	reqURL := *c.baseURL
	reqURL.Path = strings.TrimRight(reqURL.Path, "/") + apiBasePath + cleanEndpoint
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("endpoint", cleanEndpoint).Msg("Executing Jira API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyRequestError(method, cleanEndpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("endpoint", cleanEndpoint).Msg("Failed to read Jira response body")
		return nil, fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Excerpt:    errorExcerpt(respBody),
		}
		log.Error().
			Str("method", method).
			Str("endpoint", cleanEndpoint).
			Int("status", resp.StatusCode).
			Str("body", apiErr.Excerpt).
			Msg("Jira API request failed")
		return nil, apiErr
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		log.Debug().Str("method", method).Str("endpoint", cleanEndpoint).Int("status", resp.StatusCode).Msg("Jira API request succeeded with empty body")
		return map[string]any{}, nil
	}

	var payload any
	if err := json.Unmarshal(respBody, &payload); err != nil {
		excerpt := sanitize.Redact(string(respBody), excerptLength)
		log.Error().Err(err).Str("method", method).Str("endpoint", cleanEndpoint).Str("body", excerpt).Msg("Failed to parse Jira JSON response")
		return nil, fmt.Errorf("%w: %w (response: %s)", ErrDecode, err, excerpt)
	}

	log.Debug().Str("method", method).Str("endpoint", cleanEndpoint).Int("status", resp.StatusCode).Msg("Jira API request succeeded")
	return payload, nil
}

// classifyRequestError maps http.Client.Do failures to the package's typed
// errors: deadline/timeout conditions wrap ErrTimeout, everything else at
// the connection level wraps ErrTransport.
func classifyRequestError(method, endpoint string, err error) error {
	var netErr net.Error
	timedOut := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())

	if timedOut {
		log.Error().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("Jira API request timed out")
		return fmt.Errorf("%w after %s: %w", ErrTimeout, requestTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		// Cancellation is the caller's doing; propagate it unclassified so
		// it is not mistaken for a retryable transport fault.
		return err
	}
	log.Error().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("Jira API request failed at transport level")
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// errorExcerpt extracts a redacted, length-capped description from an error
// response body. Jira reports failures as "errorMessages" (array) or
// "errors" (object) depending on the endpoint; non-JSON bodies are redacted
// and truncated as-is.
func errorExcerpt(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return sanitize.Redact(string(body), excerptLength)
	}

	if msgs, ok := parsed["errorMessages"].([]any); ok && len(msgs) > 0 {
		parts := make([]string, 0, len(msgs))
		for _, msg := range msgs {
			parts = append(parts, sanitize.Redact(msg, excerptLength))
		}
		return strings.Join(parts, ", ")
	}
	if errs, ok := parsed["errors"]; ok {
		return sanitize.Redact(errs, excerptLength)
	}
	return sanitize.Redact(parsed, excerptLength)
}
