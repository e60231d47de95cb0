package invorto

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.invorto.ai"

	defaultHTTPTimeout = 30 * time.Second
	maxErrorBodyBytes  = 512 << 10
)

// Client wraps HTTP access to the Invorto platform. All exported state is
// fixed at construction, so one instance is safe for concurrent use.
type Client struct {
	base     *url.URL
	http     *http.Client
	tenantID string
	log      *logrus.Logger
	retryMax time.Duration
	apiKey   string
}

// ClientOption customises the client behaviour.
type ClientOption func(*Client)

// WithBaseURL overrides the default API endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
			c.base = u
		}
	}
}

// WithTenant attaches the x-tenant-id header to every request.
func WithTenant(tenantID string) ClientOption {
	return func(c *Client) {
		c.tenantID = tenantID
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger enables request/response debug logging through the supplied logger.
func WithLogger(log *logrus.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRetry enables retrying of temporary failures (timeouts, 429, 5xx) with
// exponential backoff until maxElapsed has passed. Without this option every
// operation is attempted exactly once.
func WithRetry(maxElapsed time.Duration) ClientOption {
	return func(c *Client) {
		c.retryMax = maxElapsed
	}
}

// NewClient constructs a platform client using the supplied API key.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	base, err := url.Parse(DefaultBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	client := &Client{
		base:   base,
		apiKey: apiKey,
		log:    quiet,
		http: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	// Ensure the configured transport also injects credentials.
	if _, ok := client.http.Transport.(*authTransport); !ok {
		client.http.Transport = &authTransport{
			base:     client.http.Transport,
			token:    apiKey,
			tenantID: client.tenantID,
		}
	}

	return client, nil
}

// WithSession runs fn with a freshly constructed client and closes it on
// every exit path, including panics and early returns inside fn.
func WithSession(apiKey string, opts []ClientOption, fn func(*Client) error) error {
	client, err := NewClient(apiKey, opts...)
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

// Close releases idle transport connections. Safe to call more than once.
func (c *Client) Close() {
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
}

type authTransport struct {
	base     http.RoundTripper
	token    string
	tenantID string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt := t.base
	if rt == nil {
		rt = http.DefaultTransport
	}
	req2 := cloneRequest(req)
	req2.Header.Set("Authorization", "Bearer "+t.token)
	req2.Header.Set("Accept", "application/json")
	if t.tenantID != "" {
		req2.Header.Set("x-tenant-id", t.tenantID)
	}
	return rt.RoundTrip(req2)
}

func cloneRequest(r *http.Request) *http.Request {
	r2 := r.Clone(r.Context())
	if r.Body != nil {
		buf, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewBuffer(buf))
		r2.Body = io.NopCloser(bytes.NewBuffer(buf))
	}
	return r2
}

func (c *Client) buildURL(p string, query map[string]string) string {
	u := *c.base
	u.Path = path.Join(c.base.Path, p)
	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// invoke issues one HTTP exchange and returns the raw response body. A
// non-2xx status yields *APIError; failures below the HTTP layer, including
// a 2xx body that is not well-formed JSON, yield *NetworkError. Retries only
// happen when WithRetry was configured, and only for temporary failures.
func (c *Client) invoke(ctx context.Context, method, p string, query map[string]string, body any, expectJSON bool) ([]byte, error) {
	if c.retryMax <= 0 {
		return c.attempt(ctx, method, p, query, body, expectJSON)
	}
	return c.attemptWithRetry(ctx, method, p, query, body, expectJSON)
}

func (c *Client) attempt(ctx context.Context, method, p string, query map[string]string, body any, expectJSON bool) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(p, query), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	entry := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       p,
		"request_id": requestID,
	})
	entry.Debug("request")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Debug("request failed")
		return nil, &NetworkError{Op: fmt.Sprintf("call %s %s", method, p), Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	entry = entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		entry.Debug("request rejected")
		return nil, &APIError{
			Method: method,
			Path:   p,
			Status: resp.StatusCode,
			Body:   string(bytes.TrimSpace(payload)),
		}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: fmt.Sprintf("read %s %s response", method, p), Err: err}
	}
	if expectJSON && len(bytes.TrimSpace(payload)) > 0 && !json.Valid(payload) {
		return nil, &NetworkError{
			Op:  fmt.Sprintf("read %s %s response", method, p),
			Err: errors.New("malformed JSON body"),
		}
	}

	entry.Debug("response")
	return payload, nil
}

// Agent lifecycle.

// CreateAgent registers a new AI agent and returns the server's validated copy.
func (c *Client) CreateAgent(ctx context.Context, config AgentConfig) (*Agent, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	body, err := c.invoke(ctx, http.MethodPost, "/v1/agents", nil, config, true)
	if err != nil {
		return nil, err
	}
	return decodeAgent(body)
}

// GetAgent retrieves an agent by ID.
func (c *Client) GetAgent(ctx context.Context, agentID string) (*Agent, error) {
	body, err := c.invoke(ctx, http.MethodGet, "/v1/agents/"+agentID, nil, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeAgent(body)
}

// ListAgents returns a page of agents. A nil opts lists with defaults.
func (c *Client) ListAgents(ctx context.Context, opts *ListOptions) (*AgentPage, error) {
	options := NewListOptions()
	if opts != nil {
		options = *opts
	}
	body, err := c.invoke(ctx, http.MethodGet, "/v1/agents", options.queryParams(), nil, true)
	if err != nil {
		return nil, err
	}
	page, err := decodePage(body)
	if err != nil {
		return nil, err
	}
	agents := make([]Agent, 0, len(page.Data))
	for _, raw := range page.Data {
		agent, err := decodeAgent(raw)
		if err != nil {
			return nil, err
		}
		agents = append(agents, *agent)
	}
	return &AgentPage{Agents: agents, Pagination: page.Pagination}, nil
}

// UpdateAgent applies a partial patch; only the supplied fields are sent.
// An empty patch is forwarded as is, the server decides whether to accept it.
func (c *Client) UpdateAgent(ctx context.Context, agentID string, updates map[string]any) (*Agent, error) {
	if updates == nil {
		updates = map[string]any{}
	}
	body, err := c.invoke(ctx, http.MethodPatch, "/v1/agents/"+agentID, nil, updates, true)
	if err != nil {
		return nil, err
	}
	return decodeAgent(body)
}

// DeleteAgent removes an agent and returns the server's deletion result.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) (map[string]any, error) {
	body, err := c.invoke(ctx, http.MethodDelete, "/v1/agents/"+agentID, nil, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeObject(body)
}

// Call lifecycle.

// CreateCall starts a call and returns the raw acknowledgement. The server
// may still be provisioning the call, so the payload is not yet a full Call.
func (c *Client) CreateCall(ctx context.Context, opts CallOptions) (map[string]any, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	body, err := c.invoke(ctx, http.MethodPost, "/v1/calls", nil, opts, true)
	if err != nil {
		return nil, err
	}
	return decodeObject(body)
}

// GetCall retrieves a call by ID.
func (c *Client) GetCall(ctx context.Context, callID string) (*Call, error) {
	body, err := c.invoke(ctx, http.MethodGet, "/v1/calls/"+callID, nil, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeCall(body)
}

// ListCalls returns a page of calls. A nil opts lists with defaults.
func (c *Client) ListCalls(ctx context.Context, opts *CallListOptions) (*CallPage, error) {
	options := NewCallListOptions()
	if opts != nil {
		options = *opts
	}
	body, err := c.invoke(ctx, http.MethodGet, "/v1/calls", options.queryParams(), nil, true)
	if err != nil {
		return nil, err
	}
	page, err := decodePage(body)
	if err != nil {
		return nil, err
	}
	calls := make([]Call, 0, len(page.Data))
	for _, raw := range page.Data {
		call, err := decodeCall(raw)
		if err != nil {
			return nil, err
		}
		calls = append(calls, *call)
	}
	return &CallPage{Calls: calls, Pagination: page.Pagination}, nil
}

// UpdateCallStatus patches a call's status, with an optional metadata patch.
func (c *Client) UpdateCallStatus(ctx context.Context, callID string, status CallStatus, metadata map[string]any) (*Call, error) {
	patch := map[string]any{"status": status}
	if len(metadata) > 0 {
		patch["metadata"] = metadata
	}
	body, err := c.invoke(ctx, http.MethodPatch, "/v1/calls/"+callID+"/status", nil, patch, true)
	if err != nil {
		return nil, err
	}
	return decodeCall(body)
}

// GetCallTimeline returns a call's event timeline in server order. A call
// with no events yields an empty slice, not an error.
func (c *Client) GetCallTimeline(ctx context.Context, callID string) ([]TimelineEvent, error) {
	body, err := c.invoke(ctx, http.MethodGet, "/v1/calls/"+callID+"/timeline", nil, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeTimeline(body)
}

// GetCallArtifacts fetches recording, transcription, and summary references
// for a completed call.
func (c *Client) GetCallArtifacts(ctx context.Context, callID string) (*CallArtifacts, error) {
	body, err := c.invoke(ctx, http.MethodGet, "/v1/calls/"+callID+"/artifacts", nil, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeArtifacts(body)
}

// Aggregates.

// GetTenantUsage fetches a tenant's usage snapshot for a period. The period
// value is passed through uninterpreted; the server decides what is valid.
func (c *Client) GetTenantUsage(ctx context.Context, tenantID string, period Period) (*TenantUsage, error) {
	if period == "" {
		period = DefaultPeriod
	}
	query := map[string]string{"period": string(period)}
	body, err := c.invoke(ctx, http.MethodGet, "/v1/tenants/"+tenantID+"/usage", query, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeUsage(body)
}

// GetCallAnalytics fetches aggregate analytics for one call's realtime session.
func (c *Client) GetCallAnalytics(ctx context.Context, callID string) (*CallAnalytics, error) {
	body, err := c.invoke(ctx, http.MethodGet, "/v1/realtime/"+callID+"/stats", nil, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeAnalytics(body)
}

// Health and monitoring.

// Health checks API health.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	body, err := c.invoke(ctx, http.MethodGet, "/health", nil, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeObject(body)
}

// Metrics returns the exposition-format metrics text verbatim.
func (c *Client) Metrics(ctx context.Context) (string, error) {
	body, err := c.invoke(ctx, http.MethodGet, "/metrics", nil, nil, false)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(body), "\n"), nil
}
