package invorto

import "context"

// Future holds the pending result of an operation dispatched to its own
// goroutine. Each future is independent: two in-flight operations never
// share state, so they complete in whatever order the network dictates.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// dispatch runs fn on its own goroutine and returns a future for its result.
func dispatch[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()
	return f
}

// Await blocks until the operation completes and returns its result. It may
// be called any number of times; every call returns the same outcome.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitContext waits for completion or for ctx. An expired context abandons
// the wait only: the dispatched request keeps running to completion or
// transport failure, because in-flight cancellation is unsupported.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done reports completion without blocking.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// AsyncClient mirrors every Client operation as a future-returning variant,
// for callers that must not block between issuing a call and consuming its
// result. The underlying client is read-only after construction, so any
// number of concurrent dispatches are safe.
type AsyncClient struct {
	client *Client
}

// NewAsyncClient wraps an existing client.
func NewAsyncClient(client *Client) *AsyncClient {
	return &AsyncClient{client: client}
}

// Client exposes the wrapped blocking client.
func (a *AsyncClient) Client() *Client {
	return a.client
}

// CreateAgentAsync mirrors Client.CreateAgent.
func (a *AsyncClient) CreateAgentAsync(ctx context.Context, config AgentConfig) *Future[*Agent] {
	return dispatch(func() (*Agent, error) { return a.client.CreateAgent(ctx, config) })
}

// GetAgentAsync mirrors Client.GetAgent.
func (a *AsyncClient) GetAgentAsync(ctx context.Context, agentID string) *Future[*Agent] {
	return dispatch(func() (*Agent, error) { return a.client.GetAgent(ctx, agentID) })
}

// ListAgentsAsync mirrors Client.ListAgents.
func (a *AsyncClient) ListAgentsAsync(ctx context.Context, opts *ListOptions) *Future[*AgentPage] {
	return dispatch(func() (*AgentPage, error) { return a.client.ListAgents(ctx, opts) })
}

// UpdateAgentAsync mirrors Client.UpdateAgent.
func (a *AsyncClient) UpdateAgentAsync(ctx context.Context, agentID string, updates map[string]any) *Future[*Agent] {
	return dispatch(func() (*Agent, error) { return a.client.UpdateAgent(ctx, agentID, updates) })
}

// DeleteAgentAsync mirrors Client.DeleteAgent.
func (a *AsyncClient) DeleteAgentAsync(ctx context.Context, agentID string) *Future[map[string]any] {
	return dispatch(func() (map[string]any, error) { return a.client.DeleteAgent(ctx, agentID) })
}

// CreateCallAsync mirrors Client.CreateCall.
func (a *AsyncClient) CreateCallAsync(ctx context.Context, opts CallOptions) *Future[map[string]any] {
	return dispatch(func() (map[string]any, error) { return a.client.CreateCall(ctx, opts) })
}

// GetCallAsync mirrors Client.GetCall.
func (a *AsyncClient) GetCallAsync(ctx context.Context, callID string) *Future[*Call] {
	return dispatch(func() (*Call, error) { return a.client.GetCall(ctx, callID) })
}

// ListCallsAsync mirrors Client.ListCalls.
func (a *AsyncClient) ListCallsAsync(ctx context.Context, opts *CallListOptions) *Future[*CallPage] {
	return dispatch(func() (*CallPage, error) { return a.client.ListCalls(ctx, opts) })
}

// UpdateCallStatusAsync mirrors Client.UpdateCallStatus.
func (a *AsyncClient) UpdateCallStatusAsync(ctx context.Context, callID string, status CallStatus, metadata map[string]any) *Future[*Call] {
	return dispatch(func() (*Call, error) { return a.client.UpdateCallStatus(ctx, callID, status, metadata) })
}

// GetCallTimelineAsync mirrors Client.GetCallTimeline.
func (a *AsyncClient) GetCallTimelineAsync(ctx context.Context, callID string) *Future[[]TimelineEvent] {
	return dispatch(func() ([]TimelineEvent, error) { return a.client.GetCallTimeline(ctx, callID) })
}

// GetCallArtifactsAsync mirrors Client.GetCallArtifacts.
func (a *AsyncClient) GetCallArtifactsAsync(ctx context.Context, callID string) *Future[*CallArtifacts] {
	return dispatch(func() (*CallArtifacts, error) { return a.client.GetCallArtifacts(ctx, callID) })
}

// GetTenantUsageAsync mirrors Client.GetTenantUsage.
func (a *AsyncClient) GetTenantUsageAsync(ctx context.Context, tenantID string, period Period) *Future[*TenantUsage] {
	return dispatch(func() (*TenantUsage, error) { return a.client.GetTenantUsage(ctx, tenantID, period) })
}

// GetCallAnalyticsAsync mirrors Client.GetCallAnalytics.
func (a *AsyncClient) GetCallAnalyticsAsync(ctx context.Context, callID string) *Future[*CallAnalytics] {
	return dispatch(func() (*CallAnalytics, error) { return a.client.GetCallAnalytics(ctx, callID) })
}

// HealthAsync mirrors Client.Health.
func (a *AsyncClient) HealthAsync(ctx context.Context) *Future[map[string]any] {
	return dispatch(func() (map[string]any, error) { return a.client.Health(ctx) })
}

// MetricsAsync mirrors Client.Metrics.
func (a *AsyncClient) MetricsAsync(ctx context.Context) *Future[string] {
	return dispatch(func() (string, error) { return a.client.Metrics(ctx) })
}
