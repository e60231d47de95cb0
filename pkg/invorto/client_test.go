package invorto

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/invorto/invorto-go/internal/testutil/httpmock"
)

func testClient(t *testing.T, handler http.Handler, opts ...ClientOption) *Client {
	t.Helper()
	stubClient, _ := httpmock.New(handler)
	opts = append([]ClientOption{WithBaseURL(httpmock.BaseURL), WithHTTPClient(stubClient)}, opts...)
	client, err := NewClient("secret-key", opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func agentResponse(id string, config AgentConfig) Agent {
	return Agent{
		ID:        id,
		Name:      config.Name,
		Config:    config,
		Status:    AgentStatusActive,
		TenantID:  "tenant-1",
		CreatedAt: "2026-01-01T00:00:00Z",
		UpdatedAt: "2026-01-01T00:00:00Z",
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(""); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}

func TestClientCreateAgent(t *testing.T) {
	t.Parallel()

	var received map[string]any
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method: %s", r.Method)
		}
		if r.URL.Path != "/v1/agents" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-key" {
			t.Fatalf("missing auth header: %q", got)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("content-type: %s", ct)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Fatalf("missing request id header")
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(agentResponse("agent-1", NewAgentConfig("support", "be helpful")))
	}))

	agent, err := client.CreateAgent(context.Background(), NewAgentConfig("support", "be helpful"))
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	if agent.ID != "agent-1" || agent.Status != AgentStatusActive {
		t.Fatalf("unexpected agent: %#v", agent)
	}
	if received["name"] != "support" || received["locale"] != "en-IN" {
		t.Fatalf("unexpected payload: %#v", received)
	}
}

func TestClientCreateAgentRejectsInvalidConfigLocally(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("no request expected for invalid input")
	}))

	_, err := client.CreateAgent(context.Background(), AgentConfig{Name: "no-prompt"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestClientAgentConfigRoundTrip(t *testing.T) {
	t.Parallel()

	original := NewAgentConfig("support", "be helpful")
	original.Voice = ptr("aria")
	original.SystemPrompt = ptr("stay formal")
	original.Tools = []map[string]any{{"type": "transfer"}}
	original.Metadata = map[string]any{"team": "care"}

	// Echo server: folds the submitted config into an agent envelope unchanged.
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var config AgentConfig
		if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(agentResponse("agent-1", config))
	}))

	agent, err := client.CreateAgent(context.Background(), original)
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}

	got, err := json.Marshal(agent.Config)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("config did not survive round trip:\n got %s\nwant %s", got, want)
	}
}

func TestClientGetAgent(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/agents/agent-1" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(agentResponse("agent-1", NewAgentConfig("support", "be helpful")))
	}))

	agent, err := client.GetAgent(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("GetAgent: %v", err)
	}
	if agent.TenantID != "tenant-1" {
		t.Fatalf("unexpected agent: %#v", agent)
	}
}

func TestClientListAgents(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/agents" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("page") != "1" || query.Get("limit") != "50" {
			t.Fatalf("default pagination missing: %s", r.URL.RawQuery)
		}
		if len(query) != 2 {
			t.Fatalf("expected exactly page and limit, got %s", r.URL.RawQuery)
		}
		first, _ := json.Marshal(agentResponse("agent-1", NewAgentConfig("support", "be helpful")))
		second, _ := json.Marshal(agentResponse("agent-2", NewAgentConfig("sales", "sell things")))
		_ = json.NewEncoder(w).Encode(PaginatedResponse{
			Data:       []json.RawMessage{first, second},
			Pagination: map[string]any{"total": 2.0, "page": 1.0, "limit": 50.0},
		})
	}))

	page, err := client.ListAgents(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListAgents: %v", err)
	}
	if len(page.Agents) != 2 || page.Agents[1].ID != "agent-2" {
		t.Fatalf("unexpected page: %#v", page)
	}
	if page.Pagination["total"] != 2.0 {
		t.Fatalf("pagination not passed through: %#v", page.Pagination)
	}
}

func TestClientUpdateAgentSendsOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	var received map[string]any
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Fatalf("method: %s", r.Method)
		}
		if r.URL.Path != "/v1/agents/agent-1" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(agentResponse("agent-1", NewAgentConfig("renamed", "be helpful")))
	}))

	_, err := client.UpdateAgent(context.Background(), "agent-1", map[string]any{"name": "renamed"})
	if err != nil {
		t.Fatalf("UpdateAgent: %v", err)
	}
	if len(received) != 1 || received["name"] != "renamed" {
		t.Fatalf("patch must carry only provided fields: %#v", received)
	}
}

func TestClientUpdateAgentForwardsEmptyPatch(t *testing.T) {
	t.Parallel()

	var received map[string]any
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(agentResponse("agent-1", NewAgentConfig("support", "be helpful")))
	}))

	if _, err := client.UpdateAgent(context.Background(), "agent-1", nil); err != nil {
		t.Fatalf("UpdateAgent: %v", err)
	}
	if received == nil || len(received) != 0 {
		t.Fatalf("empty patch must reach the server as an empty object: %#v", received)
	}
}

func TestClientDeleteAgent(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("method: %s", r.Method)
		}
		if r.URL.Path != "/v1/agents/agent-1" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"deleted": true})
	}))

	result, err := client.DeleteAgent(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("DeleteAgent: %v", err)
	}
	if result["deleted"] != true {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestClientCreateCall(t *testing.T) {
	t.Parallel()

	var received map[string]any
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/calls" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "call-1", "status": "created"})
	}))

	opts := NewCallOptions("agent-1", "+919876543210")
	opts.From = ptr("+911112223334")

	ack, err := client.CreateCall(context.Background(), opts)
	if err != nil {
		t.Fatalf("CreateCall: %v", err)
	}
	if ack["id"] != "call-1" || ack["status"] != "created" {
		t.Fatalf("unexpected ack: %#v", ack)
	}
	if received["from"] != "+911112223334" {
		t.Fatalf("from alias missing in payload: %#v", received)
	}
	if received["recording"] != true || received["transcription"] != true {
		t.Fatalf("defaults missing in payload: %#v", received)
	}
}

func TestClientGetCall(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/calls/call-1" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Call{
			ID:        "call-1",
			AgentID:   "agent-1",
			Direction: DirectionOutbound,
			FromNum:   "+911112223334",
			ToNum:     "+919876543210",
			Status:    CallStatusCompleted,
			StartedAt: "2026-01-01T00:00:00Z",
			Duration:  ptr(42),
			CostINR:   ptr(3.5),
		})
	}))

	call, err := client.GetCall(context.Background(), "call-1")
	if err != nil {
		t.Fatalf("GetCall: %v", err)
	}
	if call.Status != CallStatusCompleted || call.Duration == nil || *call.Duration != 42 {
		t.Fatalf("unexpected call: %#v", call)
	}
}

func TestClientListCallsFilters(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("agent_id") != "agent-1" || query.Get("from") != "+911112223334" {
			t.Fatalf("filters missing: %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(PaginatedResponse{Data: []json.RawMessage{}, Pagination: map[string]any{"total": 0.0}})
	}))

	opts := NewCallListOptions()
	opts.AgentID = "agent-1"
	opts.From = "+911112223334"

	page, err := client.ListCalls(context.Background(), &opts)
	if err != nil {
		t.Fatalf("ListCalls: %v", err)
	}
	if len(page.Calls) != 0 {
		t.Fatalf("unexpected calls: %#v", page.Calls)
	}
}

func TestClientUpdateCallStatus(t *testing.T) {
	t.Parallel()

	var received map[string]any
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/v1/calls/call-1/status" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Call{
			ID:        "call-1",
			AgentID:   "agent-1",
			Direction: DirectionOutbound,
			FromNum:   "+911112223334",
			ToNum:     "+919876543210",
			Status:    CallStatusCompleted,
			StartedAt: "2026-01-01T00:00:00Z",
		})
	}))

	call, err := client.UpdateCallStatus(context.Background(), "call-1", CallStatusCompleted, map[string]any{"reason": "wrapped up"})
	if err != nil {
		t.Fatalf("UpdateCallStatus: %v", err)
	}
	if call.Status != CallStatusCompleted {
		t.Fatalf("unexpected call: %#v", call)
	}
	if received["status"] != "completed" {
		t.Fatalf("status missing in patch: %#v", received)
	}
	metadata, ok := received["metadata"].(map[string]any)
	if !ok || metadata["reason"] != "wrapped up" {
		t.Fatalf("metadata missing in patch: %#v", received)
	}
}

func TestClientGetCallTimeline(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/calls/call-1/timeline" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"timeline": []map[string]any{
				{"id": "ev-1", "kind": "call.started", "timestamp": "2026-01-01T00:00:00Z"},
				{"id": "ev-2", "kind": "transcript.partial", "payload": map[string]any{"text": "hello"}, "timestamp": "2026-01-01T00:00:01Z"},
			},
		})
	}))

	events, err := client.GetCallTimeline(context.Background(), "call-1")
	if err != nil {
		t.Fatalf("GetCallTimeline: %v", err)
	}
	if len(events) != 2 || events[1].Kind != "transcript.partial" {
		t.Fatalf("unexpected events: %#v", events)
	}
}

func TestClientGetCallTimelineEmpty(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))

	events, err := client.GetCallTimeline(context.Background(), "call-1")
	if err != nil {
		t.Fatalf("GetCallTimeline: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Fatalf("expected empty slice, got %#v", events)
	}
}

func TestClientGetCallArtifacts(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/calls/call-1/artifacts" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(CallArtifacts{Recording: ptr("https://cdn.invorto.ai/rec/call-1.wav")})
	}))

	artifacts, err := client.GetCallArtifacts(context.Background(), "call-1")
	if err != nil {
		t.Fatalf("GetCallArtifacts: %v", err)
	}
	if artifacts.Recording == nil || artifacts.Transcription != nil {
		t.Fatalf("unexpected artifacts: %#v", artifacts)
	}
}

func TestClientGetTenantUsage(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tenants/tenant-1/usage" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("period"); got != "7d" {
			t.Fatalf("period: %s", got)
		}
		_ = json.NewEncoder(w).Encode(TenantUsage{
			TenantID: "tenant-1",
			Period:   "7d",
			Calls:    map[string]any{"total": 12.0},
			Agents:   map[string]any{"total": 2.0},
		})
	}))

	usage, err := client.GetTenantUsage(context.Background(), "tenant-1", PeriodWeek)
	if err != nil {
		t.Fatalf("GetTenantUsage: %v", err)
	}
	if usage.Calls["total"] != 12.0 {
		t.Fatalf("unexpected usage: %#v", usage)
	}
}

func TestClientGetCallAnalytics(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/realtime/call-1/stats" {
			t.Fatalf("path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(CallAnalytics{
			CallID:      "call-1",
			TotalEvents: 9,
			EventTypes:  map[string]int{"transcript.partial": 7},
			Duration:    42,
			Sentiment:   "positive",
			Topics:      []string{"billing"},
		})
	}))

	analytics, err := client.GetCallAnalytics(context.Background(), "call-1")
	if err != nil {
		t.Fatalf("GetCallAnalytics: %v", err)
	}
	if analytics.TotalEvents != 9 || analytics.Sentiment != "positive" {
		t.Fatalf("unexpected analytics: %#v", analytics)
	}
}

func TestClientHealthAndMetrics(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
		case "/metrics":
			_, _ = w.Write([]byte("invorto_calls_total 42\n"))
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health["status"] != "ok" {
		t.Fatalf("unexpected health: %#v", health)
	}

	metrics, err := client.Metrics(context.Background())
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if metrics != "invorto_calls_total 42" {
		t.Fatalf("unexpected metrics: %q", metrics)
	}
}

func TestClientTenantHeader(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-tenant-id"); got != "tenant-1" {
			t.Fatalf("tenant header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}), WithTenant("tenant-1"))

	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestClientErrorTaxonomy(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx is APIError, never ValidationError", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"no such agent"}`))
		}))

		_, err := client.GetAgent(context.Background(), "missing")
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %v", err)
		}
		if apiErr.Status != 404 || apiErr.Body == "" {
			t.Fatalf("unexpected error: %#v", apiErr)
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			t.Fatalf("transport failure must not surface as validation failure")
		}
	})

	t.Run("schema mismatch on 200 is ValidationError, never APIError", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"name":"support"}`))
		}))

		_, err := client.GetAgent(context.Background(), "agent-1")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			t.Fatalf("validation failure must not surface as transport failure")
		}
	})

	t.Run("malformed body on 200 is NetworkError", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"truncated":`))
		}))

		_, err := client.GetAgent(context.Background(), "agent-1")
		var nerr *NetworkError
		if !errors.As(err, &nerr) {
			t.Fatalf("expected *NetworkError, got %v", err)
		}
	})
}

func TestClientBatchCreateAgentsStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	var requests int
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 2 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad config"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(agentResponse("agent-1", NewAgentConfig("one", "p")))
	}))

	configs := []AgentConfig{
		NewAgentConfig("one", "p"),
		NewAgentConfig("two", "p"),
		NewAgentConfig("three", "p"),
	}
	_, err := client.CreateAgents(context.Background(), configs)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if requests != 2 {
		t.Fatalf("expected abort after the failing request, saw %d requests", requests)
	}
}

func TestWithSessionClosesOnError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	err := WithSession("secret-key", nil, func(c *Client) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}

func TestAPIErrorTemporary(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status    int
		temporary bool
	}{
		{429, true},
		{500, true},
		{503, true},
		{404, false},
		{400, false},
	}
	for _, tc := range cases {
		err := &APIError{Status: tc.status}
		if err.Temporary() != tc.temporary {
			t.Fatalf("status %d: Temporary() = %v", tc.status, err.Temporary())
		}
	}
}

func TestRealtimeURL(t *testing.T) {
	t.Parallel()

	client := testClient(t, nil)
	got := client.RealtimeURL("call-1", NewRealtimeOptions())
	want := "wss://mock.invorto.local/v1/realtime/call-1?audio_format=linear16&channels=1&recording=true&sample_rate=16000&transcription=true"
	if got != want {
		t.Fatalf("RealtimeURL:\n got %s\nwant %s", got, want)
	}
}
