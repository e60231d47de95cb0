package invorto

import (
	"encoding/json"
)

// Direction identifies who initiated a call.
type Direction string

// Call directions.
const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// CallStatus is the server-owned call lifecycle state. Transitions move
// forward only; the client merely observes them.
type CallStatus string

// Call lifecycle states.
const (
	CallStatusCreated   CallStatus = "created"
	CallStatusRinging   CallStatus = "ringing"
	CallStatusAnswered  CallStatus = "answered"
	CallStatusActive    CallStatus = "active"
	CallStatusCompleted CallStatus = "completed"
	CallStatusFailed    CallStatus = "failed"
)

// AgentStatus is the server-owned agent state.
type AgentStatus string

// Agent states.
const (
	AgentStatusActive   AgentStatus = "active"
	AgentStatusInactive AgentStatus = "inactive"
	AgentStatusDraft    AgentStatus = "draft"
)

// Period enumerates usage reporting windows. Values are passed through to
// the server uninterpreted; the server is authoritative on validity.
type Period string

// Usage periods.
const (
	PeriodHour    Period = "1h"
	PeriodDay     Period = "24h"
	PeriodWeek    Period = "7d"
	Period30Days  Period = "30d"
	PeriodMonth   Period = "1m"
	DefaultPeriod        = PeriodDay
)

// Agent mirrors a server-side AI agent. It is a read-only snapshot: the
// client never mutates one locally.
type Agent struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Config    AgentConfig    `json:"config"`
	Status    AgentStatus    `json:"status"`
	TenantID  string         `json:"tenant_id"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	Stats     map[string]any `json:"stats,omitempty"`
}

func (a *Agent) validate() *ValidationError {
	var missing []string
	if a.ID == "" {
		missing = append(missing, "id")
	}
	if a.Name == "" {
		missing = append(missing, "name")
	}
	if a.Status == "" {
		missing = append(missing, "status")
	}
	if a.TenantID == "" {
		missing = append(missing, "tenant_id")
	}
	if a.CreatedAt == "" {
		missing = append(missing, "created_at")
	}
	if a.UpdatedAt == "" {
		missing = append(missing, "updated_at")
	}
	if a.Config.Name == "" {
		missing = append(missing, "config.name")
	}
	if a.Config.Prompt == "" {
		missing = append(missing, "config.prompt")
	}
	if len(missing) > 0 {
		return &ValidationError{Entity: "agent", Fields: missing}
	}
	return nil
}

// Call mirrors a server-side call record.
type Call struct {
	ID        string           `json:"id"`
	AgentID   string           `json:"agent_id"`
	Direction Direction        `json:"direction"`
	FromNum   string           `json:"from_num"`
	ToNum     string           `json:"to_num"`
	Status    CallStatus       `json:"status"`
	StartedAt string           `json:"started_at"`
	EndedAt   *string          `json:"ended_at,omitempty"`
	Duration  *int             `json:"duration,omitempty"`
	CostINR   *float64         `json:"cost_inr,omitempty"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
	Costs     []map[string]any `json:"costs,omitempty"`
}

func (c *Call) validate() *ValidationError {
	var missing []string
	if c.ID == "" {
		missing = append(missing, "id")
	}
	if c.AgentID == "" {
		missing = append(missing, "agent_id")
	}
	if c.Direction == "" {
		missing = append(missing, "direction")
	}
	if c.FromNum == "" {
		missing = append(missing, "from_num")
	}
	if c.ToNum == "" {
		missing = append(missing, "to_num")
	}
	if c.Status == "" {
		missing = append(missing, "status")
	}
	if c.StartedAt == "" {
		missing = append(missing, "started_at")
	}
	if len(missing) > 0 {
		return &ValidationError{Entity: "call", Fields: missing}
	}
	return nil
}

// TimelineEvent is one entry in a call's event timeline. Payload is
// kind-dependent and left untyped at this layer.
type TimelineEvent struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp string          `json:"timestamp"`
}

func (e *TimelineEvent) validate() *ValidationError {
	var missing []string
	if e.ID == "" {
		missing = append(missing, "id")
	}
	if e.Kind == "" {
		missing = append(missing, "kind")
	}
	if len(missing) > 0 {
		return &ValidationError{Entity: "timeline_event", Fields: missing}
	}
	return nil
}

// CallArtifacts holds post-call outputs. Everything is optional; fields are
// populated only after the call completes.
type CallArtifacts struct {
	Recording     *string        `json:"recording,omitempty"`
	Transcription *string        `json:"transcription,omitempty"`
	Summary       *string        `json:"summary,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// PaginatedResponse wraps a listing payload. Data keeps server order and is
// decoded lazily into typed entities; the pagination shape is owned by the
// server and passed through opaque.
type PaginatedResponse struct {
	Data       []json.RawMessage `json:"data"`
	Pagination map[string]any    `json:"pagination"`
}

// AgentPage is a decoded page of agents.
type AgentPage struct {
	Agents     []Agent
	Pagination map[string]any
}

// CallPage is a decoded page of calls.
type CallPage struct {
	Calls      []Call
	Pagination map[string]any
}

// TenantUsage is a read-only usage snapshot for one tenant over a period.
type TenantUsage struct {
	TenantID string         `json:"tenant_id"`
	Period   string         `json:"period"`
	Calls    map[string]any `json:"calls"`
	Agents   map[string]any `json:"agents"`
}

func (u *TenantUsage) validate() *ValidationError {
	var missing []string
	if u.TenantID == "" {
		missing = append(missing, "tenant_id")
	}
	if u.Period == "" {
		missing = append(missing, "period")
	}
	if u.Calls == nil {
		missing = append(missing, "calls")
	}
	if u.Agents == nil {
		missing = append(missing, "agents")
	}
	if len(missing) > 0 {
		return &ValidationError{Entity: "tenant_usage", Fields: missing}
	}
	return nil
}

// CallAnalytics is a read-only aggregate over one call's realtime session.
type CallAnalytics struct {
	CallID      string         `json:"call_id"`
	TotalEvents int            `json:"total_events"`
	EventTypes  map[string]int `json:"event_types"`
	Duration    int            `json:"duration"`
	Sentiment   string         `json:"sentiment"`
	Topics      []string       `json:"topics"`
}

func (a *CallAnalytics) validate() *ValidationError {
	var missing []string
	if a.CallID == "" {
		missing = append(missing, "call_id")
	}
	if a.Sentiment == "" {
		missing = append(missing, "sentiment")
	}
	if len(missing) > 0 {
		return &ValidationError{Entity: "call_analytics", Fields: missing}
	}
	return nil
}

// WebhookConfig is a pass-through webhook registration shape. It rides along
// in create/update payloads and is not processed client-side.
type WebhookConfig struct {
	URL     string            `json:"url"`
	Events  []string          `json:"events"`
	Secret  *string           `json:"secret,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}
