package invorto

import "strconv"

// Request parameter defaults.
const (
	DefaultLocale      = "en-IN"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
	DefaultPage        = 1
	DefaultLimit       = 50
	DefaultSortOrder   = "desc"
)

// AgentConfig is the request template for creating an agent. Optional fields
// are pointers so an unset field is omitted from the wire payload entirely,
// never sent as null or an empty string. Treat a value as immutable once it
// has been handed to the client.
type AgentConfig struct {
	Name         string           `json:"name"`
	Prompt       string           `json:"prompt"`
	Voice        *string          `json:"voice,omitempty"`
	Locale       *string          `json:"locale,omitempty"`
	Temperature  *float64         `json:"temperature,omitempty"`
	Model        *string          `json:"model,omitempty"`
	MaxTokens    *int             `json:"max_tokens,omitempty"`
	SystemPrompt *string          `json:"system_prompt,omitempty"`
	Tools        []map[string]any `json:"tools,omitempty"`
	Metadata     map[string]any   `json:"metadata,omitempty"`
	Webhook      *WebhookConfig   `json:"webhook,omitempty"`
}

// NewAgentConfig returns an AgentConfig with platform defaults applied.
func NewAgentConfig(name, prompt string) AgentConfig {
	return AgentConfig{
		Name:        name,
		Prompt:      prompt,
		Locale:      ptr(DefaultLocale),
		Temperature: ptr(DefaultTemperature),
		Model:       ptr(DefaultModel),
		MaxTokens:   ptr(DefaultMaxTokens),
	}
}

// Validate checks the config before any network I/O.
func (c AgentConfig) Validate() error {
	var bad []string
	if c.Name == "" {
		bad = append(bad, "name")
	}
	if c.Prompt == "" {
		bad = append(bad, "prompt")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		bad = append(bad, "temperature")
	}
	if c.MaxTokens != nil && *c.MaxTokens <= 0 {
		bad = append(bad, "max_tokens")
	}
	if len(bad) > 0 {
		return &ValidationError{Entity: "agent_config", Fields: bad}
	}
	return nil
}

// CallOptions is the request template for starting a call. The caller-side
// number is serialized under the wire name "from".
type CallOptions struct {
	AgentID       string         `json:"agent_id"`
	To            string         `json:"to"`
	From          *string        `json:"from,omitempty"`
	Direction     Direction      `json:"direction"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Recording     *bool          `json:"recording,omitempty"`
	Transcription *bool          `json:"transcription,omitempty"`
}

// NewCallOptions returns CallOptions with platform defaults applied.
func NewCallOptions(agentID, to string) CallOptions {
	return CallOptions{
		AgentID:       agentID,
		To:            to,
		Direction:     DirectionOutbound,
		Recording:     ptr(true),
		Transcription: ptr(true),
	}
}

// Validate checks the options before any network I/O.
func (o CallOptions) Validate() error {
	var bad []string
	if o.AgentID == "" {
		bad = append(bad, "agent_id")
	}
	if o.To == "" {
		bad = append(bad, "to")
	}
	if len(bad) > 0 {
		return &ValidationError{Entity: "call_options", Fields: bad}
	}
	return nil
}

// ListOptions is the query-parameter template for paginated listings. Zero
// values for page and limit fall back to the defaults at encode time.
type ListOptions struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	SortBy    string
	SortOrder string
}

// NewListOptions returns ListOptions with default pagination.
func NewListOptions() ListOptions {
	return ListOptions{Page: DefaultPage, Limit: DefaultLimit, SortOrder: DefaultSortOrder}
}

func (o ListOptions) queryParams() map[string]string {
	page := o.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := o.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	q := map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}
	if o.Search != "" {
		q["search"] = o.Search
	}
	if o.Status != "" {
		q["status"] = o.Status
	}
	if o.SortBy != "" {
		q["sort_by"] = o.SortBy
		if o.SortOrder != "" {
			q["sort_order"] = o.SortOrder
		} else {
			q["sort_order"] = DefaultSortOrder
		}
	} else if o.SortOrder != "" && o.SortOrder != DefaultSortOrder {
		q["sort_order"] = o.SortOrder
	}
	return q
}

// CallListOptions extends ListOptions with call-specific filters. The From
// filter is encoded under the wire name "from".
type CallListOptions struct {
	ListOptions
	AgentID string
	From    string
	To      string
}

// NewCallListOptions returns CallListOptions with default pagination.
func NewCallListOptions() CallListOptions {
	return CallListOptions{ListOptions: NewListOptions()}
}

func (o CallListOptions) queryParams() map[string]string {
	q := o.ListOptions.queryParams()
	if o.AgentID != "" {
		q["agent_id"] = o.AgentID
	}
	if o.From != "" {
		q["from"] = o.From
	}
	if o.To != "" {
		q["to"] = o.To
	}
	return q
}

func ptr[T any](v T) *T {
	return &v
}
