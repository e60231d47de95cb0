package invorto

import (
	"encoding/json"
	"fmt"
)

// Decoding is the only door from raw server bytes to a typed entity: every
// entity handed to a caller has been unmarshalled and validated here. Schema
// mismatches surface as *ValidationError, which keeps "the server returned
// data this client cannot understand" distinct from transport failures.

func unmarshalEntity(entity string, body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return &ValidationError{Entity: entity, Fields: []string{fmt.Sprintf("payload: %v", err)}}
	}
	return nil
}

func decodeAgent(body []byte) (*Agent, error) {
	var agent Agent
	if err := unmarshalEntity("agent", body, &agent); err != nil {
		return nil, err
	}
	if verr := agent.validate(); verr != nil {
		return nil, verr
	}
	return &agent, nil
}

func decodeCall(body []byte) (*Call, error) {
	var call Call
	if err := unmarshalEntity("call", body, &call); err != nil {
		return nil, err
	}
	if verr := call.validate(); verr != nil {
		return nil, verr
	}
	return &call, nil
}

func decodeArtifacts(body []byte) (*CallArtifacts, error) {
	var artifacts CallArtifacts
	if err := unmarshalEntity("call_artifacts", body, &artifacts); err != nil {
		return nil, err
	}
	return &artifacts, nil
}

func decodeUsage(body []byte) (*TenantUsage, error) {
	var usage TenantUsage
	if err := unmarshalEntity("tenant_usage", body, &usage); err != nil {
		return nil, err
	}
	if verr := usage.validate(); verr != nil {
		return nil, verr
	}
	return &usage, nil
}

func decodeAnalytics(body []byte) (*CallAnalytics, error) {
	var analytics CallAnalytics
	if err := unmarshalEntity("call_analytics", body, &analytics); err != nil {
		return nil, err
	}
	if verr := analytics.validate(); verr != nil {
		return nil, verr
	}
	return &analytics, nil
}

func decodePage(body []byte) (*PaginatedResponse, error) {
	var page PaginatedResponse
	if err := unmarshalEntity("paginated_response", body, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		return nil, &ValidationError{Entity: "paginated_response", Fields: []string{"data"}}
	}
	return &page, nil
}

func decodeTimeline(body []byte) ([]TimelineEvent, error) {
	var envelope struct {
		Timeline []json.RawMessage `json:"timeline"`
	}
	if err := unmarshalEntity("timeline", body, &envelope); err != nil {
		return nil, err
	}
	events := make([]TimelineEvent, 0, len(envelope.Timeline))
	for _, raw := range envelope.Timeline {
		var event TimelineEvent
		if err := unmarshalEntity("timeline_event", raw, &event); err != nil {
			return nil, err
		}
		if verr := event.validate(); verr != nil {
			return nil, verr
		}
		events = append(events, event)
	}
	return events, nil
}

func decodeObject(body []byte) (map[string]any, error) {
	if len(body) == 0 {
		return map[string]any{}, nil
	}
	var obj map[string]any
	if err := unmarshalEntity("response", body, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}
