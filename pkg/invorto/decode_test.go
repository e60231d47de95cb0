package invorto

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeCallRejectsMissingRequiredFields(t *testing.T) {
	t.Parallel()

	body := []byte(`{"id":"call-1","agent_id":"agent-1","status":"active"}`)
	call, err := decodeCall(body)
	if call != nil {
		t.Fatalf("expected no call, got %#v", call)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	for _, field := range []string{"direction", "from_num", "to_num", "started_at"} {
		if !strings.Contains(verr.Error(), field) {
			t.Errorf("missing field %q not reported: %v", field, verr)
		}
	}
}

func TestDecodeAgentRejectsMissingTimestamps(t *testing.T) {
	t.Parallel()

	body := []byte(`{"id":"agent-1","name":"support","status":"active","tenant_id":"tenant-1",` +
		`"config":{"name":"support","prompt":"be helpful"}}`)
	agent, err := decodeAgent(body)
	if agent != nil {
		t.Fatalf("expected no agent, got %#v", agent)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	for _, field := range []string{"created_at", "updated_at"} {
		if !strings.Contains(verr.Error(), field) {
			t.Errorf("missing field %q not reported: %v", field, verr)
		}
	}
}

func TestDecodeUsageRejectsMissingSections(t *testing.T) {
	t.Parallel()

	usage, err := decodeUsage([]byte(`{"tenant_id":"tenant-1","period":"24h"}`))
	if usage != nil {
		t.Fatalf("expected no usage, got %#v", usage)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	for _, field := range []string{"calls", "agents"} {
		if !strings.Contains(verr.Error(), field) {
			t.Errorf("missing field %q not reported: %v", field, verr)
		}
	}
}

func TestDecodeAnalyticsRejectsMissingSentiment(t *testing.T) {
	t.Parallel()

	analytics, err := decodeAnalytics([]byte(`{"call_id":"call-1","total_events":3,"duration":10}`))
	if analytics != nil {
		t.Fatalf("expected no analytics, got %#v", analytics)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(verr.Error(), "sentiment") {
		t.Errorf("missing sentiment not reported: %v", verr)
	}
}

func TestDecodeCallAcceptsOptionalFieldsAbsent(t *testing.T) {
	t.Parallel()

	body := []byte(`{"id":"call-1","agent_id":"agent-1","direction":"outbound",` +
		`"from_num":"+911112223334","to_num":"+919876543210","status":"active",` +
		`"started_at":"2026-01-01T00:00:00Z"}`)
	call, err := decodeCall(body)
	if err != nil {
		t.Fatalf("decodeCall: %v", err)
	}
	if call.EndedAt != nil || call.Duration != nil || call.CostINR != nil {
		t.Fatalf("optional fields must stay unset: %#v", call)
	}
}
