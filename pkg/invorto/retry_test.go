package invorto

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestRetryDisabledByDefault(t *testing.T) {
	t.Parallel()

	var requests int
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	if _, err := client.Health(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if requests != 1 {
		t.Fatalf("default client must attempt exactly once, saw %d", requests)
	}
}

func TestRetryRecoversFromTemporaryFailure(t *testing.T) {
	t.Parallel()

	var requests int
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}), WithRetry(5*time.Second))

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health["status"] != "ok" {
		t.Fatalf("unexpected health: %#v", health)
	}
	if requests != 3 {
		t.Fatalf("expected 3 attempts, saw %d", requests)
	}
}

func TestRetryDoesNotRepeatPermanentRejection(t *testing.T) {
	t.Parallel()

	var requests int
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}), WithRetry(5*time.Second))

	_, err := client.GetAgent(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if requests != 1 {
		t.Fatalf("4xx must not be retried, saw %d attempts", requests)
	}
}
