package invorto

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

func stubCall(id string) Call {
	return Call{
		ID:        id,
		AgentID:   "agent-1",
		Direction: DirectionOutbound,
		FromNum:   "+911112223334",
		ToNum:     "+919876543210",
		Status:    CallStatusActive,
		StartedAt: "2026-01-01T00:00:00Z",
	}
}

func TestAsyncGetCallsResolveIndependently(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/calls/slow":
			<-release
			_ = json.NewEncoder(w).Encode(stubCall("slow"))
		case "/v1/calls/fast":
			_ = json.NewEncoder(w).Encode(stubCall("fast"))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	async := NewAsyncClient(client)

	slow := async.GetCallAsync(context.Background(), "slow")
	fast := async.GetCallAsync(context.Background(), "fast")

	// The fast call must complete while the slow one is still stalled.
	call, err := fast.Await()
	if err != nil {
		t.Fatalf("fast await: %v", err)
	}
	if call.ID != "fast" {
		t.Fatalf("unexpected call: %#v", call)
	}
	if slow.Done() {
		t.Fatalf("stalled request resolved prematurely")
	}

	close(release)
	call, err = slow.Await()
	if err != nil {
		t.Fatalf("slow await: %v", err)
	}
	if call.ID != "slow" {
		t.Fatalf("unexpected call: %#v", call)
	}
}

func TestFutureRejectsWithOperationError(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	async := NewAsyncClient(client)

	_, err := async.GetAgentAsync(context.Background(), "agent-1").Await()
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", apiErr.Status)
	}
}

func TestFutureAwaitIsRepeatable(t *testing.T) {
	t.Parallel()

	future := dispatch(func() (int, error) { return 7, nil })
	for i := 0; i < 3; i++ {
		v, err := future.Await()
		if err != nil || v != 7 {
			t.Fatalf("await %d: %v, %v", i, v, err)
		}
	}
}

func TestFutureAwaitContextAbandonsWaitOnly(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	future := dispatch(func() (string, error) {
		<-release
		return "late", nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := future.AwaitContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}

	// The dispatched work keeps running and its result stays retrievable.
	close(release)
	v, err := future.Await()
	if err != nil || v != "late" {
		t.Fatalf("await after abandon: %q, %v", v, err)
	}
}
