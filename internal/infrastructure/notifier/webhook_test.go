package notifier

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/openfantasy/rooms/internal/platform/resilience"
)

func TestPublishStandingsUpdated_DeliversEvent(t *testing.T) {
	t.Parallel()

	var received atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hook-secret" {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		received.Store(body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(WebhookConfig{
		URL:   srv.URL,
		Token: "hook-secret",
	}, nil)

	if err := notifier.PublishStandingsUpdated(context.Background(), "room-1", "gw-1"); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	raw, _ := received.Load().([]byte)
	var event map[string]string
	if err := sonic.Unmarshal(raw, &event); err != nil {
		t.Fatalf("unmarshal delivered event: %v", err)
	}
	if event["event"] != "standings.updated" {
		t.Fatalf("unexpected event type: %s", event["event"])
	}
	if event["room_id"] != "room-1" || event["gameweek_id"] != "gw-1" {
		t.Fatalf("unexpected event payload: %v", event)
	}
}

func TestPublishStandingsUpdated_NoURLIsNoop(t *testing.T) {
	t.Parallel()

	notifier := NewWebhookNotifier(WebhookConfig{}, nil)
	if err := notifier.PublishStandingsUpdated(context.Background(), "room-1", "gw-1"); err != nil {
		t.Fatalf("expected nil error without configured URL, got %v", err)
	}
}

func TestPublishStandingsUpdated_CircuitOpensAfterServerErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(WebhookConfig{
		URL: srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
		},
	}, nil)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := notifier.PublishStandingsUpdated(ctx, "room-1", "gw-1"); err == nil {
			t.Fatalf("expected delivery error on attempt %d", i+1)
		}
	}

	err := notifier.PublishStandingsUpdated(ctx, "room-1", "gw-1")
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
}
