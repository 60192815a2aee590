//go:build integration

package events

import (
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

func skipWithoutNATS(t *testing.T) string {
	t.Helper()
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set, skipping integration test")
	}
	return url
}

func TestIntegration_PublishQueryEvent(t *testing.T) {
	natsURL := skipWithoutNATS(t)
	logger := slog.Default()

	pub, err := NewPublisher(natsURL, os.Getenv("NATS_TOKEN"), logger)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer pub.Close()

	nc, err := nats.Connect(natsURL)
	if err != nil {
		t.Fatalf("failed to connect subscriber: %v", err)
	}
	defer nc.Close()

	received := make(chan QueryEvent, 1)
	sub, err := nc.Subscribe(SubjectAnswered, func(msg *nats.Msg) {
		var evt QueryEvent
		if err := json.Unmarshal(msg.Data, &evt); err == nil {
			received <- evt
		}
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	want := QueryEvent{
		SessionID: "test-session",
		Category:  "product",
		Timestamp: time.Now().UTC(),
	}
	if err := pub.Publish(SubjectAnswered, want); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-received:
		if got.SessionID != want.SessionID || got.Category != want.Category {
			t.Errorf("unexpected event: %+v", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
