package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRoutingKey(t *testing.T) {
	if got := RoutingKey("Tech - Software"); got != "insight.tech-software" {
		t.Errorf("RoutingKey = %q", got)
	}
}

func TestPublishing(t *testing.T) {
	at := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	msg, err := publishing(Update{Industry: "Finance", Status: StatusRefreshed, Timestamp: at})
	if err != nil {
		t.Fatalf("publishing: %v", err)
	}
	if msg.ContentType != "application/json" {
		t.Errorf("ContentType = %q", msg.ContentType)
	}
	if !msg.Timestamp.Equal(at) {
		t.Errorf("Timestamp = %v, want %v", msg.Timestamp, at)
	}

	var body map[string]any
	if err := json.Unmarshal(msg.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["industry"] != "Finance" || body["status"] != "refreshed" || body["timestamp"] != "2025-03-02T00:00:00Z" {
		t.Errorf("body = %s", msg.Body)
	}
}
