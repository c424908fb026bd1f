package kafka

import (
	"encoding/json"
	"testing"

	"github.com/sheikh-saqib/fitcoin-ledger/internal/models/events"
)

func TestNewMessageUsesTopicAndLedgerKey(t *testing.T) {
	msg, err := newMessage(events.TopicLevelUp, events.LevelUp{UserKey: "fitcoin_data:u1", NewLevel: 2, Points: 1040})
	if err != nil {
		t.Fatalf("new message: %v", err)
	}
	if msg.Topic != events.TopicLevelUp {
		t.Fatalf("topic = %q, want %q", msg.Topic, events.TopicLevelUp)
	}
	if string(msg.Key) != "fitcoin_data:u1" {
		t.Fatalf("key = %q, want fitcoin_data:u1", msg.Key)
	}

	var got events.LevelUp
	if err := json.Unmarshal(msg.Value, &got); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if got.NewLevel != 2 || got.Points != 1040 {
		t.Fatalf("value = %+v", got)
	}
}

func TestNewMessageWithoutKey(t *testing.T) {
	msg, err := newMessage("misc", map[string]int{"n": 1})
	if err != nil {
		t.Fatalf("new message: %v", err)
	}
	if msg.Key != nil {
		t.Fatalf("key = %q, want none", msg.Key)
	}
}

func TestNewMessageRejectsUnencodable(t *testing.T) {
	if _, err := newMessage("misc", make(chan int)); err == nil {
		t.Fatal("expected encode error")
	}
}
