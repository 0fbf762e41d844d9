package api

import "testing"

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"message_id":"m1","channel_id":"c1","content":"hello","author_roles":["staff"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if ev.MessageID != "m1" || ev.ChannelID != "c1" || ev.Content != "hello" {
		t.Errorf("parsed event = %+v", ev)
	}
	if !ev.HasRole("staff") {
		t.Error("expected staff role")
	}
	if ev.HasRole("admin") {
		t.Error("unexpected admin role")
	}
}

func TestParseEvent_Invalid(t *testing.T) {
	if _, err := ParseEvent([]byte("not json")); err == nil {
		t.Error("expected error for invalid event")
	}
}
