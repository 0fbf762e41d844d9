package api

import (
	"encoding/json"
	"time"
)

// ListDecision is the outcome of dispatching one event against one filter list.
type ListDecision struct {
	List    string          `json:"list"`
	Filters []string        `json:"filters,omitempty"`
	Message string          `json:"message,omitempty"`
	Actions json.RawMessage `json:"actions,omitempty"`
}

// DecisionRecord is one audited moderation decision: the event identity plus
// the per-list decisions that produced actions or a moderator message.
type DecisionRecord struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	MessageID string         `json:"message_id,omitempty"`
	ChannelID string         `json:"channel_id,omitempty"`
	AuthorID  string         `json:"author_id,omitempty"`
	Triggered bool           `json:"triggered"`
	Decisions []ListDecision `json:"decisions,omitempty"`
}

// QueryFilter defines criteria for querying decision records.
type QueryFilter struct {
	Since     time.Time `json:"since,omitempty"`
	Until     time.Time `json:"until,omitempty"`
	List      string    `json:"list,omitempty"`
	ChannelID string    `json:"channel_id,omitempty"`
	Triggered bool      `json:"triggered,omitempty"`
	Limit     int       `json:"limit,omitempty"`
	Offset    int       `json:"offset,omitempty"`
}

// AuditStats provides summary statistics over recorded decisions.
type AuditStats struct {
	TotalEvents     int            `json:"total_events"`
	TriggeredEvents int            `json:"triggered_events"`
	ByList          map[string]int `json:"by_list"`
	ByChannel       map[string]int `json:"by_channel"`
}
