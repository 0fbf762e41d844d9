package api

import (
	"encoding/json"
	"fmt"
)

// Event is one message to moderate, assembled by the caller. The engine
// never interprets these fields itself; it only threads the event through
// validation and trigger predicates.
type Event struct {
	MessageID   string   `json:"message_id,omitempty"`
	GuildID     string   `json:"guild_id,omitempty"`
	ChannelID   string   `json:"channel_id,omitempty"`
	CategoryID  string   `json:"category_id,omitempty"`
	DM          bool     `json:"dm,omitempty"`
	AuthorID    string   `json:"author_id,omitempty"`
	AuthorRoles []string `json:"author_roles,omitempty"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments,omitempty"`
	Embeds      []string `json:"embeds,omitempty"`
}

// ParseEvent decodes a raw JSON event line.
func ParseEvent(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	return &ev, nil
}

// HasRole reports whether the author carries the given role.
func (ev *Event) HasRole(role string) bool {
	for _, r := range ev.AuthorRoles {
		if r == role {
			return true
		}
	}
	return false
}
