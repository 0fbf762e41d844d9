// Package action holds the remediation settings attached to a filter list
// partition. The engine merges and returns these; interpreting them (deleting
// content, opening infractions) is the caller's job.
package action

import "encoding/json"

// Settings is the bag of remediation actions configured for a partition.
type Settings struct {
	DeleteMessage    bool   `yaml:"delete_message,omitempty" json:"delete_message,omitempty"`
	InfractionType   string `yaml:"infraction_type,omitempty" json:"infraction_type,omitempty"`
	InfractionReason string `yaml:"infraction_reason,omitempty" json:"infraction_reason,omitempty"`
	DMContent        string `yaml:"dm_content,omitempty" json:"dm_content,omitempty"`
	PingMods         bool   `yaml:"ping_mods,omitempty" json:"ping_mods,omitempty"`
	SendAlert        bool   `yaml:"send_alert,omitempty" json:"send_alert,omitempty"`
}

// infractionSeverity orders infraction types from least to most severe.
// Unknown types rank below "note".
var infractionSeverity = map[string]int{
	"note":    1,
	"warning": 2,
	"timeout": 3,
	"kick":    4,
	"ban":     5,
}

// Union combines two settings bags, preferring the stricter value for each
// field. Either receiver or argument may be nil.
func (s *Settings) Union(other *Settings) *Settings {
	if s == nil && other == nil {
		return nil
	}
	if s == nil {
		out := *other
		return &out
	}
	if other == nil {
		out := *s
		return &out
	}

	out := *s
	out.DeleteMessage = s.DeleteMessage || other.DeleteMessage
	out.PingMods = s.PingMods || other.PingMods
	out.SendAlert = s.SendAlert || other.SendAlert
	if infractionSeverity[other.InfractionType] > infractionSeverity[s.InfractionType] {
		out.InfractionType = other.InfractionType
		out.InfractionReason = other.InfractionReason
	}
	if out.DMContent == "" {
		out.DMContent = other.DMContent
	}
	return &out
}

// Marshal serializes settings for decision records. Nil settings marshal
// to nil, which omits the field.
func Marshal(s *Settings) json.RawMessage {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	return data
}
