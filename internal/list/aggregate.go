package list

import (
	"fmt"
	"strings"

	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/action"
)

// AggregateFunc combines the per-partition triggered filters into a final
// decision: merged action settings (nil = no action) and a moderator-facing
// message (empty = nothing to say). Strategies are supplied at list
// construction; the engine never interprets the settings it merges.
type AggregateFunc func(triggered map[api.ListType][]*Filter) (*action.Settings, string)

// DenyAggregate unions the action settings of all triggered deny filters.
// Allow-partition matches are ignored.
func DenyAggregate(triggered map[api.ListType][]*Filter) (*action.Settings, string) {
	denied := triggered[api.ListTypeDeny]
	if len(denied) == 0 {
		return nil, ""
	}

	var combined *action.Settings
	names := make([]string, 0, len(denied))
	for _, f := range denied {
		combined = combined.Union(f.Actions)
		names = append(names, f.ID)
	}
	return combined, fmt.Sprintf("matched %d filter(s): %s", len(denied), strings.Join(names, ", "))
}

// AllowOverrideAggregate behaves like DenyAggregate, except a triggered
// allow filter suppresses all deny actions for the event.
func AllowOverrideAggregate(triggered map[api.ListType][]*Filter) (*action.Settings, string) {
	if allowed := triggered[api.ListTypeAllow]; len(allowed) > 0 {
		return nil, ""
	}
	return DenyAggregate(triggered)
}

// Aggregation strategy names used in configuration.
const (
	AggregationDeny          = "deny"
	AggregationAllowOverride = "allow_override"
)

// AggregateByName returns the named strategy.
func AggregateByName(name string) (AggregateFunc, error) {
	switch name {
	case AggregationDeny:
		return DenyAggregate, nil
	case AggregationAllowOverride:
		return AllowOverrideAggregate, nil
	default:
		return nil, fmt.Errorf("unknown aggregation strategy %q", name)
	}
}
