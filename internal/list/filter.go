// Package list implements the filter-list core: the data model for
// moderation filters and their partitions, the relevance resolver that
// decides which filters apply and trigger for an event, and the aggregation
// strategies that turn triggered filters into actions.
package list

import (
	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/action"
	"github.com/tkingovr/chatguard/internal/trigger"
	"github.com/tkingovr/chatguard/internal/validation"
)

// Filter is a single moderation rule: a trigger predicate plus optional
// validation overrides. Filters are immutable after construction.
type Filter struct {
	// ID identifies the filter in decisions, logs, and moderator messages.
	ID string

	// Description is optional display text for moderators.
	Description string

	// Trigger is the rule-specific predicate deciding whether the filter
	// fires once deemed applicable.
	Trigger trigger.Trigger

	// Validations holds the filter's validation overrides. Nil means the
	// filter inherits the partition defaults. A non-nil empty set is kept
	// distinct: it takes the override evaluation path, which degenerates to
	// the same answer (see Resolve).
	Validations *validation.Set

	// Actions references the partition's shared action settings.
	Actions *action.Settings
}

// Triggered reports whether the filter's trigger predicate fires.
func (f *Filter) Triggered(ev *api.Event) (bool, error) {
	return f.Trigger.Triggered(ev)
}

// FilterSpec is the parsed definition of one filter, ready for construction.
type FilterSpec struct {
	ID          string
	Description string
	Trigger     trigger.Definition
	Overrides   *validation.Settings
}
