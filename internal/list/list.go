package list

import (
	"fmt"
	"log/slog"

	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/action"
	"github.com/tkingovr/chatguard/internal/trigger"
)

// FilterList dispatches events against its partitions and aggregates the
// triggered filters into actions to take and a message to relay to mods.
type FilterList interface {
	// Name returns the list name, unique across the engine snapshot.
	Name() string

	// ActionsFor returns the aggregated action settings (nil = no action)
	// and the moderator message (empty = none) for the event.
	ActionsFor(ev *api.Event) (*action.Settings, string, error)
}

// List is a FilterList whose aggregation policy is a constructor-supplied
// strategy. Partitions are added during configuration load and the list is
// read-only afterwards.
type List struct {
	name      string
	sublists  map[api.ListType]*SubList
	aggregate AggregateFunc
	logger    *slog.Logger
}

// NewList creates an empty list with the given aggregation strategy.
func NewList(name string, aggregate AggregateFunc, logger *slog.Logger) *List {
	return &List{
		name:      name,
		sublists:  make(map[api.ListType]*SubList),
		aggregate: aggregate,
		logger:    logger.With("list", name),
	}
}

// Name returns the list name.
func (l *List) Name() string { return l.name }

// SubList returns the partition for the given type, if configured.
func (l *List) SubList(t api.ListType) (*SubList, bool) {
	sub, ok := l.sublists[t]
	return sub, ok
}

// AddList registers a partition built from already-parsed defaults and
// filter specs. A filter whose construction fails is logged and skipped;
// the rest of the partition still loads. A duplicate partition type is a
// configuration error.
func (l *List) AddList(t api.ListType, defaults Defaults, specs []FilterSpec) error {
	if _, ok := l.sublists[t]; ok {
		return fmt.Errorf("list %q already has a %s partition", l.name, t)
	}

	filters := make([]*Filter, 0, len(specs))
	for _, spec := range specs {
		f, err := newFilter(spec, defaults.Actions)
		if err != nil {
			l.logger.Warn("skipping malformed filter", "filter", spec.ID, "error", err)
			continue
		}
		filters = append(filters, f)
	}

	l.sublists[t] = &SubList{
		Type:     t,
		Filters:  filters,
		Defaults: defaults,
	}
	return nil
}

func newFilter(spec FilterSpec, shared *action.Settings) (*Filter, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("filter has no id")
	}
	trig, err := trigger.New(spec.Trigger)
	if err != nil {
		return nil, err
	}
	overrides, err := spec.Overrides.Build()
	if err != nil {
		return nil, err
	}
	return &Filter{
		ID:          spec.ID,
		Description: spec.Description,
		Trigger:     trig,
		Validations: overrides,
		Actions:     shared,
	}, nil
}

// ActionsFor runs the relevance resolver once per configured partition and
// hands the triggered filters to the aggregation strategy.
func (l *List) ActionsFor(ev *api.Event) (*action.Settings, string, error) {
	triggered, err := l.Triggered(ev)
	if err != nil {
		return nil, "", err
	}
	actions, msg := l.Aggregate(triggered)
	return actions, msg, nil
}

// Aggregate applies the list's aggregation strategy to already-resolved
// triggered filters.
func (l *List) Aggregate(triggered map[api.ListType][]*Filter) (*action.Settings, string) {
	return l.aggregate(triggered)
}

// Triggered returns the per-partition triggered filters without aggregating,
// for display commands.
func (l *List) Triggered(ev *api.Event) (map[api.ListType][]*Filter, error) {
	triggered := make(map[api.ListType][]*Filter, len(l.sublists))
	for t, sub := range l.sublists {
		matched, err := Resolve(ev, sub.Filters, sub.Defaults.Validations)
		if err != nil {
			return nil, fmt.Errorf("list %q (%s): %w", l.name, t, err)
		}
		if len(matched) > 0 {
			triggered[t] = matched
		}
	}
	return triggered, nil
}
