package config

import (
	"fmt"
	"log/slog"

	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/list"
	"github.com/tkingovr/chatguard/internal/trigger"
)

// BuildLists constructs the runtime filter lists from a validated config.
// Partition settings that fail to build abort construction; individual
// filters that fail to build are skipped inside AddList.
func BuildLists(f *File, logger *slog.Logger) ([]*list.List, error) {
	lists := make([]*list.List, 0, len(f.Lists))
	for _, lc := range f.Lists {
		l, err := buildList(&lc, logger)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, nil
}

func buildList(lc *ListConfig, logger *slog.Logger) (*list.List, error) {
	aggregate, err := list.AggregateByName(aggregationFor(lc))
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", lc.Name, err)
	}
	l := list.NewList(lc.Name, aggregate, logger)

	for _, pc := range lc.Partitions {
		lt, err := api.ParseListType(pc.ListType)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", lc.Name, err)
		}

		defaultValidations, err := pc.Settings.Validations.Build()
		if err != nil {
			return nil, fmt.Errorf("list %q (%s): building validations: %w", lc.Name, lt, err)
		}
		actions := pc.Settings.Actions
		defaults := list.Defaults{
			Actions:     &actions,
			Validations: defaultValidations,
		}

		specs := make([]list.FilterSpec, 0, len(pc.Filters))
		for _, fc := range pc.Filters {
			kind := fc.Kind
			if kind == "" {
				kind = trigger.KindToken
			}
			specs = append(specs, list.FilterSpec{
				ID:          fc.ID,
				Description: fc.Description,
				Trigger:     trigger.Definition{Kind: kind, Pattern: fc.Pattern},
				Overrides:   fc.Overrides,
			})
		}

		if err := l.AddList(lt, defaults, specs); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// aggregationFor picks the strategy: an explicit setting wins; otherwise a
// list with an allow partition gets allow_override, everything else deny.
func aggregationFor(lc *ListConfig) string {
	if lc.Aggregation != "" {
		return lc.Aggregation
	}
	for _, pc := range lc.Partitions {
		if lt, err := api.ParseListType(pc.ListType); err == nil && lt == api.ListTypeAllow {
			return list.AggregationAllowOverride
		}
	}
	return list.AggregationDeny
}
