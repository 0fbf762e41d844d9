package list

import (
	"fmt"

	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/validation"
)

// Resolve sifts through the filters and returns only the ones that are both
// relevant in the given context and actually triggered.
//
// The strategy:
//  1. The partition defaults are evaluated once. The default answer for
//     whether a filter is relevant is whether no default rule failed.
//  2. For each filter, its overrides are considered:
//     - No overrides: the filter is relevant iff that is the default answer.
//     - Otherwise it is relevant iff none of its own overrides failed, and
//       every rule name that failed by default was re-validated and passed
//       by an override of the same name.
//
// A relevant filter is included iff its trigger predicate fires. Predicate
// errors are propagated; they are never treated as "did not trigger".
func Resolve(ev *api.Event, filters []*Filter, defaults *validation.Set) ([]*Filter, error) {
	_, failedDefault, err := defaults.Evaluate(ev)
	if err != nil {
		return nil, err
	}
	defaultAnswer := len(failedDefault) == 0

	var relevant []*Filter
	seen := make(map[*Filter]bool, len(filters))
	for _, f := range filters {
		if seen[f] {
			continue
		}
		seen[f] = true

		if f.Validations == nil {
			if !defaultAnswer {
				continue
			}
		} else {
			passed, failed, err := f.Validations.Evaluate(ev)
			if err != nil {
				return nil, fmt.Errorf("filter %q: %w", f.ID, err)
			}
			if len(failed) > 0 {
				continue
			}
			if !reclaims(failedDefault, passed) {
				continue
			}
		}

		triggered, err := f.Triggered(ev)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", f.ID, err)
		}
		if triggered {
			relevant = append(relevant, f)
		}
	}
	return relevant, nil
}

// reclaims reports whether every default-failed rule name was passed by an
// override of the same name. Name identity is the only binding mechanism.
func reclaims(failedDefault, passed map[string]bool) bool {
	for name := range failedDefault {
		if !passed[name] {
			return false
		}
	}
	return true
}
