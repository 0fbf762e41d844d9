// Package validation implements the named preconditions a filter list applies
// before any filter is allowed to trigger. Each rule is a named boolean
// predicate over an event; a Set evaluates all of its rules and partitions
// their names into passed and failed.
package validation

import (
	"fmt"

	"github.com/tkingovr/chatguard/api"
)

// Rule is a single named precondition evaluated against an event.
type Rule interface {
	// Name returns the rule name. Names are unique within one Set and are
	// the binding mechanism between partition defaults and filter overrides.
	Name() string

	// Passes reports whether the event satisfies the precondition.
	// A returned error is a defect in the rule, not a failed check.
	Passes(ev *api.Event) (bool, error)
}

// Set is a collection of uniquely named rules.
type Set struct {
	rules map[string]Rule
}

// NewSet builds a Set from the given rules. Duplicate names are an error.
func NewSet(rules ...Rule) (*Set, error) {
	s := &Set{rules: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		if _, ok := s.rules[r.Name()]; ok {
			return nil, fmt.Errorf("duplicate validation rule %q", r.Name())
		}
		s.rules[r.Name()] = r
	}
	return s, nil
}

// Len returns the number of rules in the set. A nil Set has zero rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Evaluate runs every rule against the event and returns the names of the
// rules that passed and the names of the rules that failed. Each rule name
// lands in exactly one of the two sets. A rule error aborts evaluation.
func (s *Set) Evaluate(ev *api.Event) (passed, failed map[string]bool, err error) {
	passed = make(map[string]bool)
	failed = make(map[string]bool)
	if s == nil {
		return passed, failed, nil
	}
	for name, rule := range s.rules {
		ok, err := rule.Passes(ev)
		if err != nil {
			return nil, nil, fmt.Errorf("validation %q: %w", name, err)
		}
		if ok {
			passed[name] = true
		} else {
			failed[name] = true
		}
	}
	return passed, failed, nil
}
