package list

import (
	"errors"
	"testing"

	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/validation"
)

// stubTrigger fires unconditionally or errors, for exercising the resolver
// independent of any concrete trigger kind.
type stubTrigger struct {
	fires bool
	err   error
}

func (s stubTrigger) Kind() string { return "stub" }

func (s stubTrigger) Triggered(_ *api.Event) (bool, error) { return s.fires, s.err }

// stubRule is a named validation rule with a fixed answer.
type stubRule struct {
	name string
	pass bool
}

func (r stubRule) Name() string { return r.name }

func (r stubRule) Passes(_ *api.Event) (bool, error) { return r.pass, nil }

func mustSet(t *testing.T, rules ...validation.Rule) *validation.Set {
	t.Helper()
	s, err := validation.NewSet(rules...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newStubFilter(id string, fires bool, overrides *validation.Set) *Filter {
	return &Filter{
		ID:          id,
		Trigger:     stubTrigger{fires: fires},
		Validations: overrides,
	}
}

func resolveIDs(t *testing.T, ev *api.Event, filters []*Filter, defaults *validation.Set) []string {
	t.Helper()
	matched, err := Resolve(ev, filters, defaults)
	if err != nil {
		t.Fatal(err)
	}
	ids := make([]string, 0, len(matched))
	for _, f := range matched {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestResolve_DefaultsPass(t *testing.T) {
	ev := &api.Event{Content: "hello"}
	defaults := mustSet(t, stubRule{name: "public_channel", pass: true})

	triggers := newStubFilter("triggers", true, nil)
	quiet := newStubFilter("quiet", false, nil)

	got := resolveIDs(t, ev, []*Filter{triggers, quiet}, defaults)
	if len(got) != 1 || got[0] != "triggers" {
		t.Errorf("got %v, want [triggers]", got)
	}
}

func TestResolve_DefaultGate(t *testing.T) {
	// A failed default excludes every filter without matching overrides,
	// regardless of its trigger.
	ev := &api.Event{Content: "hello"}
	defaults := mustSet(t, stubRule{name: "public_channel", pass: false})

	f := newStubFilter("f1", true, nil)
	got := resolveIDs(t, ev, []*Filter{f}, defaults)
	if len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestResolve_OverrideReclamation(t *testing.T) {
	ev := &api.Event{Content: "hello"}
	defaults := mustSet(t, stubRule{name: "public_channel", pass: false})

	// F1: no overrides -> excluded.
	f1 := newStubFilter("f1", true, nil)
	// F2: reclaims public_channel and passes -> included.
	f2 := newStubFilter("f2", true, mustSet(t, stubRule{name: "public_channel", pass: true}))
	// F3: overrides a different rule -> does not reclaim -> excluded.
	f3 := newStubFilter("f3", true, mustSet(t, stubRule{name: "other_rule", pass: true}))

	got := resolveIDs(t, ev, []*Filter{f1, f2, f3}, defaults)
	if len(got) != 1 || got[0] != "f2" {
		t.Errorf("got %v, want [f2]", got)
	}
}

func TestResolve_ReclaimedNameFails(t *testing.T) {
	// Flipping the reclaimed rule to fail flips the filter to excluded.
	ev := &api.Event{Content: "hello"}
	defaults := mustSet(t, stubRule{name: "public_channel", pass: false})

	f := newStubFilter("f", true, mustSet(t, stubRule{name: "public_channel", pass: false}))
	got := resolveIDs(t, ev, []*Filter{f}, defaults)
	if len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestResolve_OverrideOwnFailureDisqualifies(t *testing.T) {
	// Overrides that reclaim the failed default but fail a different
	// override rule still disqualify the filter.
	ev := &api.Event{Content: "hello"}
	defaults := mustSet(t, stubRule{name: "public_channel", pass: false})

	f := newStubFilter("f", true, mustSet(t,
		stubRule{name: "public_channel", pass: true},
		stubRule{name: "enabled", pass: false},
	))
	got := resolveIDs(t, ev, []*Filter{f}, defaults)
	if len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestResolve_EmptyOverrideSetEquivalence(t *testing.T) {
	// An override set with zero entries must behave exactly like no
	// overrides at all, even though it takes the other code path.
	ev := &api.Event{Content: "hello"}

	for _, defaultsPass := range []bool{true, false} {
		defaults := mustSet(t, stubRule{name: "public_channel", pass: defaultsPass})

		none := newStubFilter("none", true, nil)
		empty := newStubFilter("empty", true, mustSet(t))

		gotNone := resolveIDs(t, ev, []*Filter{none}, defaults)
		gotEmpty := resolveIDs(t, ev, []*Filter{empty}, defaults)

		if len(gotNone) != len(gotEmpty) {
			t.Errorf("defaultsPass=%v: nil overrides gave %v, empty overrides gave %v",
				defaultsPass, gotNone, gotEmpty)
		}
		if defaultsPass && len(gotNone) != 1 {
			t.Errorf("defaultsPass=true: got %v, want one filter", gotNone)
		}
		if !defaultsPass && len(gotNone) != 0 {
			t.Errorf("defaultsPass=false: got %v, want none", gotNone)
		}
	}
}

func TestResolve_SetSemantics(t *testing.T) {
	// The same filter supplied twice is returned once, and nothing outside
	// the input collection ever appears.
	ev := &api.Event{Content: "hello"}
	defaults := mustSet(t)

	f := newStubFilter("dup", true, nil)
	matched, err := Resolve(ev, []*Filter{f, f}, defaults)
	if err != nil {
		t.Fatal(err)
	}
	if len(matched) != 1 {
		t.Fatalf("got %d filters, want 1", len(matched))
	}
	if matched[0] != f {
		t.Error("resolver returned a filter not in the input collection")
	}
}

func TestResolve_NilDefaults(t *testing.T) {
	ev := &api.Event{Content: "hello"}
	got := resolveIDs(t, ev, []*Filter{newStubFilter("f", true, nil)}, nil)
	if len(got) != 1 {
		t.Errorf("got %v, want [f]", got)
	}
}

func TestResolve_TriggerErrorPropagates(t *testing.T) {
	ev := &api.Event{Content: "hello"}
	boom := errors.New("boom")
	f := &Filter{ID: "f", Trigger: stubTrigger{err: boom}}

	_, err := Resolve(ev, []*Filter{f}, nil)
	if !errors.Is(err, boom) {
		t.Errorf("expected trigger error to propagate, got %v", err)
	}
}

func TestResolve_MultipleFailedDefaults(t *testing.T) {
	// Every failed default must be reclaimed; reclaiming only one of two
	// is not enough.
	ev := &api.Event{Content: "hello"}
	defaults := mustSet(t,
		stubRule{name: "public_channel", pass: false},
		stubRule{name: "filter_dm", pass: false},
	)

	partial := newStubFilter("partial", true, mustSet(t, stubRule{name: "public_channel", pass: true}))
	full := newStubFilter("full", true, mustSet(t,
		stubRule{name: "public_channel", pass: true},
		stubRule{name: "filter_dm", pass: true},
	))

	got := resolveIDs(t, ev, []*Filter{partial, full}, defaults)
	if len(got) != 1 || got[0] != "full" {
		t.Errorf("got %v, want [full]", got)
	}
}
