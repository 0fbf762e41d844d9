// Package trigger implements the trigger predicates behind moderation
// filters. The list engine depends only on the Trigger interface; concrete
// kinds (token, regex, domain, rego) are pluggable implementations.
package trigger

import (
	"fmt"

	"github.com/tkingovr/chatguard/api"
)

// Trigger decides whether a filter fires for an event.
type Trigger interface {
	// Kind returns the trigger kind for logging and display.
	Kind() string

	// Triggered reports whether the event matches. An error is a defect in
	// the predicate and is propagated, never treated as "no match".
	Triggered(ev *api.Event) (bool, error)
}

// Definition is the parsed description of one trigger, ready to construct.
type Definition struct {
	Kind    string
	Pattern string
}

// Trigger kinds.
const (
	KindToken  = "token"
	KindRegex  = "regex"
	KindDomain = "domain"
	KindRego   = "rego"
)

// New constructs a trigger from its definition. Unknown kinds and patterns
// that fail to compile are construction errors.
func New(def Definition) (Trigger, error) {
	switch def.Kind {
	case KindToken:
		return NewToken(def.Pattern)
	case KindRegex:
		return NewRegex(def.Pattern)
	case KindDomain:
		return NewDomain(def.Pattern)
	case KindRego:
		return NewRego(def.Pattern)
	default:
		return nil, fmt.Errorf("unknown trigger kind %q", def.Kind)
	}
}
