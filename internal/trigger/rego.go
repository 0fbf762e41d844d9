package trigger

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/ast"
	"github.com/open-policy-agent/opa/rego"

	"github.com/tkingovr/chatguard/api"
)

// RegoTrigger evaluates an embedded Rego policy against the event. It exists
// for filters whose matching logic outgrows tokens and regexes.
//
// The policy must live in package chatguard and define:
//
//	triggered: bool
//
// Input available to the policy:
//
//	input.content: string
//	input.channel_id: string
//	input.category_id: string
//	input.dm: bool
//	input.author_id: string
//	input.author_roles: []string
//	input.attachments: []string
type RegoTrigger struct {
	query rego.PreparedEvalQuery
}

// NewRego compiles a Rego source string into a trigger. Parse and prepare
// failures make the filter definition malformed.
func NewRego(source string) (*RegoTrigger, error) {
	if source == "" {
		return nil, fmt.Errorf("rego trigger requires a non-empty policy source")
	}

	// Parse first for a readable error
	_, err := ast.ParseModuleWithOpts("trigger.rego", source, ast.ParserOptions{RegoVersion: ast.RegoV1})
	if err != nil {
		return nil, fmt.Errorf("parsing rego trigger: %w", err)
	}

	r := rego.New(
		rego.Query("data.chatguard.triggered"),
		rego.Module("trigger.rego", source),
	)
	query, err := r.PrepareForEval(context.Background())
	if err != nil {
		return nil, fmt.Errorf("preparing rego trigger: %w", err)
	}
	return &RegoTrigger{query: query}, nil
}

func (t *RegoTrigger) Kind() string { return KindRego }

// Triggered evaluates the policy. An undefined result means the trigger did
// not fire; an evaluation error is propagated, never swallowed.
func (t *RegoTrigger) Triggered(ev *api.Event) (bool, error) {
	input := map[string]any{
		"content":      ev.Content,
		"channel_id":   ev.ChannelID,
		"category_id":  ev.CategoryID,
		"dm":           ev.DM,
		"author_id":    ev.AuthorID,
		"author_roles": ev.AuthorRoles,
		"attachments":  ev.Attachments,
	}

	rs, err := t.query.Eval(context.Background(), rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("rego trigger evaluation: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, nil
	}
	triggered, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("rego trigger returned %T, expected bool", rs[0].Expressions[0].Value)
	}
	return triggered, nil
}
