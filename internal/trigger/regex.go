package trigger

import (
	"fmt"
	"regexp"

	"github.com/tkingovr/chatguard/api"
)

// RegexTrigger matches message content against a compiled regular expression.
type RegexTrigger struct {
	re *regexp.Regexp
}

// NewRegex creates a regex trigger. The pattern is compiled once at
// construction; a compile failure makes the filter definition malformed.
func NewRegex(pattern string) (*RegexTrigger, error) {
	if pattern == "" {
		return nil, fmt.Errorf("regex trigger requires a non-empty pattern")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling regex trigger: %w", err)
	}
	return &RegexTrigger{re: re}, nil
}

func (t *RegexTrigger) Kind() string { return KindRegex }

func (t *RegexTrigger) Triggered(ev *api.Event) (bool, error) {
	return t.re.MatchString(ev.Content), nil
}
