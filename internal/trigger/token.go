package trigger

import (
	"fmt"
	"strings"

	"github.com/tkingovr/chatguard/api"
)

// TokenTrigger matches a case-insensitive substring in message content.
type TokenTrigger struct {
	token string
}

// NewToken creates a token trigger. The token must be non-empty.
func NewToken(token string) (*TokenTrigger, error) {
	if token == "" {
		return nil, fmt.Errorf("token trigger requires a non-empty pattern")
	}
	return &TokenTrigger{token: strings.ToLower(token)}, nil
}

func (t *TokenTrigger) Kind() string { return KindToken }

func (t *TokenTrigger) Triggered(ev *api.Event) (bool, error) {
	if strings.Contains(strings.ToLower(ev.Content), t.token) {
		return true, nil
	}
	for _, name := range ev.Attachments {
		if strings.Contains(strings.ToLower(name), t.token) {
			return true, nil
		}
	}
	return false, nil
}
