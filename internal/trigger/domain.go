package trigger

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/tkingovr/chatguard/api"
)

// urlRE finds http(s) URLs embedded in message content.
var urlRE = regexp.MustCompile(`https?://[^\s<>"']+`)

// DomainTrigger matches any URL in the message whose host is the configured
// domain or one of its subdomains.
type DomainTrigger struct {
	domain string
}

// NewDomain creates a domain trigger. The domain is stored without scheme
// or leading "www.".
func NewDomain(domain string) (*DomainTrigger, error) {
	if domain == "" {
		return nil, fmt.Errorf("domain trigger requires a non-empty pattern")
	}
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "www.")
	d = strings.TrimSuffix(d, "/")
	if d == "" {
		return nil, fmt.Errorf("domain trigger pattern %q has no host", domain)
	}
	return &DomainTrigger{domain: d}, nil
}

func (t *DomainTrigger) Kind() string { return KindDomain }

func (t *DomainTrigger) Triggered(ev *api.Event) (bool, error) {
	for _, raw := range urlRE.FindAllString(ev.Content, -1) {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		host := strings.ToLower(u.Hostname())
		host = strings.TrimPrefix(host, "www.")
		if host == t.domain || strings.HasSuffix(host, "."+t.domain) {
			return true, nil
		}
	}
	return false, nil
}
