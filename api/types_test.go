package api

import (
	"errors"
	"testing"
)

func TestParseListType_Aliases(t *testing.T) {
	cases := []struct {
		token string
		want  ListType
	}{
		{"deny", ListTypeDeny},
		{"blocklist", ListTypeDeny},
		{"blacklist", ListTypeDeny},
		{"denylist", ListTypeDeny},
		{"bl", ListTypeDeny},
		{"dl", ListTypeDeny},
		{"allow", ListTypeAllow},
		{"allowlist", ListTypeAllow},
		{"whitelist", ListTypeAllow},
		{"al", ListTypeAllow},
		{"wl", ListTypeAllow},
	}
	for _, tc := range cases {
		got, err := ParseListType(tc.token)
		if err != nil {
			t.Errorf("ParseListType(%q): unexpected error: %v", tc.token, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseListType(%q) = %s, want %s", tc.token, got, tc.want)
		}
	}
}

func TestParseListType_PastTense(t *testing.T) {
	cases := []struct {
		token string
		want  ListType
	}{
		{"denied", ListTypeDeny},
		{"blocklisted", ListTypeDeny},
		{"blacklisted", ListTypeDeny},
		{"denylisted", ListTypeDeny},
		{"allowed", ListTypeAllow},
		{"allowlisted", ListTypeAllow},
		{"whitelisted", ListTypeAllow},
	}
	for _, tc := range cases {
		got, err := ParseListType(tc.token)
		if err != nil {
			t.Errorf("ParseListType(%q): unexpected error: %v", tc.token, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseListType(%q) = %s, want %s", tc.token, got, tc.want)
		}
	}
}

func TestParseListType_Normalization(t *testing.T) {
	got, err := ParseListType("  Blacklist ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ListTypeDeny {
		t.Errorf("got %s, want %s", got, ListTypeDeny)
	}
}

func TestParseListType_Unknown(t *testing.T) {
	for _, token := range []string{"", "graylist", "denyy", "allow-list"} {
		_, err := ParseListType(token)
		if err == nil {
			t.Errorf("ParseListType(%q): expected error", token)
			continue
		}
		var unknownErr *UnknownListTypeError
		if !errors.As(err, &unknownErr) {
			t.Errorf("ParseListType(%q): expected UnknownListTypeError, got %T", token, err)
		}
	}
}

func TestPastTense(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"allow", "allowed"},
		{"deny", "denied"},
		{"blocklist", "blocklisted"},
		{"note", "noted"},
	}
	for _, tc := range cases {
		if got := pastTense(tc.in); got != tc.want {
			t.Errorf("pastTense(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
