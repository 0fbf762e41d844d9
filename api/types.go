package api

import (
	"fmt"
	"strings"
)

// ListType identifies which partition of a filter list a filter belongs to:
// the deny partition (filters that flag content) or the allow partition
// (filters that exempt content).
type ListType string

const (
	ListTypeDeny  ListType = "deny"
	ListTypeAllow ListType = "allow"
)

// listTypeAliases maps each list type to the tokens users may write for it
// in configuration and commands. Kept as data, not conditionals.
var listTypeAliases = []struct {
	listType ListType
	aliases  []string
}{
	{ListTypeDeny, []string{"deny", "blocklist", "blacklist", "denylist", "bl", "dl"}},
	{ListTypeAllow, []string{"allow", "allowlist", "whitelist", "al", "wl"}},
}

// UnknownListTypeError reports a token that resolves to no list type.
type UnknownListTypeError struct {
	Token string
}

func (e *UnknownListTypeError) Error() string {
	return fmt.Sprintf("no matching list type found for %q", e.Token)
}

// ParseListType resolves a free-form token to a ListType. Each alias is also
// recognized in its past-tense form ("denied", "blacklisted", ...). Unknown
// tokens return an UnknownListTypeError, never a default.
func ParseListType(token string) (ListType, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	for _, entry := range listTypeAliases {
		for _, alias := range entry.aliases {
			if normalized == alias || normalized == pastTense(alias) {
				return entry.listType, nil
			}
		}
	}
	return "", &UnknownListTypeError{Token: token}
}

// ListTypes returns the closed set of list types.
func ListTypes() []ListType {
	return []ListType{ListTypeDeny, ListTypeAllow}
}

// pastTense applies simple English past-tense rules to an alias.
func pastTense(word string) string {
	switch {
	case strings.HasSuffix(word, "e"):
		return word + "d"
	case len(word) > 1 && strings.HasSuffix(word, "y") && !isVowel(word[len(word)-2]):
		return word[:len(word)-1] + "ied"
	default:
		return word + "ed"
	}
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
