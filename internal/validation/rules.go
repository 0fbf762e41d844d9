package validation

import "github.com/tkingovr/chatguard/api"

// Rule names, shared between partition defaults and filter overrides.
const (
	RuleEnabled      = "enabled"
	RuleFilterDM     = "filter_dm"
	RuleBypassRoles  = "bypass_roles"
	RuleChannelScope = "channel_scope"
)

// enabledRule gates an entire partition on a configuration switch.
type enabledRule struct {
	enabled bool
}

func (r *enabledRule) Name() string { return RuleEnabled }

func (r *enabledRule) Passes(_ *api.Event) (bool, error) {
	return r.enabled, nil
}

// filterDMRule decides whether direct messages are in scope.
type filterDMRule struct {
	filterDM bool
}

func (r *filterDMRule) Name() string { return RuleFilterDM }

func (r *filterDMRule) Passes(ev *api.Event) (bool, error) {
	if !ev.DM {
		return true, nil
	}
	return r.filterDM, nil
}

// bypassRolesRule exempts authors carrying any of the configured roles.
type bypassRolesRule struct {
	roles []string
}

func (r *bypassRolesRule) Name() string { return RuleBypassRoles }

func (r *bypassRolesRule) Passes(ev *api.Event) (bool, error) {
	for _, role := range r.roles {
		if ev.HasRole(role) {
			return false, nil
		}
	}
	return true, nil
}

// channelScopeRule restricts a partition to certain channels and categories.
// An explicitly enabled channel wins over a disabled category; DMs have no
// channel and always pass this rule.
type channelScopeRule struct {
	enabledChannels    map[string]bool
	disabledChannels   map[string]bool
	disabledCategories map[string]bool
}

func (r *channelScopeRule) Name() string { return RuleChannelScope }

func (r *channelScopeRule) Passes(ev *api.Event) (bool, error) {
	if ev.DM {
		return true, nil
	}
	if r.enabledChannels[ev.ChannelID] {
		return true, nil
	}
	if r.disabledChannels[ev.ChannelID] {
		return false, nil
	}
	if r.disabledCategories[ev.CategoryID] {
		return false, nil
	}
	return true, nil
}

func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
