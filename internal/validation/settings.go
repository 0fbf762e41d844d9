package validation

// Settings is the explicit configuration schema for validation rules. Each
// field is optional; only the fields that are present produce rules, which is
// what lets a filter override re-declare exactly one named default.
type Settings struct {
	Enabled      *bool                 `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	FilterDM     *bool                 `yaml:"filter_dm,omitempty" json:"filter_dm,omitempty"`
	BypassRoles  []string              `yaml:"bypass_roles,omitempty" json:"bypass_roles,omitempty"`
	ChannelScope *ChannelScopeSettings `yaml:"channel_scope,omitempty" json:"channel_scope,omitempty"`
}

// ChannelScopeSettings configures the channel_scope rule.
type ChannelScopeSettings struct {
	EnabledChannels    []string `yaml:"enabled_channels,omitempty" json:"enabled_channels,omitempty"`
	DisabledChannels   []string `yaml:"disabled_channels,omitempty" json:"disabled_channels,omitempty"`
	DisabledCategories []string `yaml:"disabled_categories,omitempty" json:"disabled_categories,omitempty"`
}

// Empty reports whether no rule is configured at all. An empty Settings on a
// filter still produces a (zero-rule) override Set; a nil *Settings does not.
func (s *Settings) Empty() bool {
	return s == nil ||
		(s.Enabled == nil && s.FilterDM == nil && s.BypassRoles == nil && s.ChannelScope == nil)
}

// Build constructs the rule Set described by the settings. A nil receiver
// yields nil, meaning "no rules at this level".
func (s *Settings) Build() (*Set, error) {
	if s == nil {
		return nil, nil
	}
	var rules []Rule
	if s.Enabled != nil {
		rules = append(rules, &enabledRule{enabled: *s.Enabled})
	}
	if s.FilterDM != nil {
		rules = append(rules, &filterDMRule{filterDM: *s.FilterDM})
	}
	if s.BypassRoles != nil {
		rules = append(rules, &bypassRolesRule{roles: s.BypassRoles})
	}
	if s.ChannelScope != nil {
		rules = append(rules, &channelScopeRule{
			enabledChannels:    toSet(s.ChannelScope.EnabledChannels),
			disabledChannels:   toSet(s.ChannelScope.DisabledChannels),
			disabledCategories: toSet(s.ChannelScope.DisabledCategories),
		})
	}
	return NewSet(rules...)
}
