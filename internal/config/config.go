// Package config loads and validates the chatguard filter-list configuration
// and builds the runtime lists from it.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/action"
	"github.com/tkingovr/chatguard/internal/list"
	"github.com/tkingovr/chatguard/internal/validation"
)

// File represents the top-level YAML configuration.
type File struct {
	Version  int          `yaml:"version"`
	Settings Settings     `yaml:"settings"`
	Lists    []ListConfig `yaml:"lists"`
}

// Settings contains global engine settings.
type Settings struct {
	LogDir      string `yaml:"log_dir,omitempty"`
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// ListConfig describes one filter list and its partitions.
type ListConfig struct {
	Name        string            `yaml:"name"`
	Aggregation string            `yaml:"aggregation,omitempty"`
	Partitions  []PartitionConfig `yaml:"partitions"`
}

// PartitionConfig is the payload for one add-list call: a list-type token,
// the partition settings, and the filter definitions.
type PartitionConfig struct {
	ListType string            `yaml:"list_type"`
	Settings PartitionSettings `yaml:"settings"`
	Filters  []FilterConfig    `yaml:"filters"`
}

// PartitionSettings splits the partition settings payload into the action
// bag and the default validation rules.
type PartitionSettings struct {
	Actions     action.Settings     `yaml:"actions"`
	Validations validation.Settings `yaml:"validations"`
}

// FilterConfig describes one filter. Overrides, when present, re-declare
// named validation rules with filter-specific parameters.
type FilterConfig struct {
	ID          string               `yaml:"id"`
	Kind        string               `yaml:"kind,omitempty"`
	Pattern     string               `yaml:"pattern"`
	Description string               `yaml:"description,omitempty"`
	Overrides   *validation.Settings `yaml:"overrides,omitempty"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates YAML configuration data. Unknown fields are
// rejected so that a mistyped settings key fails loudly instead of being
// silently ignored.
func LoadBytes(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// validate checks the structural configuration. Per-filter problems (bad
// pattern, unknown kind) are deliberately not checked here: they are handled
// with log-and-skip tolerance when the lists are built.
func validate(f *File) error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", f.Version)
	}

	seenNames := make(map[string]bool, len(f.Lists))
	for i, lc := range f.Lists {
		if lc.Name == "" {
			return fmt.Errorf("list %d: name is required", i)
		}
		if seenNames[lc.Name] {
			return fmt.Errorf("duplicate list name %q", lc.Name)
		}
		seenNames[lc.Name] = true

		if lc.Aggregation != "" {
			if _, err := list.AggregateByName(lc.Aggregation); err != nil {
				return fmt.Errorf("list %q: %w", lc.Name, err)
			}
		}

		seenTypes := make(map[api.ListType]bool, len(lc.Partitions))
		for _, pc := range lc.Partitions {
			lt, err := api.ParseListType(pc.ListType)
			if err != nil {
				return fmt.Errorf("list %q: %w", lc.Name, err)
			}
			if seenTypes[lt] {
				return fmt.Errorf("list %q: duplicate %s partition", lc.Name, lt)
			}
			seenTypes[lt] = true
		}
	}
	return nil
}
