package config

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/tkingovr/chatguard/api"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const validConfig = `
version: 1
settings:
  log_dir: /tmp/logs
lists:
  - name: tokens
    partitions:
      - list_type: blacklist
        settings:
          actions:
            delete_message: true
          validations:
            enabled: true
        filters:
          - id: scam
            pattern: "free nitro"
`

func TestLoadBytes_Valid(t *testing.T) {
	f, err := LoadBytes([]byte(validConfig))
	if err != nil {
		t.Fatal(err)
	}
	if f.Settings.LogDir != "/tmp/logs" {
		t.Errorf("log_dir = %q", f.Settings.LogDir)
	}
	if len(f.Lists) != 1 || f.Lists[0].Name != "tokens" {
		t.Fatalf("unexpected lists: %+v", f.Lists)
	}
	if len(f.Lists[0].Partitions) != 1 {
		t.Fatalf("unexpected partitions: %+v", f.Lists[0].Partitions)
	}
	pc := f.Lists[0].Partitions[0]
	if !pc.Settings.Actions.DeleteMessage {
		t.Error("expected delete_message action")
	}
	if pc.Settings.Validations.Enabled == nil || !*pc.Settings.Validations.Enabled {
		t.Error("expected enabled validation")
	}
}

func TestLoadBytes_BadVersion(t *testing.T) {
	_, err := LoadBytes([]byte("version: 2\nlists: []\n"))
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("expected version error, got %v", err)
	}
}

func TestLoadBytes_UnknownField(t *testing.T) {
	// A mistyped settings key must fail loudly, not be ignored.
	bad := strings.Replace(validConfig, "delete_message", "delete_mesage", 1)
	if _, err := LoadBytes([]byte(bad)); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestLoadBytes_DuplicateListName(t *testing.T) {
	cfg := `
version: 1
lists:
  - name: tokens
    partitions: []
  - name: tokens
    partitions: []
`
	if _, err := LoadBytes([]byte(cfg)); err == nil {
		t.Error("expected error for duplicate list name")
	}
}

func TestLoadBytes_UnknownListType(t *testing.T) {
	cfg := `
version: 1
lists:
  - name: tokens
    partitions:
      - list_type: graylist
        settings:
          actions: {}
          validations: {}
        filters: []
`
	if _, err := LoadBytes([]byte(cfg)); err == nil {
		t.Error("expected error for unknown list type")
	}
}

func TestLoadBytes_DuplicatePartition(t *testing.T) {
	cfg := `
version: 1
lists:
  - name: tokens
    partitions:
      - list_type: blacklist
        settings: {actions: {}, validations: {}}
        filters: []
      - list_type: denylist
        settings: {actions: {}, validations: {}}
        filters: []
`
	// blacklist and denylist resolve to the same partition type.
	if _, err := LoadBytes([]byte(cfg)); err == nil {
		t.Error("expected error for duplicate deny partition")
	}
}

func TestBuildLists_SkipsMalformedFilters(t *testing.T) {
	cfg := `
version: 1
lists:
  - name: tokens
    partitions:
      - list_type: blacklist
        settings: {actions: {}, validations: {}}
        filters:
          - id: good
            pattern: "spam"
          - id: bad
            kind: regex
            pattern: "("
`
	f, err := LoadBytes([]byte(cfg))
	if err != nil {
		t.Fatal(err)
	}
	lists, err := BuildLists(f, newTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	sub, ok := lists[0].SubList(api.ListTypeDeny)
	if !ok {
		t.Fatal("deny partition missing")
	}
	if len(sub.Filters) != 1 || sub.Filters[0].ID != "good" {
		t.Errorf("expected only the well-formed filter to survive, got %d", len(sub.Filters))
	}
}

func TestAggregationFor(t *testing.T) {
	denyOnly := &ListConfig{Partitions: []PartitionConfig{{ListType: "blacklist"}}}
	if got := aggregationFor(denyOnly); got != "deny" {
		t.Errorf("deny-only list: %q", got)
	}

	withAllow := &ListConfig{Partitions: []PartitionConfig{
		{ListType: "blacklist"},
		{ListType: "whitelist"},
	}}
	if got := aggregationFor(withAllow); got != "allow_override" {
		t.Errorf("list with allow partition: %q", got)
	}

	explicit := &ListConfig{Aggregation: "deny", Partitions: []PartitionConfig{{ListType: "whitelist"}}}
	if got := aggregationFor(explicit); got != "deny" {
		t.Errorf("explicit aggregation: %q", got)
	}
}

func TestLoad_Testdata(t *testing.T) {
	f, err := Load("../../testdata/lists.yaml")
	if err != nil {
		t.Fatal(err)
	}
	lists, err := BuildLists(f, newTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(lists) != 2 {
		t.Fatalf("got %d lists, want 2", len(lists))
	}

	domains := lists[1]
	if _, ok := domains.SubList(api.ListTypeAllow); !ok {
		t.Error("domains list should have an allow partition")
	}
}
