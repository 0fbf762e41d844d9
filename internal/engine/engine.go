// Package engine is the dispatch front of chatguard: it holds an immutable
// snapshot of the configured filter lists, evaluates events against it, and
// swaps in new snapshots on reload without disturbing in-flight evaluations.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/tkingovr/chatguard/api"
	"github.com/tkingovr/chatguard/internal/action"
	"github.com/tkingovr/chatguard/internal/audit"
	"github.com/tkingovr/chatguard/internal/config"
	"github.com/tkingovr/chatguard/internal/list"
)

// Snapshot is one immutable configuration generation. Evaluations that
// started on a snapshot finish on it even if a reload swaps in a new one.
type Snapshot struct {
	Config *config.File
	Lists  []*list.List
}

// Config holds the dependencies for constructing an Engine.
type Config struct {
	Logger *slog.Logger
	Store  audit.Store // optional; nil disables decision auditing
	Path   string      // config file path, used by Reload and Watch
}

// Engine evaluates events against the current snapshot.
type Engine struct {
	logger   *slog.Logger
	store    audit.Store
	path     string
	snapshot atomic.Pointer[Snapshot]
}

// New creates an engine. If cfg.Path is set the configuration is loaded
// immediately.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		logger: logger,
		store:  cfg.Store,
		path:   cfg.Path,
	}
	if cfg.Path != "" {
		if err := e.Reload(context.Background()); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Reload rebuilds the snapshot from the config file and atomically swaps it
// in. On failure the previous snapshot stays active.
func (e *Engine) Reload(_ context.Context) error {
	if e.path == "" {
		return fmt.Errorf("engine has no config path to reload from")
	}
	f, err := config.Load(e.path)
	if err != nil {
		return err
	}
	return e.install(f)
}

// LoadBytes builds and installs a snapshot from raw YAML configuration.
func (e *Engine) LoadBytes(data []byte) error {
	f, err := config.LoadBytes(data)
	if err != nil {
		return err
	}
	return e.install(f)
}

func (e *Engine) install(f *config.File) error {
	lists, err := config.BuildLists(f, e.logger)
	if err != nil {
		return err
	}

	snap := &Snapshot{Config: f, Lists: lists}
	e.snapshot.Store(snap)
	reloadsTotal.Inc()
	filtersDropped.Add(float64(droppedFilters(f, lists)))

	e.logger.Info("configuration installed", "lists", len(lists))
	return nil
}

// Snapshot returns the current configuration generation, or nil before the
// first successful load.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Evaluate dispatches one event against every list in the current snapshot
// and returns the decision record. The record is audited when a store is
// configured.
func (e *Engine) Evaluate(ctx context.Context, ev *api.Event) (*api.DecisionRecord, error) {
	snap := e.snapshot.Load()
	if snap == nil {
		return nil, fmt.Errorf("engine has no configuration loaded")
	}

	rec := &api.DecisionRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		MessageID: ev.MessageID,
		ChannelID: ev.ChannelID,
		AuthorID:  ev.AuthorID,
	}

	for _, l := range snap.Lists {
		triggered, err := l.Triggered(ev)
		if err != nil {
			return nil, err
		}
		actions, msg := l.Aggregate(triggered)
		if actions == nil && msg == "" {
			continue
		}

		for _, t := range api.ListTypes() {
			if len(triggered[t]) > 0 {
				triggeredTotal.WithLabelValues(l.Name(), string(t)).Inc()
			}
		}
		rec.Decisions = append(rec.Decisions, api.ListDecision{
			List:    l.Name(),
			Filters: filterIDs(triggered),
			Message: msg,
			Actions: action.Marshal(actions),
		})
	}
	rec.Triggered = len(rec.Decisions) > 0
	eventsTotal.Inc()

	if e.store != nil {
		if err := e.store.Write(ctx, rec); err != nil {
			e.logger.Error("writing decision record", "error", err)
		}
	}
	return rec, nil
}

func filterIDs(triggered map[api.ListType][]*list.Filter) []string {
	var ids []string
	for _, t := range api.ListTypes() {
		for _, f := range triggered[t] {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// droppedFilters counts filter definitions that did not survive the build.
func droppedFilters(f *config.File, lists []*list.List) int {
	configured := 0
	for _, lc := range f.Lists {
		for _, pc := range lc.Partitions {
			configured += len(pc.Filters)
		}
	}
	built := 0
	for _, l := range lists {
		for _, t := range api.ListTypes() {
			if sub, ok := l.SubList(t); ok {
				built += len(sub.Filters)
			}
		}
	}
	return configured - built
}
