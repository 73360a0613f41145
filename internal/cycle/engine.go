// Package cycle drives every mission in the colony through one cycle.
//
// A cycle is strictly phase-barriered: every mission finishes a phase before
// any mission starts the next. Persisted state is loaded once before Init and
// committed once after the last phase. A mission that fails or panics in one
// phase is logged and skipped for the rest of the cycle; the colony cycle
// itself always completes.
package cycle

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/dyluth/warren/internal/mission"
	"github.com/dyluth/warren/internal/operation"
	"github.com/dyluth/warren/internal/world"
	"github.com/dyluth/warren/pkg/ledger"
	"github.com/google/uuid"
)

const (
	DefaultInvalidateInterval = 100
	DefaultErrorLogInterval   = 10
)

// Store loads and commits the colony snapshot and announces completed cycles.
type Store interface {
	Load(ctx context.Context, tick int64) (*ledger.Snapshot, error)
	Commit(ctx context.Context, snap *ledger.Snapshot) error
	PublishCycle(ctx context.Context, ev *ledger.CycleEvent) error
}

// Host supplies the live world for each cycle.
type Host interface {
	Env() *world.Env
	Facilities() []world.Facility
}

// Options tunes the engine. Zero values take the defaults.
type Options struct {
	InvalidateInterval int64
	ErrorLogInterval   int64
}

// Engine runs colony cycles.
type Engine struct {
	store      Store
	host       Host
	colony     string
	operations []*operation.Operation
	opts       Options
	runID      string
}

// Report summarizes one cycle.
type Report struct {
	Tick        int64
	Missions    int
	Failures    int
	Invalidated bool
	Duration    time.Duration
}

// NewEngine creates an engine over the given operations.
func NewEngine(store Store, host Host, colony string, operations []*operation.Operation, opts Options) *Engine {
	if opts.InvalidateInterval <= 0 {
		opts.InvalidateInterval = DefaultInvalidateInterval
	}
	if opts.ErrorLogInterval <= 0 {
		opts.ErrorLogInterval = DefaultErrorLogInterval
	}
	return &Engine{
		store:      store,
		host:       host,
		colony:     colony,
		operations: operations,
		opts:       opts,
		runID:      uuid.New().String(),
	}
}

// Operations returns the operations driven by the engine.
func (e *Engine) Operations() []*operation.Operation {
	return e.operations
}

type entry struct {
	op     *operation.Operation
	m      mission.Mission
	failed bool
}

// RunCycle runs every phase once. Only snapshot load and commit failures are returned.
func (e *Engine) RunCycle(ctx context.Context) (*Report, error) {
	start := time.Now()
	env := e.host.Env()

	snap, err := e.store.Load(ctx, env.Tick)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for tick %d: %w", env.Tick, err)
	}

	facilities := e.host.Facilities()
	var entries []*entry
	for _, op := range e.operations {
		op.ResolveFacility(facilities, env.Map)
		for _, m := range op.Missions() {
			entries = append(entries, &entry{op: op, m: m})
		}
	}

	report := &Report{Tick: env.Tick, Missions: len(entries)}

	e.phase(entries, "init", func(en *entry) error {
		return en.m.Init(&mission.Cycle{
			Snap:             snap,
			Env:              env,
			Facility:         en.op.Facility(),
			ErrorLogInterval: e.opts.ErrorLogInterval,
		})
	})
	e.phase(entries, "role_call", func(en *entry) error { return en.m.RoleCall() })
	e.phase(entries, "actions", func(en *entry) error { return en.m.Actions() })
	e.phase(entries, "finalize", func(en *entry) error { return en.m.Finalize() })
	if env.Tick%e.opts.InvalidateInterval == 0 {
		report.Invalidated = true
		e.phase(entries, "invalidate_cache", func(en *entry) error { return en.m.InvalidateCache() })
	}

	for _, en := range entries {
		if en.failed {
			report.Failures++
		}
	}
	if report.Failures > 0 {
		log.Printf("[Cycle] Failures this cycle: %d", report.Failures)
	}

	if err := e.store.Commit(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot for tick %d: %w", env.Tick, err)
	}

	report.Duration = time.Since(start)
	if err := e.store.PublishCycle(ctx, &ledger.CycleEvent{
		Tick:        report.Tick,
		RunID:       e.runID,
		Missions:    report.Missions,
		Failures:    report.Failures,
		Invalidated: report.Invalidated,
		DurationMs:  report.Duration.Milliseconds(),
	}); err != nil {
		log.Printf("[Cycle] Failed to publish cycle event: %v", err)
	}

	e.logEvent("cycle_complete", map[string]interface{}{
		"tick":        report.Tick,
		"missions":    report.Missions,
		"failures":    report.Failures,
		"invalidated": report.Invalidated,
		"duration_ms": report.Duration.Milliseconds(),
	})
	return report, nil
}

// phase runs fn for every mission that has not failed earlier this cycle.
func (e *Engine) phase(entries []*entry, name string, fn func(*entry) error) {
	for _, en := range entries {
		if en.failed {
			continue
		}
		if err := e.guard(en, name, fn); err != nil {
			en.failed = true
			log.Printf("[Cycle] Mission %s/%s failed in %s: %v", en.op.Name, en.m.Name(), name, err)
			e.logEvent("mission_failed", map[string]interface{}{
				"operation": en.op.Name,
				"mission":   en.m.Name(),
				"phase":     name,
				"error":     err.Error(),
			})
		}
	}
}

func (e *Engine) guard(en *entry, name string, fn func(*entry) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", name, r)
		}
	}()
	return fn(en)
}

// logEvent logs a structured JSON event.
func (e *Engine) logEvent(eventType string, data map[string]interface{}) {
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "cycle"
	data["event_type"] = eventType
	data["colony"] = e.colony
	data["run_id"] = e.runID

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[Cycle] Failed to marshal log event: %v", err)
		return
	}

	log.Println(string(jsonData))
}
