// Package mission implements workforce controllers.
//
// A mission owns a subtask of an operation and keeps it staffed. Every mission
// implements the same five-phase contract, driven once per cycle by the cycle
// package: Init, RoleCall, Actions, Finalize and, periodically,
// InvalidateCache. All mission state that must outlive a cycle lives in the
// ledger snapshot; anything held on the Go value is rebuilt in Init.
package mission

import (
	"fmt"
	"log"

	"github.com/dyluth/warren/internal/agent"
	"github.com/dyluth/warren/internal/world"
	"github.com/dyluth/warren/pkg/ledger"
)

// Mission is the lifecycle contract every mission variant implements.
type Mission interface {
	Name() string
	Operation() string
	Init(c *Cycle) error
	RoleCall() error
	Actions() error
	Finalize() error
	InvalidateCache() error
}

// Cycle carries the per-cycle inputs handed to a mission in Init.
type Cycle struct {
	Snap *ledger.Snapshot
	Env  *world.Env
	// Facility is the production facility serving the mission this cycle, or nil.
	Facility world.Facility
	// ErrorLogInterval samples unexpected facility failures; zero logs every one.
	ErrorLogInterval int64
}

// Base holds the machinery shared by every variant: headcount, lease pool,
// partner pairing and road maintenance.
type Base struct {
	operation    string
	name         string
	anchor       world.Position
	allowRecruit bool

	// Bound in Init, valid for one cycle.
	snap         *ledger.Snapshot
	env          *world.Env
	facility     world.Facility
	rec          *ledger.MissionRecord
	hasVision    bool
	errInterval  int64
	pending      map[string][]string
	pairing      map[string][]*agent.Agent
	pairingOrder []string
}

// NewBase returns the shared state for a mission. allowRecruit false keeps the
// mission from ever requesting new units.
func NewBase(operation, name string, anchor world.Position, allowRecruit bool) Base {
	return Base{
		operation:    operation,
		name:         name,
		anchor:       anchor,
		allowRecruit: allowRecruit,
	}
}

func (b *Base) Name() string      { return b.name }
func (b *Base) Operation() string { return b.operation }

// Anchor is the position the mission's work is bound to.
func (b *Base) Anchor() world.Position { return b.anchor }

// Record is the mission's persisted record for the current cycle.
func (b *Base) Record() *ledger.MissionRecord { return b.rec }

// Facility is the production facility bound for the current cycle.
func (b *Base) Facility() world.Facility { return b.facility }

// HasVision reports whether the anchor room is visible this cycle.
func (b *Base) HasVision() bool { return b.hasVision }

// Init binds the mission to the cycle and resets all cycle-scoped state.
func (b *Base) Init(c *Cycle) error {
	if c == nil || c.Snap == nil || c.Env == nil {
		return fmt.Errorf("mission %s/%s: cycle is incomplete", b.operation, b.name)
	}
	b.snap = c.Snap
	b.env = c.Env
	b.facility = c.Facility
	b.errInterval = c.ErrorLogInterval
	b.rec = c.Snap.Mission(b.operation, b.name)
	b.hasVision = c.Env.Map.Visible(b.anchor.Room)
	b.pending = make(map[string][]string)
	b.pairing = make(map[string][]*agent.Agent)
	b.pairingOrder = nil

	if b.rec.DistanceToFacility == 0 && b.facility != nil {
		b.rec.DistanceToFacility = b.travelDistance(b.facility.Position(), b.anchor)
	}
	return nil
}

// InvalidateCache drops cached values so they are recomputed next cycle.
func (b *Base) InvalidateCache() error {
	if b.rec != nil && b.rec.DistanceToFacility != 0 {
		log.Printf("[Mission] Resetting facility distance for %s in %s", b.name, b.operation)
		b.rec.DistanceToFacility = 0
	}
	return nil
}

// SetBoost toggles boost seeding for new recruits and returns an operator message.
func SetBoost(rec *ledger.MissionRecord, enabled bool) string {
	old := rec.BoostEnabled
	rec.BoostEnabled = enabled
	return fmt.Sprintf("changing boost activation for %s in %s from %t to %t", rec.Name, rec.Operation, old, enabled)
}

// SetMax overrides the mission's desired count and returns an operator message.
func SetMax(rec *ledger.MissionRecord, n int) string {
	old := "unset"
	if rec.Max != nil {
		old = fmt.Sprint(*rec.Max)
	}
	rec.Max = &n
	return fmt.Sprintf("changing max units for %s in %s from %s to %d", rec.Name, rec.Operation, old, n)
}

// RegisterPrespawn measures the prespawn interval from the first agent seen:
// the ticks it took to reach the work site, floored at half a lifetime.
func (b *Base) RegisterPrespawn(a *agent.Agent) {
	if a.Record.Registered || a.Spawning() {
		return
	}
	a.Record.Registered = true
	b.rec.Prespawn = max(world.Lifetime-a.TicksToLive(), world.Lifetime/2)
	b.rec.Registered = true
}

// employer identifies this mission as a lease holder.
func (b *Base) employer() string {
	return b.operation + "/" + b.name
}

// travelDistance estimates tiles between two positions. Rooms are 50 tiles across.
func (b *Base) travelDistance(from, to world.Position) int {
	if from.Room == to.Room {
		return from.RangeTo(to)
	}
	return b.env.Map.LinearDistance(from.Room, to.Room) * world.RoomSize
}

// logSampled logs an unexpected failure at most once per error log interval.
func (b *Base) logSampled(format string, args ...any) {
	if b.errInterval > 0 && b.env.Tick%b.errInterval != 0 {
		return
	}
	log.Printf(format, args...)
}

var (
	_ Mission = (*Staffing)(nil)
	_ Mission = (*RoadUpkeep)(nil)
)
