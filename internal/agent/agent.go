// Package agent wraps a live unit handle together with its persisted record.
package agent

import (
	"github.com/dyluth/warren/internal/world"
	"github.com/dyluth/warren/pkg/ledger"
)

// Agent is a live unit plus the record that survives across cycles.
// The embedded Unit is only valid for the current cycle.
type Agent struct {
	world.Unit
	Record *ledger.UnitRecord
}

// New wraps u. The record is normally the snapshot's record for u.Name().
func New(u world.Unit, rec *ledger.UnitRecord) *Agent {
	return &Agent{Unit: u, Record: rec}
}

// Damaged reports whether the unit is below maximum hit points.
func (a *Agent) Damaged() bool {
	return a.Hits() < a.HitsMax()
}

// CanWork reports whether the unit has at least one active work part.
func (a *Agent) CanWork() bool {
	return a.ActiveParts(world.Work) > 0
}

// Ready reports whether the unit has finished production and preparation.
func (a *Agent) Ready() bool {
	return !a.Spawning() && a.Record.Prepared
}

// Replaceable reports whether a successor should be recruited: the unit's
// remaining lifetime has dropped to leadTicks or below. Units still in
// production never count as replaceable.
func (a *Agent) Replaceable(leadTicks int) bool {
	ttl := a.TicksToLive()
	return ttl > 0 && ttl <= leadTicks
}

// HasLoad applies carry hysteresis: the flag drops when the unit is empty and
// rises only once it is full, so a partially loaded unit keeps its current mode.
func (a *Agent) HasLoad() bool {
	capacity := a.CarryCapacity()
	if capacity == 0 {
		return false
	}
	carried := a.Carried()
	if a.Record.HasLoad && carried == 0 {
		a.Record.HasLoad = false
	} else if !a.Record.HasLoad && carried >= capacity {
		a.Record.HasLoad = true
	}
	return a.Record.HasLoad
}

// Partner returns the paired agent if the stored partner is still live.
func (a *Agent) Partner(units world.UnitTable, snap *ledger.Snapshot) (*Agent, bool) {
	if a.Record.Partner == "" {
		return nil, false
	}
	u, ok := units.Lookup(a.Record.Partner)
	if !ok {
		return nil, false
	}
	return New(u, snap.Unit(u.Name())), true
}

// Names returns the unit names of agents, in order.
func Names(agents []*Agent) []string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name()
	}
	return names
}
