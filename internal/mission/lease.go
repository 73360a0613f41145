package mission

import (
	"errors"
	"fmt"
	"log"

	"github.com/dyluth/warren/internal/agent"
	"github.com/dyluth/warren/internal/world"
)

// LeaseRange is the furthest, in rooms, a leased unit may be from its facility.
const LeaseRange = 3

// LeaseShared claims the pooled unit registered for role at the mission's
// facility. A lease is renewed when this mission already employs the unit or
// nobody has renewed it since the previous cycle. A dead or out-of-range lease
// holder is cleared, and a replacement is recruited when the facility is free.
//
// A holder recruited this cycle that the host does not show yet is treated as
// held, so a second requester neither clears it nor recruits a duplicate.
//
// Two missions asking in the same cycle race; the later writer loses because
// the first renewal stamps the current tick. No further tie-break is applied.
func (b *Base) LeaseShared(role string, bodyFn BodyFunc) *agent.Agent {
	f := b.facility
	if f == nil {
		return nil
	}
	employer := b.employer()
	tick := b.env.Tick

	if name, ok := b.snap.Lease(f.ID(), role); ok {
		if b.leasePending(name) {
			// Recruited this cycle and not yet visible.
			return nil
		}
		u, live := b.env.Units.Lookup(name)
		if live && b.env.Map.LinearDistance(f.Room(), u.Position().Room) <= LeaseRange {
			rec := b.snap.Unit(name)
			if rec.Employer == employer || rec.LastEmployed == 0 || tick-rec.LastEmployed > 1 {
				if rec.Employer != employer {
					log.Printf("[Lease] %s %s now employed by %s (was %q)", role, name, employer, rec.Employer)
				}
				rec.Employer = employer
				rec.LastEmployed = tick
				return agent.New(u, rec)
			}
			// Held by another mission this cycle.
			return nil
		}
		b.dropLease(role, name)
	}

	if !f.Available() {
		return nil
	}
	parts := bodyFn()
	if len(parts) == 0 {
		return nil
	}

	name := b.sharedName(role)
	out, err := f.Recruit(world.RecruitRequest{Body: parts, Name: name})
	if err != nil {
		if !errors.Is(err, world.ErrNotEnoughEnergy) {
			b.logSampled("[Lease] Error recruiting shared %s in %s: %v", role, b.operation, err)
		}
		return nil
	}

	rec := b.snap.Unit(out)
	rec.Employer = employer
	rec.LastEmployed = tick
	b.snap.SetLease(f.ID(), role, out)
	log.Printf("[Lease] Recruiting shared %s %s at %s for %s", role, out, f.ID(), employer)
	return nil
}

// HeldLease returns the pooled unit registered for role when this mission
// already employs it, renewing the lease. It never recruits. A registered
// unit that is no longer live, or has left range, is cleared whoever employs it.
func (b *Base) HeldLease(role string) *agent.Agent {
	f := b.facility
	if f == nil {
		return nil
	}
	name, ok := b.snap.Lease(f.ID(), role)
	if !ok || b.leasePending(name) {
		return nil
	}
	u, live := b.env.Units.Lookup(name)
	if !live || b.env.Map.LinearDistance(f.Room(), u.Position().Room) > LeaseRange {
		b.dropLease(role, name)
		return nil
	}
	if !b.snap.HasUnit(name) {
		return nil
	}
	rec := b.snap.Unit(name)
	if rec.Employer != b.employer() {
		return nil
	}
	rec.LastEmployed = b.env.Tick
	return agent.New(u, rec)
}

// leasePending reports whether name was registered this cycle but the host
// does not show it yet.
func (b *Base) leasePending(name string) bool {
	if _, live := b.env.Units.Lookup(name); live {
		return false
	}
	return b.snap.HasUnit(name) && b.snap.Unit(name).LastEmployed == b.env.Tick
}

func (b *Base) dropLease(role, name string) {
	log.Printf("[Lease] Releasing %s %s at %s: no longer live or in range", role, name, b.facility.ID())
	b.snap.DeleteUnit(name)
	b.snap.ClearLease(b.facility.ID(), role)
}

// sharedName returns community_<role>, suffixed with the first free ordinal if taken.
func (b *Base) sharedName(role string) string {
	name := "community_" + role
	for n := 1; b.nameTaken(name); n++ {
		name = fmt.Sprintf("community_%s_%d", role, n)
	}
	return name
}

func (b *Base) nameTaken(name string) bool {
	if _, live := b.env.Units.Lookup(name); live {
		return true
	}
	return b.snap.HasUnit(name)
}

// ReleaseLease drops any registration naming unitName at the mission's facility.
func (b *Base) ReleaseLease(unitName string) {
	if b.facility == nil {
		return
	}
	id := b.facility.ID()
	for role, name := range b.snap.Leases(id) {
		if name == unitName {
			b.snap.ClearLease(id, role)
			log.Printf("[Lease] %s released from %s at %s", unitName, role, id)
		}
	}
}
