package mission

import (
	"log"

	"github.com/dyluth/warren/internal/agent"
	"github.com/dyluth/warren/internal/body"
	"github.com/dyluth/warren/internal/world"
)

const (
	// PaveInterval is the minimum number of cycles between path scans.
	PaveInterval = 1000
	// MaxPaveRooms is the furthest apart, in rooms, the ends of a paved path may be.
	MaxPaveRooms = 2
	// MaxConstructionSites stops road placement while the colony has this many sites pending.
	MaxConstructionSites = 60
	// RepairBacklogThreshold summons a paver once this much damage has accumulated along a path.
	RepairBacklogThreshold = 1_000_000
	// CriticalHitsFraction summons a paver once any road falls below this share of its maximum.
	CriticalHitsFraction = 0.2

	yieldAggressiveHits = 10_000
	yieldPassiveHits    = 1_500
	repairRange         = 3
)

// PaverState is the road maintenance state a paver acted in this cycle.
type PaverState int

const (
	PaverIdle PaverState = iota
	PaverHealing
	PaverForaging
	PaverTraveling
	PaverRepairing
	PaverRetiring
)

func (s PaverState) String() string {
	switch s {
	case PaverHealing:
		return "healing"
	case PaverForaging:
		return "foraging"
	case PaverTraveling:
		return "traveling"
	case PaverRepairing:
		return "repairing"
	case PaverRetiring:
		return "retiring"
	}
	return "idle"
}

// PaverBody is the ratio used for pooled pavers.
var PaverBody = body.RatioSpec{Work: 1, Carry: 3, Move: 2, Fraction: 1, Limit: 5}

// LeasePaver claims the pooled paver for the mission's facility. Facilities
// serving a level 1 room never field a paver.
func (b *Base) LeasePaver() *agent.Agent {
	if b.facility == nil || b.facility.Level() == 1 {
		return nil
	}
	maxEnergy := b.facility.MaxEnergy()
	return b.LeaseShared("paver", func() []world.Part {
		return body.Ratio(PaverBody, maxEnergy)
	})
}

// NextRepairTarget returns the head of the repair queue, discarding entries
// that are destroyed or already at full health. The queue is cleared once it
// runs out.
func (b *Base) NextRepairTarget() world.Structure {
	rec := b.rec
	if rec.RepairQueue == nil {
		return nil
	}
	for len(rec.RepairQueue) > 0 {
		s, ok := b.env.Structures.Structure(rec.RepairQueue[0])
		if ok && s.Hits() < s.HitsMax() {
			return s
		}
		rec.RepairQueue = rec.RepairQueue[1:]
	}
	rec.RepairQueue = nil
	return nil
}

// PavePath scans the path from start to finish at most once per PaveInterval
// cycles. Missing road tiles get a construction site, one per cycle across the
// colony; damaged roads seed the repair queue once a severity threshold trips.
// It returns the path length once the path is fully paved and reaches finish,
// and zero otherwise.
func (b *Base) PavePath(start, finish world.Position, rangeAllowance int, ignoreLimit bool) int {
	if b.rec.PaveTick != 0 && b.env.Tick-b.rec.PaveTick < PaveInterval {
		return 0
	}
	if b.env.Map.LinearDistance(start.Room, finish.Room) > MaxPaveRooms {
		log.Printf("[Paver] Path too long: %s to %s", start.Room, finish.Room)
		return 0
	}

	path, incomplete := b.env.Nav.FindPath(start, finish, rangeAllowance)
	if incomplete {
		log.Printf("[Paver] Incomplete path in %s from %s to %s, mission %s", b.operation, start, finish, b.name)
		return 0
	}

	missing, found := b.examinePavedPath(path)
	if found && (ignoreLimit || b.env.Structures.ConstructionSiteCount() < MaxConstructionSites) {
		if !b.env.PlacedRoad {
			b.env.PlacedRoad = true
			if err := b.env.Structures.PlaceConstructionSite(missing, world.Road); err != nil {
				log.Printf("[Paver] Failed to place road at %s in %s: %v", missing, b.operation, err)
			} else {
				log.Printf("[Paver] Placed road %s in %s", missing, b.operation)
			}
		}
		return 0
	}

	b.rec.PaveTick = b.env.Tick
	last := start
	if len(path) > 0 {
		last = path[len(path)-1]
	}
	if last.InRangeTo(finish, rangeAllowance) {
		return len(path)
	}
	return 0
}

// examinePavedPath walks the path, returning the first tile with neither a
// road nor a construction site. Roads seen so far are queued for repair when
// damage is severe and no queue is active. Tiles on room edges are skipped.
// An unseen room ends the walk.
func (b *Base) examinePavedPath(path []world.Position) (world.Position, bool) {
	var (
		roadIDs  []string
		damage   int
		summoned = b.rec.RepairQueue != nil
		seeding  bool
	)
	defer func() {
		if seeding {
			b.rec.RepairQueue = roadIDs
		}
	}()

	for _, pos := range path {
		if !b.env.Map.Visible(pos.Room) {
			return world.Position{}, false
		}
		if pos.IsNearExit(0) {
			continue
		}
		if road, ok := b.env.Structures.StructureAt(pos, world.Road); ok {
			roadIDs = append(roadIDs, road.ID())
			damage += road.HitsMax() - road.Hits()
			if !summoned && (damage > RepairBacklogThreshold || float64(road.Hits()) < float64(road.HitsMax())*CriticalHitsFraction) {
				log.Printf("[Paver] Summoned in %s", b.operation)
				summoned = true
				seeding = true
			}
			continue
		}
		if b.env.Structures.HasConstructionSite(pos) {
			continue
		}
		return pos, true
	}
	return world.Position{}, false
}

// PaverActions drives one cycle of the road maintenance state machine.
func (b *Base) PaverActions(p *agent.Agent) PaverState {
	if p.Spawning() {
		return PaverIdle
	}

	if p.Damaged() {
		pos := p.Position()
		if !b.env.Structures.HostilesPresent(pos.Room) && !pos.IsNearExit(0) {
			if healer, ok := b.env.Structures.NearestHealer(p.Unit); ok {
				if err := healer.Heal(p.Unit); err != nil {
					log.Printf("[Paver] Healing %s failed: %v", p.Name(), err)
				}
				return PaverHealing
			}
		}
		if b.env.Structures.MobileHealersNear(p.Unit) {
			b.env.Nav.IdleOffRoad(p.Unit, b.anchor)
			return PaverHealing
		}
		if !p.CanWork() {
			b.travel(p, b.homePosition(), 1)
			return PaverHealing
		}
	}

	road := b.NextRepairTarget()
	if road == nil {
		log.Printf("[Paver] %s paver %s checking out with %d ticks to live", b.operation, p.Name(), p.TicksToLive())
		b.snap.DeleteUnit(p.Name())
		b.ReleaseLease(p.Name())
		b.env.Nav.IdleOffRoad(p.Unit, b.anchor)
		return PaverRetiring
	}

	if !p.HasLoad() {
		b.env.Nav.ProcureEnergy(p.Unit, road.Position())
		return PaverForaging
	}

	state := PaverTraveling
	paving := false
	pos := p.Position()
	if pos.InRangeTo(road.Position(), repairRange) && !pos.IsNearExit(0) {
		state = PaverRepairing
		paving = p.Repair(road) == nil
		left := road.HitsMax() - road.Hits()
		if left > yieldAggressiveHits {
			b.env.Nav.YieldRoad(p.Unit, road.Position(), true)
		} else if left > yieldPassiveHits {
			b.env.Nav.YieldRoad(p.Unit, road.Position(), false)
		}
	} else {
		b.travel(p, road.Position(), 0)
	}

	if !paving {
		if under, ok := b.env.Structures.StructureAt(p.Position(), world.Road); ok && under.Hits() < under.HitsMax() {
			if err := p.Repair(under); err != nil {
				log.Printf("[Paver] %s could not repair road under it at %s: %v", p.Name(), under.Position(), err)
			}
		}
	}
	return state
}

func (b *Base) travel(a *agent.Agent, target world.Position, rng int) {
	if err := b.env.Nav.TravelTo(a.Unit, target, world.TravelOptions{Range: rng}); err != nil {
		log.Printf("[Paver] %s could not travel to %s: %v", a.Name(), target, err)
	}
}

func (b *Base) homePosition() world.Position {
	if b.facility != nil {
		return b.facility.Position()
	}
	return b.anchor
}
