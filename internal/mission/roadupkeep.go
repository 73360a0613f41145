package mission

import (
	"log"

	"github.com/dyluth/warren/internal/agent"
	"github.com/dyluth/warren/internal/world"
)

// RoadUpkeep paves the route between two points and keeps it repaired with
// the facility's pooled paver.
type RoadUpkeep struct {
	Base
	from, to        *world.Position
	rangeAllowance  int
	ignoreSiteLimit bool

	paver *agent.Agent
	state PaverState
}

// NewRoadUpkeep returns a road mission. A nil from starts at the facility; a
// nil to ends at the anchor.
func NewRoadUpkeep(base Base, from, to *world.Position, rangeAllowance int, ignoreSiteLimit bool) *RoadUpkeep {
	return &RoadUpkeep{
		Base:            base,
		from:            from,
		to:              to,
		rangeAllowance:  rangeAllowance,
		ignoreSiteLimit: ignoreSiteLimit,
	}
}

// Init implements Mission.
func (r *RoadUpkeep) Init(c *Cycle) error {
	r.paver = nil
	r.state = PaverIdle
	return r.Base.Init(c)
}

// RoleCall implements Mission. A paver is only recruited while repairs are
// queued; a paver this mission still holds is kept so it can check out.
func (r *RoadUpkeep) RoleCall() error {
	if r.rec.RepairQueue != nil {
		r.paver = r.LeasePaver()
		return nil
	}
	r.paver = r.HeldLease("paver")
	return nil
}

// Actions implements Mission.
func (r *RoadUpkeep) Actions() error {
	if r.paver == nil {
		return nil
	}
	r.state = r.PaverActions(r.paver)
	return nil
}

// Finalize implements Mission.
func (r *RoadUpkeep) Finalize() error {
	start, ok := r.start()
	if !ok {
		return nil
	}
	finish := r.anchor
	if r.to != nil {
		finish = *r.to
	}
	if n := r.PavePath(start, finish, r.rangeAllowance, r.ignoreSiteLimit); n > 0 {
		log.Printf("[Paver] Route for %s in %s is paved, %d tiles", r.name, r.operation, n)
	}
	return nil
}

// State is the paver state from the last Actions phase.
func (r *RoadUpkeep) State() PaverState {
	return r.state
}

// Paver is the agent leased this cycle, or nil.
func (r *RoadUpkeep) Paver() *agent.Agent {
	return r.paver
}

func (r *RoadUpkeep) start() (world.Position, bool) {
	if r.from != nil {
		return *r.from, true
	}
	if r.facility == nil {
		return world.Position{}, false
	}
	return r.facility.Position(), true
}
