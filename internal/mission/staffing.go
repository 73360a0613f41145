package mission

import (
	"log"

	"github.com/dyluth/warren/internal/agent"
	"github.com/dyluth/warren/internal/body"
	"github.com/dyluth/warren/internal/world"
)

// RoleSpec describes one staffed role.
type RoleSpec struct {
	Name  string
	Count int
	// Fixed is used when set; otherwise Ratio is scaled to the facility's energy.
	Fixed []body.Segment
	Ratio *body.RatioSpec

	// Prespawn is the lead time for successors. When nil the cached distance
	// to the facility is used, or the measured interval if MeasurePrespawn is set.
	Prespawn        *int
	MeasurePrespawn bool

	Pair           bool
	Boosts         []string
	AllowUnboosted bool
	DisableNotify  bool
	SkipMoveToRoom bool
	BlindRecruit   bool
	Reservation    *world.Reservation
}

// Body builds the role's body for a facility with maxEnergy.
func (r RoleSpec) Body(maxEnergy int) []world.Part {
	if len(r.Fixed) > 0 {
		return body.Fixed(r.Fixed...)
	}
	if r.Ratio != nil {
		return body.Ratio(*r.Ratio, maxEnergy)
	}
	return nil
}

// Staffing keeps a set of roles at their configured counts and hands ready
// agents to the task runner.
type Staffing struct {
	Base
	roles  []RoleSpec
	agents map[string][]*agent.Agent
}

// NewStaffing returns a staffing mission for the given roles, in order.
func NewStaffing(base Base, roles []RoleSpec) *Staffing {
	return &Staffing{Base: base, roles: roles}
}

// Init implements Mission.
func (s *Staffing) Init(c *Cycle) error {
	s.agents = make(map[string][]*agent.Agent)
	return s.Base.Init(c)
}

// RoleCall implements Mission.
func (s *Staffing) RoleCall() error {
	for _, role := range s.roles {
		s.agents[role.Name] = s.HeadCount(role.Name, s.bodyFor(role), countOf(role.Count), s.optionsFor(role))
		if role.Pair {
			s.FindPartnerships(s.agents[role.Name], role.Name)
		}
		if role.MeasurePrespawn {
			for _, a := range s.agents[role.Name] {
				s.RegisterPrespawn(a)
			}
		}
	}
	return nil
}

// Actions implements Mission.
func (s *Staffing) Actions() error {
	if s.env.Tasks == nil {
		return nil
	}
	for _, role := range s.roles {
		for _, a := range s.agents[role.Name] {
			if !a.Ready() {
				continue
			}
			if err := s.env.Tasks.Perform(a.Unit, role.Name, s.anchor); err != nil {
				log.Printf("[Mission] %s failed %s task in %s: %v", a.Name(), role.Name, s.operation, err)
			}
		}
	}
	return nil
}

// Finalize implements Mission.
func (s *Staffing) Finalize() error {
	return nil
}

// Agents returns the prepared agents for role as of the last RoleCall.
func (s *Staffing) Agents(role string) []*agent.Agent {
	return s.agents[role]
}

func (s *Staffing) bodyFor(role RoleSpec) BodyFunc {
	return func() []world.Part {
		if s.facility == nil {
			return nil
		}
		return role.Body(s.facility.MaxEnergy())
	}
}

func (s *Staffing) optionsFor(role RoleSpec) HeadCountOptions {
	prespawn := s.rec.DistanceToFacility
	switch {
	case role.MeasurePrespawn:
		prespawn = s.rec.Prespawn
	case role.Prespawn != nil:
		prespawn = *role.Prespawn
	}
	return HeadCountOptions{
		Prespawn:       &prespawn,
		DisableNotify:  role.DisableNotify,
		SkipMoveToRoom: role.SkipMoveToRoom,
		BlindRecruit:   role.BlindRecruit,
		Reservation:    role.Reservation,
		Boosts:         role.Boosts,
		AllowUnboosted: role.AllowUnboosted,
	}
}

func countOf(n int) CountFunc {
	return func() int { return n }
}
