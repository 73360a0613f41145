package simworld

import (
	"fmt"

	"github.com/dyluth/warren/internal/world"
)

// Unit is a simulated unit. Fields are exported so tests can stage scenarios.
type Unit struct {
	UnitName  string
	Body      []world.Part
	HitPoints int
	MaxHits   int
	TTL       int
	InSpawn   bool
	Load      int
	Pos       world.Position

	NotifyDisabled bool
	Boosts         []string
	Repairs        int
}

// NewUnit returns a fully built unit at pos with the given body.
func NewUnit(name string, body []world.Part, pos world.Position) *Unit {
	return &Unit{
		UnitName:  name,
		Body:      body,
		HitPoints: len(body) * 100,
		MaxHits:   len(body) * 100,
		TTL:       world.Lifetime,
		Pos:       pos,
	}
}

func (u *Unit) Name() string             { return u.UnitName }
func (u *Unit) Hits() int                { return u.HitPoints }
func (u *Unit) HitsMax() int             { return u.MaxHits }
func (u *Unit) Spawning() bool           { return u.InSpawn }
func (u *Unit) BodySize() int            { return len(u.Body) }
func (u *Unit) Carried() int             { return u.Load }
func (u *Unit) Position() world.Position { return u.Pos }

func (u *Unit) TicksToLive() int {
	if u.InSpawn {
		return 0
	}
	return u.TTL
}

func (u *Unit) ActiveParts(p world.Part) int {
	n := 0
	for _, part := range u.Body {
		if part == p {
			n++
		}
	}
	return n
}

func (u *Unit) CarryCapacity() int {
	return u.ActiveParts(world.Carry) * 50
}

func (u *Unit) NotifyWhenAttacked(enabled bool) {
	u.NotifyDisabled = !enabled
}

// Repair spends one energy per work part and restores 100 hits per work part.
func (u *Unit) Repair(target world.Structure) error {
	s, ok := target.(*Structure)
	if !ok {
		return fmt.Errorf("cannot repair %T", target)
	}
	work := u.ActiveParts(world.Work)
	if work == 0 {
		return fmt.Errorf("%s has no work parts", u.UnitName)
	}
	if u.Load == 0 {
		return fmt.Errorf("%s is empty", u.UnitName)
	}
	if !u.Pos.InRangeTo(s.Pos, 3) {
		return fmt.Errorf("%s is not in range of %s", u.UnitName, s.StructureID)
	}
	u.Load = max(0, u.Load-work)
	s.HitPoints = min(s.MaxHits, s.HitPoints+work*100)
	u.Repairs++
	return nil
}
