package world

import "errors"

// ErrBoostUnavailable is returned by a Booster that cannot supply a resource.
var ErrBoostUnavailable = errors.New("boost unavailable")

// Lifetime is the natural lifespan of a unit in ticks.
const Lifetime = 1500

// Env bundles the collaborators available to a mission for one cycle.
type Env struct {
	Tick       int64
	Units      UnitTable
	Map        Map
	Structures Structures
	Nav        Navigator
	Booster    Booster
	Tasks      TaskRunner

	// PlacedRoad is set once a road site has been placed this cycle.
	PlacedRoad bool
}
