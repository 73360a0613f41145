package world

// Map answers questions about room topology and visibility.
type Map interface {
	// LinearDistance is the room-grid distance between two rooms.
	LinearDistance(roomA, roomB string) int
	Visible(room string) bool
}

// TravelOptions tunes a TravelTo call.
type TravelOptions struct {
	Range        int
	AvoidHazards bool
	MovingTarget bool
}

// Navigator is the opaque travel and path-building primitive.
type Navigator interface {
	TravelTo(u Unit, target Position, opts TravelOptions) error
	// FindPath returns positions from start to within rng of finish. incomplete
	// is true when the search gave up before reaching the goal.
	FindPath(start, finish Position, rng int) (path []Position, incomplete bool)
	IdleOffRoad(u Unit, anchor Position)
	// YieldRoad steps u off the road near target; aggressive yielding also
	// pushes other units aside.
	YieldRoad(u Unit, target Position, aggressive bool)
	// ProcureEnergy moves u toward a resource source near the given position.
	ProcureEnergy(u Unit, near Position)
}

// Booster applies resource boosts to units.
type Booster interface {
	// Boost applies resource to u. done reports the boost is now in place; an
	// error of ErrBoostUnavailable means the colony cannot supply it.
	Boost(u Unit, resource string) (done bool, err error)
}

// TaskRunner performs role-specific work for a staffed unit.
type TaskRunner interface {
	Perform(u Unit, role string, anchor Position) error
}
