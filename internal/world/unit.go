package world

// Part is a body part type.
type Part string

const (
	Work  Part = "work"
	Carry Part = "carry"
	Move  Part = "move"
	Heal  Part = "heal"
)

// Unit is a live unit handle. Handles are only valid for the cycle in which
// they were looked up.
type Unit interface {
	Name() string
	Hits() int
	HitsMax() int
	// TicksToLive is the remaining lifetime. Zero while the unit is still being produced.
	TicksToLive() int
	Spawning() bool
	BodySize() int
	// ActiveParts counts undamaged parts of the given type.
	ActiveParts(p Part) int
	Carried() int
	CarryCapacity() int
	Position() Position

	NotifyWhenAttacked(enabled bool)
	Repair(target Structure) error
}

// UnitTable is the authoritative per-cycle snapshot of which named units exist.
type UnitTable interface {
	Lookup(name string) (Unit, bool)
	// Names returns every live unit name, sorted.
	Names() []string
}
