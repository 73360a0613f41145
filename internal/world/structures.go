package world

// StructureKind identifies a structure type.
type StructureKind string

const (
	Road             StructureKind = "road"
	ConstructionSite StructureKind = "site"
)

// Structure is a placed structure with hit points.
type Structure interface {
	ID() string
	Kind() StructureKind
	Hits() int
	HitsMax() int
	Position() Position
}

// Structures resolves structures and construction sites.
type Structures interface {
	// Structure resolves an id. ok is false once the structure is destroyed.
	Structure(id string) (Structure, bool)
	StructureAt(pos Position, kind StructureKind) (Structure, bool)
	HasConstructionSite(pos Position) bool
	PlaceConstructionSite(pos Position, kind StructureKind) error
	// ConstructionSiteCount is the colony-wide count of pending sites.
	ConstructionSiteCount() int
	// NearestHealer returns a stationary healing source in range of the unit.
	NearestHealer(u Unit) (Healer, bool)
	HostilesPresent(room string) bool
	// MobileHealersNear reports whether a friendly unit that can heal is near u.
	MobileHealersNear(u Unit) bool
}

// Healer is a stationary healing source.
type Healer interface {
	Heal(u Unit) error
}
