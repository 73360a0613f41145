package simworld

import (
	"fmt"
	"sort"

	"github.com/dyluth/warren/internal/world"
	"github.com/google/uuid"
)

// World is a deterministic colony simulation. It implements world.UnitTable,
// world.Map, world.Structures, world.Navigator, world.Booster and
// world.TaskRunner.
type World struct {
	Tick int64

	units      map[string]*Unit
	structures map[string]*Structure
	facilities map[string]*Facility
	towers     map[string]*Tower
	distances  map[[2]string]int
	hidden     map[string]bool
	hostiles   map[string]bool
	boosts     map[string]bool

	// MobileHealer makes every unit appear to have a healer nearby.
	MobileHealer bool

	// Performed records "<unit>:<role>" for every task run.
	Performed []string
	// Yields records "<unit>:aggressive" or "<unit>:passive".
	Yields []string
	// Idled records units sent off-road.
	Idled []string
	// Foraging records units sent to procure energy.
	Foraging []string
}

// New returns an empty world at tick 1.
func New() *World {
	return &World{
		Tick:       1,
		units:      make(map[string]*Unit),
		structures: make(map[string]*Structure),
		facilities: make(map[string]*Facility),
		towers:     make(map[string]*Tower),
		distances:  make(map[[2]string]int),
		hidden:     make(map[string]bool),
		hostiles:   make(map[string]bool),
		boosts:     make(map[string]bool),
	}
}

// Env returns the cycle environment backed by this world.
func (w *World) Env() *world.Env {
	return &world.Env{
		Tick:       w.Tick,
		Units:      w,
		Map:        w,
		Structures: w,
		Nav:        w,
		Booster:    w,
		Tasks:      w,
	}
}

// AddFacility registers an idle facility with a full energy store.
func (w *World) AddFacility(id string, pos world.Position, maxEnergy, level int) *Facility {
	f := &Facility{
		FacilityID:   id,
		Pos:          pos,
		MaxEnergyCap: maxEnergy,
		Energy:       maxEnergy,
		Idle:         true,
		Average:      1,
		RoomLevel:    level,
		w:            w,
		busyTick:     -1,
	}
	w.facilities[id] = f
	return f
}

// Facility returns a registered facility.
func (w *World) Facility(id string) (*Facility, bool) {
	f, ok := w.facilities[id]
	return f, ok
}

// Facilities returns every registered facility, sorted by id.
func (w *World) Facilities() []world.Facility {
	ids := make([]string, 0, len(w.facilities))
	for id := range w.facilities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]world.Facility, len(ids))
	for i, id := range ids {
		out[i] = w.facilities[id]
	}
	return out
}

// AddUnit places a unit in the world.
func (w *World) AddUnit(u *Unit) *Unit {
	w.units[u.UnitName] = u
	return u
}

// Unit returns the simulated unit by name.
func (w *World) Unit(name string) (*Unit, bool) {
	u, ok := w.units[name]
	return u, ok
}

// Kill removes a unit.
func (w *World) Kill(name string) {
	delete(w.units, name)
}

// AddStructure places a structure with a generated id.
func (w *World) AddStructure(kind world.StructureKind, pos world.Position, hits, hitsMax int) *Structure {
	s := &Structure{
		StructureID: uuid.New().String(),
		Type:        kind,
		HitPoints:   hits,
		MaxHits:     hitsMax,
		Pos:         pos,
	}
	w.structures[s.StructureID] = s
	return s
}

// RemoveStructure destroys a structure.
func (w *World) RemoveStructure(id string) {
	delete(w.structures, id)
}

// AddTower places a stationary healer in a room.
func (w *World) AddTower(room string) *Tower {
	t := &Tower{Room: room}
	w.towers[room] = t
	return t
}

// SetDistance records the room-grid distance between two rooms.
func (w *World) SetDistance(a, b string, d int) {
	w.distances[[2]string{a, b}] = d
	w.distances[[2]string{b, a}] = d
}

// SetVisible toggles visibility of a room. Rooms are visible by default.
func (w *World) SetVisible(room string, visible bool) {
	w.hidden[room] = !visible
}

// SetHostiles toggles hostile presence in a room.
func (w *World) SetHostiles(room string, present bool) {
	w.hostiles[room] = present
}

// StockBoost makes a boost resource available.
func (w *World) StockBoost(resource string) {
	w.boosts[resource] = true
}

// Advance moves the world to the next tick: units in production finish,
// lifetimes count down, expired units are removed and facilities refill.
func (w *World) Advance() {
	w.Tick++
	for name, u := range w.units {
		if u.InSpawn {
			u.InSpawn = false
			continue
		}
		u.TTL--
		if u.TTL <= 0 {
			delete(w.units, name)
		}
	}
	for _, f := range w.facilities {
		f.Energy = f.MaxEnergyCap
	}
}

// Lookup implements world.UnitTable.
func (w *World) Lookup(name string) (world.Unit, bool) {
	u, ok := w.units[name]
	if !ok {
		return nil, false
	}
	return u, true
}

// Names implements world.UnitTable.
func (w *World) Names() []string {
	names := make([]string, 0, len(w.units))
	for name := range w.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LinearDistance implements world.Map. Unset pairs of distinct rooms are one apart.
func (w *World) LinearDistance(a, b string) int {
	if a == b {
		return 0
	}
	if d, ok := w.distances[[2]string{a, b}]; ok {
		return d
	}
	return 1
}

// Visible implements world.Map.
func (w *World) Visible(room string) bool {
	return !w.hidden[room]
}

// Structure implements world.Structures.
func (w *World) Structure(id string) (world.Structure, bool) {
	s, ok := w.structures[id]
	if !ok {
		return nil, false
	}
	return s, true
}

// StructureAt implements world.Structures.
func (w *World) StructureAt(pos world.Position, kind world.StructureKind) (world.Structure, bool) {
	for _, s := range w.sortedStructures() {
		if s.Pos == pos && s.Type == kind {
			return s, true
		}
	}
	return nil, false
}

// HasConstructionSite implements world.Structures.
func (w *World) HasConstructionSite(pos world.Position) bool {
	_, ok := w.StructureAt(pos, world.ConstructionSite)
	return ok
}

// PlaceConstructionSite implements world.Structures.
func (w *World) PlaceConstructionSite(pos world.Position, kind world.StructureKind) error {
	if w.HasConstructionSite(pos) {
		return fmt.Errorf("site already exists at %s", pos)
	}
	if _, ok := w.StructureAt(pos, kind); ok {
		return fmt.Errorf("%s already exists at %s", kind, pos)
	}
	w.AddStructure(world.ConstructionSite, pos, 0, 1)
	return nil
}

// ConstructionSiteCount implements world.Structures.
func (w *World) ConstructionSiteCount() int {
	n := 0
	for _, s := range w.structures {
		if s.Type == world.ConstructionSite {
			n++
		}
	}
	return n
}

// NearestHealer implements world.Structures.
func (w *World) NearestHealer(u world.Unit) (world.Healer, bool) {
	t, ok := w.towers[u.Position().Room]
	if !ok {
		return nil, false
	}
	return t, true
}

// HostilesPresent implements world.Structures.
func (w *World) HostilesPresent(room string) bool {
	return w.hostiles[room]
}

// MobileHealersNear implements world.Structures.
func (w *World) MobileHealersNear(world.Unit) bool {
	return w.MobileHealer
}

// TravelTo implements world.Navigator by teleporting the unit into range.
func (w *World) TravelTo(u world.Unit, target world.Position, opts world.TravelOptions) error {
	su, ok := u.(*Unit)
	if !ok {
		return fmt.Errorf("cannot move %T", u)
	}
	if su.Pos.InRangeTo(target, opts.Range) {
		return nil
	}
	su.Pos = target
	return nil
}

// FindPath implements world.Navigator with a straight-line walk within one room.
// Paths across rooms are reported incomplete.
func (w *World) FindPath(start, finish world.Position, rng int) ([]world.Position, bool) {
	if start.Room != finish.Room {
		return nil, true
	}
	var path []world.Position
	cur := start
	for !cur.InRangeTo(finish, rng) {
		cur.X += sign(finish.X - cur.X)
		cur.Y += sign(finish.Y - cur.Y)
		path = append(path, cur)
	}
	return path, false
}

// IdleOffRoad implements world.Navigator.
func (w *World) IdleOffRoad(u world.Unit, _ world.Position) {
	w.Idled = append(w.Idled, u.Name())
}

// YieldRoad implements world.Navigator.
func (w *World) YieldRoad(u world.Unit, _ world.Position, aggressive bool) {
	mode := "passive"
	if aggressive {
		mode = "aggressive"
	}
	w.Yields = append(w.Yields, u.Name()+":"+mode)
}

// ProcureEnergy implements world.Navigator by filling the unit.
func (w *World) ProcureEnergy(u world.Unit, near world.Position) {
	w.Foraging = append(w.Foraging, u.Name())
	if su, ok := u.(*Unit); ok {
		su.Load = su.CarryCapacity()
		su.Pos = near
	}
}

// Boost implements world.Booster.
func (w *World) Boost(u world.Unit, resource string) (bool, error) {
	if !w.boosts[resource] {
		return false, world.ErrBoostUnavailable
	}
	if su, ok := u.(*Unit); ok {
		su.Boosts = append(su.Boosts, resource)
	}
	return true, nil
}

// Perform implements world.TaskRunner.
func (w *World) Perform(u world.Unit, role string, _ world.Position) error {
	w.Performed = append(w.Performed, u.Name()+":"+role)
	return nil
}

func (w *World) sortedStructures() []*Structure {
	out := make([]*Structure, 0, len(w.structures))
	for _, s := range w.structures {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StructureID < out[j].StructureID })
	return out
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
