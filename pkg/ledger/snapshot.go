package ledger

import "sort"

// Snapshot is the colony's persisted state for a single cycle.
// It is produced by Client.Load at cycle start, mutated by every phase of every
// mission, and written back by Client.Commit at cycle end. The driver loads a
// fresh Snapshot every cycle; in-process callers may instead advance Tick.
//
// Snapshot is not safe for concurrent use; the cycle model is single-threaded.
type Snapshot struct {
	Tick int64

	missions     map[string]*MissionRecord
	units        map[string]*UnitRecord
	leases       map[string]map[string]string
	deletedUnits map[string]struct{}
	dirtyLeases  map[string]struct{}
}

// NewSnapshot creates an empty snapshot for the given tick.
func NewSnapshot(tick int64) *Snapshot {
	return &Snapshot{
		Tick:         tick,
		missions:     make(map[string]*MissionRecord),
		units:        make(map[string]*UnitRecord),
		leases:       make(map[string]map[string]string),
		deletedUnits: make(map[string]struct{}),
		dirtyLeases:  make(map[string]struct{}),
	}
}

func missionID(operation, name string) string {
	return operation + "\x00" + name
}

// Mission returns the record for a mission, creating an empty one if none is persisted.
func (s *Snapshot) Mission(operation, name string) *MissionRecord {
	id := missionID(operation, name)
	if m, ok := s.missions[id]; ok {
		return m
	}
	m := NewMissionRecord(operation, name)
	s.missions[id] = m
	return m
}

// Missions returns every mission record, sorted by operation then name.
func (s *Snapshot) Missions() []*MissionRecord {
	out := make([]*MissionRecord, 0, len(s.missions))
	for _, m := range s.missions {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Operation != out[j].Operation {
			return out[i].Operation < out[j].Operation
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// HasUnit reports whether a record exists for the named unit.
func (s *Snapshot) HasUnit(name string) bool {
	_, ok := s.units[name]
	return ok
}

// Unit returns the record for the named unit, creating an empty one if none exists.
func (s *Snapshot) Unit(name string) *UnitRecord {
	if u, ok := s.units[name]; ok {
		return u
	}
	u := NewUnitRecord(name)
	s.units[name] = u
	delete(s.deletedUnits, name)
	return u
}

// PutUnit stores a record, replacing any existing record with the same name.
func (s *Snapshot) PutUnit(u *UnitRecord) {
	s.units[u.Name] = u
	delete(s.deletedUnits, u.Name)
}

// DeleteUnit removes the named unit's record. The deletion is written on commit.
func (s *Snapshot) DeleteUnit(name string) {
	delete(s.units, name)
	s.deletedUnits[name] = struct{}{}
}

// UnitNames returns the names of every unit record, sorted.
func (s *Snapshot) UnitNames() []string {
	names := make([]string, 0, len(s.units))
	for name := range s.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lease returns the unit currently registered for role at the facility.
func (s *Snapshot) Lease(facilityID, role string) (string, bool) {
	name, ok := s.leases[facilityID][role]
	return name, ok
}

// SetLease registers unitName as the lease holder for role at the facility.
func (s *Snapshot) SetLease(facilityID, role, unitName string) {
	reg, ok := s.leases[facilityID]
	if !ok {
		reg = make(map[string]string)
		s.leases[facilityID] = reg
	}
	reg[role] = unitName
	s.dirtyLeases[facilityID] = struct{}{}
}

// ClearLease removes the registration for role at the facility.
func (s *Snapshot) ClearLease(facilityID, role string) {
	if reg, ok := s.leases[facilityID]; ok {
		delete(reg, role)
	}
	s.dirtyLeases[facilityID] = struct{}{}
}

// Leases returns a copy of a facility's lease registry.
func (s *Snapshot) Leases(facilityID string) map[string]string {
	out := make(map[string]string, len(s.leases[facilityID]))
	for role, name := range s.leases[facilityID] {
		out[role] = name
	}
	return out
}

// Facilities returns the ids of every facility with a lease registry, sorted.
func (s *Snapshot) Facilities() []string {
	ids := make([]string, 0, len(s.leases))
	for id := range s.leases {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
