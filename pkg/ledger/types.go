package ledger

import "fmt"

// MissionRecord is the persisted state of one mission.
// A mission is constructed once per owning operation and rehydrated from this
// record every cycle.
type MissionRecord struct {
	Operation string              `json:"operation"` // Owning operation name
	Name      string              `json:"name"`      // Mission name, unique within the operation
	Roster    map[string][]string `json:"roster"`    // role → ordered unit names; a missing role means "scan for orphans"

	BoostEnabled bool `json:"boost_enabled"`          // Seed configured boosts into new recruits
	Max          *int `json:"max,omitempty"`          // Target-max override; nil means use the mission's own count
	Prespawn     int  `json:"prespawn"`               // Ticks of lead time before a unit's expiry to recruit its successor
	NextOrdinal  int  `json:"next_ordinal"`           // Next recruit name disambiguator
	Registered   bool `json:"registered,omitempty"`   // Prespawn measured from a first agent

	RepairQueue        []string `json:"repair_queue,omitempty"`         // Structure ids awaiting repair, head first; nil when no repair is needed
	PaveTick           int64    `json:"pave_tick"`                      // Tick of the last completed path scan
	DistanceToFacility int      `json:"distance_to_facility,omitempty"` // Cached travel distance to the production facility
}

// NewMissionRecord returns an empty record for the given mission.
func NewMissionRecord(operation, name string) *MissionRecord {
	return &MissionRecord{
		Operation: operation,
		Name:      name,
		Roster:    make(map[string][]string),
	}
}

// Validate checks the record's identity fields.
func (m *MissionRecord) Validate() error {
	if m.Operation == "" {
		return fmt.Errorf("mission record: operation is required")
	}
	if m.Name == "" {
		return fmt.Errorf("mission record: name is required")
	}
	return nil
}

// HasRoster reports whether a roster has been initialized for role.
func (m *MissionRecord) HasRoster(role string) bool {
	_, ok := m.Roster[role]
	return ok
}

// UnitRecord is the persisted per-unit record.
// It is created when a mission recruits a unit and deleted the cycle the unit
// is found missing from the live-unit table.
type UnitRecord struct {
	Name string `json:"name"`

	Prepared       bool     `json:"prepared"`                  // One-time preparation complete
	NotifyDisabled bool     `json:"notify_disabled"`           // Attack notifications already turned off
	PendingBoosts  []string `json:"pending_boosts,omitempty"`  // Boosts still to apply, in order
	AppliedBoosts  []string `json:"applied_boosts,omitempty"`  // Boosts already applied
	AllowUnboosted bool     `json:"allow_unboosted,omitempty"` // Unavailable boosts may be skipped

	Partner      string `json:"partner,omitempty"`  // Paired unit name
	Employer     string `json:"employer,omitempty"` // Current lease holder (operation+mission)
	LastEmployed int64  `json:"last_employed"`      // Tick the lease was last renewed

	HasLoad    bool `json:"has_load"`             // Carry hysteresis flag
	Registered bool `json:"registered,omitempty"` // Used to measure prespawn
}

// NewUnitRecord returns an empty record for the named unit.
func NewUnitRecord(name string) *UnitRecord {
	return &UnitRecord{Name: name}
}
