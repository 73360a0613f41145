package ledger

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Serialization helpers for converting between records and Redis hashes
//
// Scalar fields map to individual hash fields. Lists and maps are JSON-encoded
// into a single field.

// MissionToHash converts a MissionRecord to a Redis hash.
func MissionToHash(m *MissionRecord) (map[string]interface{}, error) {
	rosterJSON, err := json.Marshal(m.Roster)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roster: %w", err)
	}

	hash := map[string]interface{}{
		"operation":            m.Operation,
		"name":                 m.Name,
		"roster":               string(rosterJSON),
		"boost_enabled":        m.BoostEnabled,
		"prespawn":             m.Prespawn,
		"next_ordinal":         m.NextOrdinal,
		"registered":           m.Registered,
		"pave_tick":            m.PaveTick,
		"distance_to_facility": m.DistanceToFacility,
	}

	if m.Max != nil {
		hash["max"] = *m.Max
	} else {
		hash["max"] = ""
	}

	// An empty field means "no repair needed"; an empty JSON list is never written.
	if len(m.RepairQueue) > 0 {
		queueJSON, err := json.Marshal(m.RepairQueue)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal repair_queue: %w", err)
		}
		hash["repair_queue"] = string(queueJSON)
	} else {
		hash["repair_queue"] = ""
	}

	return hash, nil
}

// HashToMission converts a Redis hash to a MissionRecord.
func HashToMission(hash map[string]string) (*MissionRecord, error) {
	roster := make(map[string][]string)
	if rosterJSON := hash["roster"]; rosterJSON != "" {
		if err := json.Unmarshal([]byte(rosterJSON), &roster); err != nil {
			return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
		}
	}
	for role, names := range roster {
		if names == nil {
			roster[role] = []string{}
		}
	}

	var repairQueue []string
	if queueJSON := hash["repair_queue"]; queueJSON != "" {
		if err := json.Unmarshal([]byte(queueJSON), &repairQueue); err != nil {
			return nil, fmt.Errorf("failed to unmarshal repair_queue: %w", err)
		}
		if len(repairQueue) == 0 {
			repairQueue = nil
		}
	}

	var max *int
	if maxStr := hash["max"]; maxStr != "" {
		v, err := strconv.Atoi(maxStr)
		if err != nil {
			return nil, fmt.Errorf("invalid max field: %w", err)
		}
		max = &v
	}

	prespawn, _ := strconv.Atoi(hash["prespawn"])
	nextOrdinal, _ := strconv.Atoi(hash["next_ordinal"])
	paveTick, _ := strconv.ParseInt(hash["pave_tick"], 10, 64)
	distance, _ := strconv.Atoi(hash["distance_to_facility"])
	boostEnabled, _ := strconv.ParseBool(hash["boost_enabled"])
	registered, _ := strconv.ParseBool(hash["registered"])

	m := &MissionRecord{
		Operation:          hash["operation"],
		Name:               hash["name"],
		Roster:             roster,
		BoostEnabled:       boostEnabled,
		Max:                max,
		Prespawn:           prespawn,
		NextOrdinal:        nextOrdinal,
		Registered:         registered,
		RepairQueue:        repairQueue,
		PaveTick:           paveTick,
		DistanceToFacility: distance,
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// UnitToHash converts a UnitRecord to a Redis hash.
func UnitToHash(u *UnitRecord) (map[string]interface{}, error) {
	pendingJSON, err := json.Marshal(nonNil(u.PendingBoosts))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pending_boosts: %w", err)
	}

	appliedJSON, err := json.Marshal(nonNil(u.AppliedBoosts))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal applied_boosts: %w", err)
	}

	hash := map[string]interface{}{
		"name":            u.Name,
		"prepared":        u.Prepared,
		"notify_disabled": u.NotifyDisabled,
		"pending_boosts":  string(pendingJSON),
		"applied_boosts":  string(appliedJSON),
		"allow_unboosted": u.AllowUnboosted,
		"partner":         u.Partner,
		"employer":        u.Employer,
		"last_employed":   u.LastEmployed,
		"has_load":        u.HasLoad,
		"registered":      u.Registered,
	}

	return hash, nil
}

// HashToUnit converts a Redis hash to a UnitRecord.
func HashToUnit(hash map[string]string) (*UnitRecord, error) {
	if hash["name"] == "" {
		return nil, fmt.Errorf("unit record: name is required")
	}

	var pending []string
	if pendingJSON := hash["pending_boosts"]; pendingJSON != "" {
		if err := json.Unmarshal([]byte(pendingJSON), &pending); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pending_boosts: %w", err)
		}
	}

	var applied []string
	if appliedJSON := hash["applied_boosts"]; appliedJSON != "" {
		if err := json.Unmarshal([]byte(appliedJSON), &applied); err != nil {
			return nil, fmt.Errorf("failed to unmarshal applied_boosts: %w", err)
		}
	}

	if len(pending) == 0 {
		pending = nil
	}
	if len(applied) == 0 {
		applied = nil
	}

	prepared, _ := strconv.ParseBool(hash["prepared"])
	notifyDisabled, _ := strconv.ParseBool(hash["notify_disabled"])
	allowUnboosted, _ := strconv.ParseBool(hash["allow_unboosted"])
	hasLoad, _ := strconv.ParseBool(hash["has_load"])
	registered, _ := strconv.ParseBool(hash["registered"])
	lastEmployed, _ := strconv.ParseInt(hash["last_employed"], 10, 64)

	return &UnitRecord{
		Name:           hash["name"],
		Prepared:       prepared,
		NotifyDisabled: notifyDisabled,
		PendingBoosts:  pending,
		AppliedBoosts:  applied,
		AllowUnboosted: allowUnboosted,
		Partner:        hash["partner"],
		Employer:       hash["employer"],
		LastEmployed:   lastEmployed,
		HasLoad:        hasLoad,
		Registered:     registered,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
