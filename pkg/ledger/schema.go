package ledger

import (
	"fmt"
	"strings"
)

// Redis key pattern helpers
//
// Key pattern: warren:{colony}:{entity}:{id}

// MissionKey returns the Redis key for a mission record.
// Pattern: warren:{colony}:mission:{operation}:{mission}
func MissionKey(colony, operation, mission string) string {
	return fmt.Sprintf("warren:%s:mission:%s:%s", colony, operation, mission)
}

// UnitKey returns the Redis key for a unit record.
// Pattern: warren:{colony}:unit:{unit_name}
func UnitKey(colony, unitName string) string {
	return fmt.Sprintf("warren:%s:unit:%s", colony, unitName)
}

// LeasesKey returns the Redis key for a facility's lease registry hash.
// Pattern: warren:{colony}:leases:{facility_id}
func LeasesKey(colony, facilityID string) string {
	return fmt.Sprintf("warren:%s:leases:%s", colony, facilityID)
}

// ColonyPattern returns the SCAN match pattern covering every key of a colony.
func ColonyPattern(colony string) string {
	return fmt.Sprintf("warren:%s:*", colony)
}

// keyKind identifies the entity a colony key belongs to.
type keyKind int

const (
	kindUnknown keyKind = iota
	kindMission
	kindUnit
	kindLeases
)

// parseKey splits a colony key into its entity kind and identifying parts.
// Mission keys yield (operation, mission); unit and lease keys yield a single id.
func parseKey(colony, key string) (keyKind, []string) {
	prefix := fmt.Sprintf("warren:%s:", colony)
	if !strings.HasPrefix(key, prefix) {
		return kindUnknown, nil
	}
	rest := strings.TrimPrefix(key, prefix)

	switch {
	case strings.HasPrefix(rest, "mission:"):
		parts := strings.SplitN(strings.TrimPrefix(rest, "mission:"), ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return kindUnknown, nil
		}
		return kindMission, parts
	case strings.HasPrefix(rest, "unit:"):
		name := strings.TrimPrefix(rest, "unit:")
		if name == "" {
			return kindUnknown, nil
		}
		return kindUnit, []string{name}
	case strings.HasPrefix(rest, "leases:"):
		id := strings.TrimPrefix(rest, "leases:")
		if id == "" {
			return kindUnknown, nil
		}
		return kindLeases, []string{id}
	}

	return kindUnknown, nil
}

// CycleEventsChannel returns the Pub/Sub channel carrying completed-cycle events.
// Pattern: warren:{colony}:cycle_events
func CycleEventsChannel(colony string) string {
	return fmt.Sprintf("warren:%s:cycle_events", colony)
}
