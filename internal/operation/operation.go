// Package operation groups missions that share an anchor position and a
// production facility.
package operation

import (
	"log"
	"sort"

	"github.com/dyluth/warren/internal/mission"
	"github.com/dyluth/warren/internal/world"
)

// MinBackupAvailability is the recent idle share a remote facility needs to be used as a backup.
const MinBackupAvailability = 0.3

// Operation is a named project bound to one anchor position.
type Operation struct {
	Name   string
	Anchor world.Position

	// HomeFacility is the id of the facility normally serving the operation.
	HomeFacility string
	// BackupRange is how many rooms away a backup facility may be; zero disables backups.
	BackupRange int
	// BackupMinLevel is the lowest room level a backup facility may serve.
	BackupMinLevel int

	missions []mission.Mission
	facility world.Facility
}

// New returns an operation with no missions.
func New(name string, anchor world.Position, homeFacility string) *Operation {
	return &Operation{
		Name:         name,
		Anchor:       anchor,
		HomeFacility: homeFacility,
	}
}

// AddMission appends a mission. Missions run in insertion order within each phase.
func (o *Operation) AddMission(m mission.Mission) {
	o.missions = append(o.missions, m)
}

// Missions returns the operation's missions in insertion order.
func (o *Operation) Missions() []mission.Mission {
	return o.missions
}

// Facility is the facility resolved for the current cycle, or nil.
func (o *Operation) Facility() world.Facility {
	return o.facility
}

// ResolveFacility picks the facility serving the operation this cycle: the
// home facility when present, otherwise the nearest remote facility in range
// that is idle enough and free right now. Returns nil when none qualifies.
func (o *Operation) ResolveFacility(facilities []world.Facility, m world.Map) world.Facility {
	o.facility = nil
	for _, f := range facilities {
		if f.ID() == o.HomeFacility {
			o.facility = f
			return f
		}
	}
	if o.BackupRange <= 0 {
		return nil
	}

	var candidates []world.Facility
	for _, f := range facilities {
		if m.LinearDistance(o.Anchor.Room, f.Room()) > o.BackupRange {
			continue
		}
		if f.Level() < o.BackupMinLevel || f.AverageAvailability() <= MinBackupAvailability || !f.Available() {
			continue
		}
		candidates = append(candidates, f)
	}
	if len(candidates) == 0 {
		log.Printf("[Operation] %s has no facility in reach", o.Name)
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return m.LinearDistance(o.Anchor.Room, candidates[i].Room()) < m.LinearDistance(o.Anchor.Room, candidates[j].Room())
	})
	o.facility = candidates[0]
	return o.facility
}
