package operation

import (
	"fmt"

	"github.com/dyluth/warren/internal/config"
	"github.com/dyluth/warren/internal/mission"
)

// Build turns a validated configuration into operations, sorted by name.
func Build(cfg *config.WarrenConfig) ([]*Operation, error) {
	var ops []*Operation
	for _, name := range cfg.OperationNames() {
		oc := cfg.Operations[name]
		op := New(name, oc.Anchor, oc.Facility)
		if oc.Backup != nil {
			op.BackupRange = oc.Backup.Range
			op.BackupMinLevel = oc.Backup.MinLevel
		}

		for _, mc := range oc.Missions {
			m, err := buildMission(op, mc)
			if err != nil {
				return nil, fmt.Errorf("operation '%s': %w", name, err)
			}
			op.AddMission(m)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func buildMission(op *Operation, mc config.Mission) (mission.Mission, error) {
	base := mission.NewBase(op.Name, mc.Name, op.Anchor, mc.Recruits())

	switch mc.Kind {
	case config.KindStaffing:
		roles := make([]mission.RoleSpec, 0, len(mc.Roles))
		for _, r := range mc.Roles {
			roles = append(roles, mission.RoleSpec{
				Name:            r.Name,
				Count:           r.Count,
				Fixed:           r.Body,
				Ratio:           r.Ratio,
				Prespawn:        r.Prespawn,
				MeasurePrespawn: r.MeasurePrespawn,
				Pair:            r.Pair,
				Boosts:          r.Boosts,
				AllowUnboosted:  r.AllowUnboosted,
				DisableNotify:   r.DisableNotify,
				SkipMoveToRoom:  r.SkipMoveToRoom,
				BlindRecruit:    r.BlindRecruit,
				Reservation:     r.Reservation,
			})
		}
		return mission.NewStaffing(base, roles), nil

	case config.KindRoad:
		rng := 1
		if mc.Range != nil {
			rng = *mc.Range
		}
		return mission.NewRoadUpkeep(base, mc.From, mc.To, rng, mc.IgnoreSiteLimit), nil

	default:
		return nil, fmt.Errorf("mission '%s': unknown kind '%s'", mc.Name, mc.Kind)
	}
}
