package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissionKey(t *testing.T) {
	key := MissionKey("home", "alpha", "mining")

	assert.Equal(t, "warren:home:mission:alpha:mining", key)
	assert.True(t, strings.HasPrefix(key, "warren:"))
}

func TestUnitKey(t *testing.T) {
	assert.Equal(t, "warren:home:unit:alpha_miner_3", UnitKey("home", "alpha_miner_3"))
}

func TestLeasesKey(t *testing.T) {
	assert.Equal(t, "warren:home:leases:spawn1", LeasesKey("home", "spawn1"))
}

func TestColonyPattern(t *testing.T) {
	assert.Equal(t, "warren:home:*", ColonyPattern("home"))
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		kind  keyKind
		parts []string
	}{
		{"mission", "warren:home:mission:alpha:mining", kindMission, []string{"alpha", "mining"}},
		{"unit", "warren:home:unit:alpha_miner_0", kindUnit, []string{"alpha_miner_0"}},
		{"leases", "warren:home:leases:spawn1", kindLeases, []string{"spawn1"}},
		{"other colony", "warren:away:unit:x", kindUnknown, nil},
		{"mission without name", "warren:home:mission:alpha", kindUnknown, nil},
		{"empty unit", "warren:home:unit:", kindUnknown, nil},
		{"unknown entity", "warren:home:flag:x", kindUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, parts := parseKey("home", tt.key)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.parts, parts)
		})
	}
}
