package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_MissionCreatesOnce(t *testing.T) {
	snap := NewSnapshot(10)

	m := snap.Mission("alpha", "mining")
	m.Prespawn = 40

	assert.Same(t, m, snap.Mission("alpha", "mining"))
	assert.Len(t, snap.Missions(), 1)
}

func TestSnapshot_Missions_Sorted(t *testing.T) {
	snap := NewSnapshot(1)
	snap.Mission("beta", "mining")
	snap.Mission("alpha", "roads")
	snap.Mission("alpha", "mining")

	missions := snap.Missions()
	assert.Equal(t, "alpha", missions[0].Operation)
	assert.Equal(t, "mining", missions[0].Name)
	assert.Equal(t, "roads", missions[1].Name)
	assert.Equal(t, "beta", missions[2].Operation)
}

func TestSnapshot_DeleteUnit(t *testing.T) {
	snap := NewSnapshot(1)
	snap.Unit("a").Prepared = true

	snap.DeleteUnit("a")
	assert.False(t, snap.HasUnit("a"))
	assert.Contains(t, snap.deletedUnits, "a")

	// Recreating a deleted record cancels the pending deletion.
	snap.Unit("a")
	assert.True(t, snap.HasUnit("a"))
	assert.NotContains(t, snap.deletedUnits, "a")
}

func TestSnapshot_Leases(t *testing.T) {
	snap := NewSnapshot(1)

	_, ok := snap.Lease("spawn1", "paver")
	assert.False(t, ok)

	snap.SetLease("spawn1", "paver", "community_paver")
	name, ok := snap.Lease("spawn1", "paver")
	assert.True(t, ok)
	assert.Equal(t, "community_paver", name)
	assert.Equal(t, []string{"spawn1"}, snap.Facilities())

	snap.ClearLease("spawn1", "paver")
	_, ok = snap.Lease("spawn1", "paver")
	assert.False(t, ok)
	assert.Empty(t, snap.Leases("spawn1"))
}
