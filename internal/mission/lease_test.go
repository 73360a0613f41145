package mission

import (
	"testing"

	"github.com/dyluth/warren/internal/body"
	"github.com/dyluth/warren/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paverBody() []world.Part { return body.Ratio(PaverBody, 1300) }

func TestLeaseShared_RecruitsAndRegisters(t *testing.T) {
	fx := newFixture(t)
	b := fx.base("roads")

	fx.begin(baseMission{b})
	assert.Nil(t, b.LeaseShared("paver", paverBody), "nothing to lease on the recruiting cycle")

	name, ok := fx.snap.Lease("spawn1", "paver")
	require.True(t, ok)
	assert.Equal(t, "community_paver", name)
	assert.Equal(t, "alpha/roads", fx.snap.Unit(name).Employer)
	require.Len(t, fx.f.Requests, 1)
	assert.Equal(t, "3W 9C 6M", body.Describe(fx.f.Requests[0].Body))

	fx.advance()
	fx.begin(baseMission{b})
	a := b.LeaseShared("paver", paverBody)
	require.NotNil(t, a)
	assert.Equal(t, "community_paver", a.Name())
	assert.Equal(t, fx.w.Tick, a.Record.LastEmployed)
	assert.Len(t, fx.f.Requests, 1)
}

func TestLeaseShared_Exclusivity(t *testing.T) {
	fx := newFixture(t)
	fx.addUnit("community_paver", 1000)
	fx.snap.SetLease("spawn1", "paver", "community_paver")
	a := fx.base("roads")
	b := NewBase("beta", "roads", anchor, true)

	fx.begin(baseMission{a}, baseMission{&b})
	first := a.LeaseShared("paver", paverBody)
	second := b.LeaseShared("paver", paverBody)

	require.NotNil(t, first)
	assert.Nil(t, second)
	assert.Equal(t, "alpha/roads", fx.snap.Unit("community_paver").Employer)
	assert.Equal(t, map[string]string{"paver": "community_paver"}, fx.snap.Leases("spawn1"))
	assert.Empty(t, fx.f.Requests, "a held lease never triggers a second recruit")
}

func TestLeaseShared_GraceWindow(t *testing.T) {
	fx := newFixture(t)
	fx.addUnit("community_paver", 1000)
	fx.snap.SetLease("spawn1", "paver", "community_paver")
	alpha := fx.base("roads")
	beta := NewBase("beta", "roads", anchor, true)
	rec := fx.snap.Unit("community_paver")

	fx.begin(baseMission{alpha}, baseMission{&beta})
	require.NotNil(t, alpha.LeaseShared("paver", paverBody))

	// Renewed last cycle: still alpha's.
	fx.advance()
	fx.begin(baseMission{alpha}, baseMission{&beta})
	assert.Nil(t, beta.LeaseShared("paver", paverBody))
	require.NotNil(t, alpha.LeaseShared("paver", paverBody))

	// Alpha skips a cycle, then beta may take over.
	fx.advance()
	fx.advance()
	fx.begin(baseMission{alpha}, baseMission{&beta})
	got := beta.LeaseShared("paver", paverBody)
	require.NotNil(t, got)
	assert.Equal(t, "beta/roads", rec.Employer)
	assert.Nil(t, alpha.LeaseShared("paver", paverBody))
}

func TestLeaseShared_ClearsDeadHolder(t *testing.T) {
	fx := newFixture(t)
	fx.snap.SetLease("spawn1", "paver", "community_paver")
	fx.snap.Unit("community_paver").Employer = "alpha/roads"
	b := fx.base("roads")

	fx.begin(baseMission{b})
	assert.Nil(t, b.LeaseShared("paver", paverBody))

	require.Len(t, fx.f.Requests, 1)
	assert.Equal(t, "community_paver", fx.f.Requests[0].Name, "the dead holder's name is free again")
	name, _ := fx.snap.Lease("spawn1", "paver")
	assert.Equal(t, "community_paver", name)
}

func TestLeaseShared_ClearsOutOfRangeHolder(t *testing.T) {
	fx := newFixture(t)
	u := fx.addUnit("community_paver", 1000)
	u.Pos = world.Position{X: 25, Y: 25, Room: "W9N9"}
	fx.w.SetDistance("W1N1", "W9N9", 8)
	fx.snap.SetLease("spawn1", "paver", "community_paver")
	b := fx.base("roads")

	fx.begin(baseMission{b})
	assert.Nil(t, b.LeaseShared("paver", paverBody))

	name, ok := fx.snap.Lease("spawn1", "paver")
	require.True(t, ok)
	assert.Equal(t, "community_paver_1", name)
}

func TestLeaseShared_FacilityUnavailable(t *testing.T) {
	fx := newFixture(t)
	fx.f.Idle = false
	b := fx.base("roads")

	fx.begin(baseMission{b})
	assert.Nil(t, b.LeaseShared("paver", paverBody))
	_, ok := fx.snap.Lease("spawn1", "paver")
	assert.False(t, ok)
}

func TestLeasePaver_SkipsLevelOneRooms(t *testing.T) {
	fx := newFixture(t)
	fx.f.RoomLevel = 1
	b := fx.base("roads")

	fx.begin(baseMission{b})
	assert.Nil(t, b.LeasePaver())
	assert.Empty(t, fx.f.Requests)
}

func TestLeaseShared_SameCycleRecruitIsHeld(t *testing.T) {
	fx := newFixture(t)
	alpha := fx.base("roads")
	beta := NewBase("beta", "roads", anchor, true)

	fx.begin(baseMission{alpha}, baseMission{&beta})
	assert.Nil(t, alpha.LeaseShared("paver", paverBody))
	require.Len(t, fx.f.Requests, 1)

	// Hosts may only show the new unit from the next cycle.
	fx.w.Kill("community_paver")
	assert.Nil(t, beta.LeaseShared("paver", paverBody))

	name, ok := fx.snap.Lease("spawn1", "paver")
	require.True(t, ok)
	assert.Equal(t, "community_paver", name)
	assert.True(t, fx.snap.HasUnit("community_paver"))
	assert.Equal(t, "alpha/roads", fx.snap.Unit("community_paver").Employer)
	assert.Len(t, fx.f.Requests, 1)
}

func TestLeaseShared_UnseenRecruitClearedNextCycle(t *testing.T) {
	fx := newFixture(t)
	b := fx.base("roads")

	fx.begin(baseMission{b})
	assert.Nil(t, b.LeaseShared("paver", paverBody))
	fx.w.Kill("community_paver")

	fx.advance()
	fx.begin(baseMission{b})
	assert.Nil(t, b.LeaseShared("paver", paverBody))
	require.Len(t, fx.f.Requests, 2)
	assert.Equal(t, "community_paver", fx.f.Requests[1].Name)
}
