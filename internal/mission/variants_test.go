package mission

import (
	"testing"

	"github.com/dyluth/warren/internal/body"
	"github.com/dyluth/warren/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCycle drives every phase of m once.
func (fx *fixture) runCycle(missions ...Mission) {
	fx.begin(missions...)
	for _, m := range missions {
		require.NoError(fx.t, m.RoleCall())
	}
	for _, m := range missions {
		require.NoError(fx.t, m.Actions())
	}
	for _, m := range missions {
		require.NoError(fx.t, m.Finalize())
	}
}

func TestStaffing_Lifecycle(t *testing.T) {
	fx := newFixture(t)
	s := NewStaffing(NewBase("alpha", "mining", anchor, true), []RoleSpec{
		{Name: "miner", Count: 1, Fixed: []body.Segment{{Part: world.Work, Count: 5}, {Part: world.Move, Count: 3}}, Pair: true},
		{Name: "cart", Count: 1, Ratio: &body.RatioSpec{Carry: 2, Move: 1, Fraction: 0.5}, Pair: true},
	})

	fx.runCycle(s)
	require.Len(t, fx.f.Requests, 1, "one facility request per cycle")
	assert.Equal(t, "5W 3M", body.Describe(fx.f.Requests[0].Body))

	fx.advance()
	fx.runCycle(s)
	require.Len(t, fx.f.Requests, 2)
	assert.Equal(t, "alpha_cart_1", fx.f.Requests[1].Name)
	assert.Equal(t, "8C 4M", body.Describe(fx.f.Requests[1].Body))
	assert.Equal(t, []string{"alpha_miner_0:miner"}, fx.w.Performed)

	fx.advance()
	fx.runCycle(s)
	require.Len(t, s.Agents("cart"), 1)
	assert.Equal(t, "alpha_cart_1", fx.snap.Unit("alpha_miner_0").Partner)
	assert.Equal(t, "alpha_miner_0", fx.snap.Unit("alpha_cart_1").Partner)
	assert.Len(t, fx.f.Requests, 2)
}

func TestStaffing_MeasurePrespawn(t *testing.T) {
	fx := newFixture(t)
	fx.addUnit("alpha_miner_0", 1400)
	s := NewStaffing(NewBase("alpha", "mining", anchor, true), []RoleSpec{
		{Name: "miner", Count: 1, Fixed: []body.Segment{{Part: world.Work, Count: 2}}, MeasurePrespawn: true},
	})

	fx.runCycle(s)
	assert.Equal(t, world.Lifetime/2, s.Record().Prespawn)
	assert.True(t, fx.snap.Unit("alpha_miner_0").Registered)
}

func TestStaffing_InvalidateCache(t *testing.T) {
	fx := newFixture(t)
	s := NewStaffing(NewBase("alpha", "mining", anchor, true), nil)

	fx.runCycle(s)
	assert.Equal(t, 5, s.Record().DistanceToFacility)
	require.NoError(t, s.InvalidateCache())
	assert.Zero(t, s.Record().DistanceToFacility)
}

func TestRoadUpkeep_Lifecycle(t *testing.T) {
	fx := newFixture(t)
	r1 := fx.w.AddStructure(world.Road, pos(21, 21), 5000, 5000)
	r2 := fx.w.AddStructure(world.Road, pos(22, 22), 500, 5000)
	fx.w.AddStructure(world.Road, pos(23, 23), 5000, 5000)
	fx.w.AddStructure(world.Road, pos(24, 24), 5000, 5000)
	r := NewRoadUpkeep(NewBase("alpha", "roads", anchor, true), nil, nil, 1, false)

	// Scan seeds the queue; no paver yet.
	fx.runCycle(r)
	require.NotNil(t, r.Record().RepairQueue)
	assert.Nil(t, r.Paver())
	assert.Empty(t, fx.f.Requests)

	// Paver recruited from the pool.
	fx.advance()
	fx.runCycle(r)
	require.Len(t, fx.f.Requests, 1)
	assert.Equal(t, "community_paver", fx.f.Requests[0].Name)

	// Paver leased, forages, then repairs until the queue is exhausted.
	var states []PaverState
	for i := 0; i < 20 && r.Record().RepairQueue != nil; i++ {
		fx.advance()
		fx.runCycle(r)
		states = append(states, r.State())
	}
	assert.Contains(t, states, PaverForaging)
	assert.Contains(t, states, PaverRepairing)
	assert.Equal(t, r2.HitsMax(), r2.Hits())
	assert.Equal(t, r1.HitsMax(), r1.Hits())
	assert.Nil(t, r.Record().RepairQueue)
}

func TestRoadUpkeep_NoQueueNoPaver(t *testing.T) {
	fx := newFixture(t)
	r := NewRoadUpkeep(NewBase("alpha", "roads", anchor, true), nil, nil, 1, false)

	fx.runCycle(r)
	assert.Nil(t, r.Paver())
	assert.Equal(t, PaverIdle, r.State())
	assert.Equal(t, 1, fx.w.ConstructionSiteCount())
}

func TestRoadUpkeep_HeldPaverChecksOutWithoutQueue(t *testing.T) {
	fx := newFixture(t)
	fx.paver(pos(29, 29), 0)
	fx.snap.Unit("community_paver").Employer = "alpha/roads"
	r := NewRoadUpkeep(NewBase("alpha", "roads", anchor, true), nil, nil, 1, false)

	fx.runCycle(r)
	require.NotNil(t, r.Paver())
	assert.Equal(t, PaverRetiring, r.State())
	assert.False(t, fx.snap.HasUnit("community_paver"))
	_, ok := fx.snap.Lease("spawn1", "paver")
	assert.False(t, ok)
	assert.Empty(t, fx.f.Requests)
}

func TestRoadUpkeep_ClearsDeadPaverWithoutQueue(t *testing.T) {
	fx := newFixture(t)
	fx.snap.SetLease("spawn1", "paver", "community_paver")
	fx.snap.Unit("community_paver").Employer = "alpha/roads"
	r := NewRoadUpkeep(NewBase("alpha", "roads", anchor, true), nil, nil, 1, false)

	fx.runCycle(r)
	assert.Nil(t, r.Paver())
	assert.False(t, fx.snap.HasUnit("community_paver"))
	_, ok := fx.snap.Lease("spawn1", "paver")
	assert.False(t, ok)
	assert.Empty(t, fx.f.Requests, "no paver is recruited without queued repairs")
}

func TestRoadUpkeep_LeavesOtherMissionsPaver(t *testing.T) {
	fx := newFixture(t)
	fx.paver(pos(29, 29), 0)
	fx.snap.Unit("community_paver").Employer = "beta/roads"
	r := NewRoadUpkeep(NewBase("alpha", "roads", anchor, true), nil, nil, 1, false)

	fx.runCycle(r)
	assert.Nil(t, r.Paver())
	assert.True(t, fx.snap.HasUnit("community_paver"))
	name, _ := fx.snap.Lease("spawn1", "paver")
	assert.Equal(t, "community_paver", name)
}
