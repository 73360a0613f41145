package agent

import (
	"testing"

	"github.com/dyluth/warren/internal/body"
	"github.com/dyluth/warren/internal/simworld"
	"github.com/dyluth/warren/internal/world"
	"github.com/dyluth/warren/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var home = world.Position{X: 25, Y: 25, Room: "W1N1"}

func TestHasLoad_Hysteresis(t *testing.T) {
	u := simworld.NewUnit("hauler", body.Worker(1, 2, 1), home)
	a := New(u, ledger.NewUnitRecord("hauler"))

	assert.False(t, a.HasLoad(), "empty unit has no load")

	u.Load = 60
	assert.False(t, a.HasLoad(), "partial load does not flip the flag up")

	u.Load = 100
	assert.True(t, a.HasLoad(), "full unit has load")

	u.Load = 40
	assert.True(t, a.HasLoad(), "partial load keeps the flag up")

	u.Load = 0
	assert.False(t, a.HasLoad())
}

func TestHasLoad_NoCarryParts(t *testing.T) {
	u := simworld.NewUnit("miner", body.Worker(2, 0, 1), home)
	rec := ledger.NewUnitRecord("miner")
	rec.HasLoad = true
	assert.False(t, New(u, rec).HasLoad())
}

func TestReady(t *testing.T) {
	u := simworld.NewUnit("a", body.Worker(1, 1, 1), home)
	rec := ledger.NewUnitRecord("a")
	a := New(u, rec)

	assert.False(t, a.Ready())
	rec.Prepared = true
	assert.True(t, a.Ready())
	u.InSpawn = true
	assert.False(t, a.Ready())
}

func TestReplaceable(t *testing.T) {
	u := simworld.NewUnit("a", body.Worker(1, 1, 1), home)
	a := New(u, ledger.NewUnitRecord("a"))

	u.TTL = 10
	assert.True(t, a.Replaceable(10))
	assert.False(t, a.Replaceable(9))

	u.InSpawn = true
	assert.False(t, a.Replaceable(100), "units in production are never replaceable")
}

func TestCapabilities(t *testing.T) {
	u := simworld.NewUnit("a", body.Worker(0, 1, 1), home)
	a := New(u, ledger.NewUnitRecord("a"))

	assert.False(t, a.CanWork())
	assert.False(t, a.Damaged())
	u.HitPoints--
	assert.True(t, a.Damaged())
}

func TestPartner(t *testing.T) {
	w := simworld.New()
	snap := ledger.NewSnapshot(1)
	w.AddUnit(simworld.NewUnit("a", body.Worker(1, 1, 1), home))
	w.AddUnit(simworld.NewUnit("b", body.Worker(1, 1, 1), home))

	ua, _ := w.Lookup("a")
	a := New(ua, snap.Unit("a"))

	_, ok := a.Partner(w, snap)
	assert.False(t, ok)

	a.Record.Partner = "b"
	p, ok := a.Partner(w, snap)
	require.True(t, ok)
	assert.Equal(t, "b", p.Name())

	w.Kill("b")
	_, ok = a.Partner(w, snap)
	assert.False(t, ok, "a dead partner is not returned")
	assert.Equal(t, "b", a.Record.Partner, "the stale identifier is left in place")
}
