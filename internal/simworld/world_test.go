package simworld

import (
	"testing"

	"github.com/dyluth/warren/internal/body"
	"github.com/dyluth/warren/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var home = world.Position{X: 25, Y: 25, Room: "W1N1"}

func TestFacility_Recruit(t *testing.T) {
	w := New()
	f := w.AddFacility("spawn1", home, 300, 3)

	name, err := f.Recruit(world.RecruitRequest{Body: body.Worker(1, 1, 1), Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, "a", name)

	u, ok := w.Lookup("a")
	require.True(t, ok)
	assert.True(t, u.Spawning())
	assert.Equal(t, 0, u.TicksToLive())

	t.Run("one request per tick", func(t *testing.T) {
		_, err := f.Recruit(world.RecruitRequest{Body: body.Worker(1, 1, 1), Name: "b"})
		assert.ErrorIs(t, err, world.ErrBusy)
		assert.False(t, f.Available())
	})

	w.Advance()

	t.Run("name collision", func(t *testing.T) {
		_, err := f.Recruit(world.RecruitRequest{Body: body.Worker(1, 1, 1), Name: "a"})
		assert.ErrorIs(t, err, world.ErrNameExists)
	})

	t.Run("insufficient energy", func(t *testing.T) {
		_, err := f.Recruit(world.RecruitRequest{Body: body.Worker(3, 1, 1), Name: "c"})
		assert.ErrorIs(t, err, world.ErrNotEnoughEnergy)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := f.Recruit(world.RecruitRequest{Name: "d"})
		assert.ErrorIs(t, err, world.ErrInvalidBody)
	})

	u, _ = w.Lookup("a")
	assert.False(t, u.Spawning())
	assert.Equal(t, world.Lifetime, u.TicksToLive())
}

func TestAdvance_ExpiresUnits(t *testing.T) {
	w := New()
	u := w.AddUnit(NewUnit("old", body.Worker(1, 1, 1), home))
	u.TTL = 2

	w.Advance()
	_, ok := w.Lookup("old")
	assert.True(t, ok)

	w.Advance()
	_, ok = w.Lookup("old")
	assert.False(t, ok)
}

func TestUnit_Repair(t *testing.T) {
	w := New()
	road := w.AddStructure(world.Road, home, 1000, 5000)
	u := w.AddUnit(NewUnit("paver", body.Worker(2, 1, 1), world.Position{X: 27, Y: 25, Room: "W1N1"}))

	assert.Error(t, u.Repair(road), "empty units cannot repair")

	u.Load = 50
	require.NoError(t, u.Repair(road))
	assert.Equal(t, 1200, road.Hits())
	assert.Equal(t, 48, u.Carried())
}

func TestFindPath(t *testing.T) {
	w := New()
	path, incomplete := w.FindPath(home, world.Position{X: 30, Y: 25, Room: "W1N1"}, 1)
	assert.False(t, incomplete)
	require.Len(t, path, 4)
	assert.Equal(t, world.Position{X: 29, Y: 25, Room: "W1N1"}, path[3])

	_, incomplete = w.FindPath(home, world.Position{X: 5, Y: 5, Room: "W2N1"}, 1)
	assert.True(t, incomplete)
}

func TestPlaceConstructionSite(t *testing.T) {
	w := New()
	pos := world.Position{X: 10, Y: 10, Room: "W1N1"}

	require.NoError(t, w.PlaceConstructionSite(pos, world.Road))
	assert.True(t, w.HasConstructionSite(pos))
	assert.Equal(t, 1, w.ConstructionSiteCount())
	assert.Error(t, w.PlaceConstructionSite(pos, world.Road))
}
