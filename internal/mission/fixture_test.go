package mission

import (
	"testing"

	"github.com/dyluth/warren/internal/body"
	"github.com/dyluth/warren/internal/simworld"
	"github.com/dyluth/warren/internal/world"
	"github.com/dyluth/warren/pkg/ledger"
	"github.com/stretchr/testify/require"
)

var (
	anchor   = world.Position{X: 25, Y: 25, Room: "W1N1"}
	spawnPos = world.Position{X: 20, Y: 20, Room: "W1N1"}
)

// fixture is a one-facility colony with a snapshot carried between cycles.
type fixture struct {
	t    *testing.T
	w    *simworld.World
	f    *simworld.Facility
	snap *ledger.Snapshot
	env  *world.Env
}

func newFixture(t *testing.T) *fixture {
	w := simworld.New()
	fx := &fixture{
		t:    t,
		w:    w,
		f:    w.AddFacility("spawn1", spawnPos, 1300, 4),
		snap: ledger.NewSnapshot(w.Tick),
	}
	fx.env = w.Env()
	return fx
}

// begin initializes missions for the current tick.
func (fx *fixture) begin(missions ...Mission) {
	fx.env = fx.w.Env()
	fx.snap.Tick = fx.w.Tick
	for _, m := range missions {
		require.NoError(fx.t, m.Init(&Cycle{Snap: fx.snap, Env: fx.env, Facility: fx.f, ErrorLogInterval: 10}))
	}
}

// advance moves the world to the next tick.
func (fx *fixture) advance() {
	fx.w.Advance()
}

func (fx *fixture) base(name string) *Base {
	b := NewBase("alpha", name, anchor, true)
	return &b
}

func (fx *fixture) addUnit(name string, ttl int) *simworld.Unit {
	u := simworld.NewUnit(name, body.Worker(2, 1, 1), anchor)
	u.TTL = ttl
	return fx.w.AddUnit(u)
}

// baseMission adapts a bare Base to the Mission interface for tests.
type baseMission struct{ *Base }

func (m baseMission) RoleCall() error { return nil }
func (m baseMission) Actions() error  { return nil }
func (m baseMission) Finalize() error { return nil }

func minerBody() []world.Part { return body.Worker(2, 1, 1) }

func intPtr(n int) *int { return &n }
