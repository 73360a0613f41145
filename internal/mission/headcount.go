package mission

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/dyluth/warren/internal/agent"
	"github.com/dyluth/warren/internal/world"
	"github.com/dyluth/warren/pkg/ledger"
)

// HeadCountOptions tunes a HeadCount call.
type HeadCountOptions struct {
	// Prespawn, when set, lets units within BodySize*3+Prespawn ticks of expiry
	// stop counting toward the population so a successor is recruited early.
	Prespawn *int
	// DisableNotify turns off attack notifications during preparation.
	DisableNotify bool
	// SkipMoveToRoom leaves new units where they are instead of moving them to the anchor room.
	SkipMoveToRoom bool
	// BlindRecruit allows recruiting while the anchor room is not visible.
	BlindRecruit bool
	// Reservation is forwarded to the facility.
	Reservation *world.Reservation
	// Boosts are seeded into new recruits while the mission has boosting enabled.
	Boosts         []string
	AllowUnboosted bool
}

// BodyFunc returns the body for a unit about to be recruited.
type BodyFunc func() []world.Part

// CountFunc returns the desired population; zero halts recruitment.
type CountFunc func() int

// HeadCount reconciles the roster for role against the live-unit table and
// recruits at most one unit per cycle to keep the population at desired().
// It returns the prepared agents; unprepared live units still count toward
// the population.
func (b *Base) HeadCount(role string, bodyFn BodyFunc, desired CountFunc, opts HeadCountOptions) []*agent.Agent {
	names, ok := b.rec.Roster[role]
	if !ok {
		names = b.findOrphans(role)
		if len(names) > 0 {
			log.Printf("[Headcount] Adopted %d orphan(s) for %s in %s: %v", len(names), role, b.operation, names)
		}
	}

	var (
		agents []*agent.Agent
		kept   = make([]string, 0, len(names))
		count  int
	)
	for _, name := range names {
		u, live := b.env.Units.Lookup(name)
		if !live {
			if b.isPending(role, name) {
				kept = append(kept, name)
				count++
				continue
			}
			b.snap.DeleteUnit(name)
			log.Printf("[Headcount] %s in %s is gone, removed from %s roster", name, b.operation, role)
			continue
		}
		kept = append(kept, name)

		a := agent.New(u, b.snap.Unit(name))
		if b.prepare(a, opts) {
			agents = append(agents, a)
		}

		lead := 0
		if opts.Prespawn != nil {
			lead = u.BodySize()*3 + *opts.Prespawn
		}
		if !a.Replaceable(lead) {
			count++
		}
	}
	b.rec.Roster[role] = kept

	if b.facility == nil || !b.facility.Available() || !b.allowRecruit || !(b.hasVision || opts.BlindRecruit) {
		return agents
	}
	if len(b.pending[role]) > 0 {
		return agents
	}

	want := desired()
	if b.rec.Max != nil {
		want = *b.rec.Max
	}
	if count >= want {
		return agents
	}

	parts := bodyFn()
	if len(parts) == 0 {
		// The facility cannot afford even the smallest body yet.
		return agents
	}
	b.recruit(role, parts, opts)
	return agents
}

// recruit issues one recruitment request and records the result.
func (b *Base) recruit(role string, parts []world.Part, opts HeadCountOptions) {
	name, ordinal := b.nextName(role)

	rec := ledger.NewUnitRecord(name)
	if b.rec.BoostEnabled && len(opts.Boosts) > 0 {
		rec.PendingBoosts = append([]string(nil), opts.Boosts...)
		rec.AllowUnboosted = opts.AllowUnboosted
	}

	out, err := b.facility.Recruit(world.RecruitRequest{
		Body:        parts,
		Name:        name,
		Reservation: opts.Reservation,
	})
	switch {
	case err == nil:
		b.rec.Roster[role] = append(b.rec.Roster[role], out)
		b.rec.NextOrdinal = ordinal + 1
		rec.Name = out
		b.snap.PutUnit(rec)
		b.pending[role] = append(b.pending[role], out)
		log.Printf("[Headcount] Recruiting %s for %s in %s (%d parts)", out, b.name, b.operation, len(parts))
	case errors.Is(err, world.ErrNameExists):
		b.rec.NextOrdinal = ordinal + 1
	case world.IsExpectedFailure(err):
		// Retried next cycle.
	default:
		b.logSampled("[Headcount] Error recruiting %s for %s in %s: %v", role, b.name, b.operation, err)
	}
}

// nextName returns the first free name for role at or after the persisted ordinal.
func (b *Base) nextName(role string) (string, int) {
	taken := make(map[string]struct{})
	for _, names := range b.rec.Roster {
		for _, n := range names {
			taken[n] = struct{}{}
		}
	}
	for n := b.rec.NextOrdinal; ; n++ {
		name := unitName(b.operation, role, n)
		if _, ok := taken[name]; ok {
			continue
		}
		if _, live := b.env.Units.Lookup(name); live {
			continue
		}
		return name, n
	}
}

func unitName(operation, role string, n int) string {
	return fmt.Sprintf("%s_%s_%d", operation, role, n)
}

// findOrphans returns live units named for this operation and role. Used to
// rebuild a roster that has no persisted entry, such as after a restart.
func (b *Base) findOrphans(role string) []string {
	prefix := b.operation + "_" + role + "_"
	var names []string
	for _, name := range b.env.Units.Names() {
		suffix, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		if _, err := strconv.Atoi(suffix); err != nil {
			continue
		}
		names = append(names, name)
	}
	return names
}

func (b *Base) isPending(role, name string) bool {
	for _, n := range b.pending[role] {
		if n == name {
			return true
		}
	}
	return false
}

// prepare runs one-time preparation and reports whether the agent is ready to
// participate. Incomplete preparation is retried next cycle.
func (b *Base) prepare(a *agent.Agent, opts HeadCountOptions) bool {
	if a.Record.Prepared {
		return true
	}
	if opts.DisableNotify && !a.Record.NotifyDisabled {
		a.NotifyWhenAttacked(false)
		a.Record.NotifyDisabled = true
	}
	if !b.applyBoosts(a) {
		return false
	}
	if a.Spawning() {
		return false
	}
	pos := a.Position()
	if !opts.SkipMoveToRoom && (pos.Room != b.anchor.Room || pos.IsNearExit(1)) {
		if err := b.env.Nav.TravelTo(a.Unit, b.anchor, world.TravelOptions{Range: 1, AvoidHazards: true}); err != nil {
			log.Printf("[Headcount] %s could not travel to %s: %v", a.Name(), b.anchor, err)
		}
		return false
	}
	a.Record.Prepared = true
	return true
}

// applyBoosts advances the pending boost list by at most one entry and reports
// whether the list is exhausted.
func (b *Base) applyBoosts(a *agent.Agent) bool {
	rec := a.Record
	if len(rec.PendingBoosts) == 0 {
		return true
	}
	if b.env.Booster == nil {
		if rec.AllowUnboosted {
			rec.PendingBoosts = nil
			return true
		}
		return false
	}
	if a.Spawning() {
		return false
	}

	resource := rec.PendingBoosts[0]
	done, err := b.env.Booster.Boost(a.Unit, resource)
	switch {
	case errors.Is(err, world.ErrBoostUnavailable):
		if !rec.AllowUnboosted {
			return false
		}
		log.Printf("[Headcount] %s skipping unavailable boost %s", a.Name(), resource)
		rec.PendingBoosts = rec.PendingBoosts[1:]
	case err != nil:
		log.Printf("[Headcount] %s failed to boost with %s: %v", a.Name(), resource, err)
		return false
	case done:
		rec.PendingBoosts = rec.PendingBoosts[1:]
		rec.AppliedBoosts = append(rec.AppliedBoosts, resource)
	}
	if len(rec.PendingBoosts) == 0 {
		rec.PendingBoosts = nil
		return true
	}
	return false
}
