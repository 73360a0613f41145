package mission

import (
	"sort"

	"github.com/dyluth/warren/internal/agent"
)

// FindPartnerships pairs each unpaired agent of role with the unpaired agent of
// another role registered earlier this cycle whose remaining lifetime is
// closest. Both records are updated so the pairing is mutual. Once paired, an
// agent is never reconsidered; a dead partner's name is left in place.
func (b *Base) FindPartnerships(agents []*agent.Agent, role string) {
	if _, ok := b.pairing[role]; !ok {
		b.pairing[role] = nil
		b.pairingOrder = append(b.pairingOrder, role)
		sort.Strings(b.pairingOrder)
	}
	for _, a := range agents {
		if a.Record.Partner != "" {
			continue
		}
		b.pairing[role] = append(b.pairing[role], a)

		for _, other := range b.pairingOrder {
			if other == role {
				continue
			}
			var (
				closest *agent.Agent
				best    = -1
			)
			for _, c := range b.pairing[other] {
				if c.Record.Partner != "" {
					continue
				}
				diff := abs(a.TicksToLive() - c.TicksToLive())
				if best < 0 || diff < best {
					best = diff
					closest = c
				}
			}
			if closest != nil {
				closest.Record.Partner = a.Name()
				a.Record.Partner = closest.Name()
				break
			}
		}
	}
}

// Partner returns the agent among candidates that a is paired with.
func Partner(a *agent.Agent, candidates []*agent.Agent) (*agent.Agent, bool) {
	if a.Record.Partner == "" {
		return nil, false
	}
	for _, c := range candidates {
		if c.Name() == a.Record.Partner {
			return c, true
		}
	}
	return nil, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
