// Package body computes part sequences for units about to be recruited.
//
// Two modes are supported. Fixed lists emit explicit part counts in the order
// given. Ratio bodies scale a work:carry:move proportion to the largest whole
// multiple the energy budget and the part cap allow.
package body

import (
	"fmt"
	"strings"

	"github.com/dyluth/warren/internal/world"
)

// MaxParts is the structural cap on body size.
const MaxParts = 50

// Cost is the energy cost of each part type.
var Cost = map[world.Part]int{
	world.Work:  100,
	world.Carry: 50,
	world.Move:  50,
	world.Heal:  250,
}

// Segment is a run of identical parts.
type Segment struct {
	Part  world.Part `yaml:"part"`
	Count int        `yaml:"count"`
}

// Fixed emits the segments in order. Order matters: earlier parts absorb damage first.
func Fixed(segments ...Segment) []world.Part {
	var out []world.Part
	for _, s := range segments {
		for i := 0; i < s.Count; i++ {
			out = append(out, s.Part)
		}
	}
	return out
}

// Worker emits work parts, then carry parts, then move parts.
func Worker(work, carry, move int) []world.Part {
	return Fixed(
		Segment{Part: world.Work, Count: work},
		Segment{Part: world.Carry, Count: carry},
		Segment{Part: world.Move, Count: move},
	)
}

// RatioSpec describes a proportional body.
type RatioSpec struct {
	Work     int     `yaml:"work"`
	Carry    int     `yaml:"carry"`
	Move     int     `yaml:"move"`
	Fraction float64 `yaml:"fraction"` // Share of the facility's max energy to spend
	Limit    int     `yaml:"limit"`    // Optional cap on the scale factor; zero means none
}

// Validate checks the ratio is usable.
func (r RatioSpec) Validate() error {
	if r.Work < 0 || r.Carry < 0 || r.Move < 0 {
		return fmt.Errorf("ratio parts must not be negative")
	}
	if r.Work+r.Carry+r.Move == 0 {
		return fmt.Errorf("ratio must contain at least one part")
	}
	if r.Work+r.Carry+r.Move > MaxParts {
		return fmt.Errorf("ratio has %d parts per unit, exceeding the cap of %d", r.Work+r.Carry+r.Move, MaxParts)
	}
	if r.Fraction <= 0 || r.Fraction > 1 {
		return fmt.Errorf("fraction must be in (0, 1], got %g", r.Fraction)
	}
	if r.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}

// Scale returns the largest whole multiple of the ratio affordable from
// maxEnergy. It is zero when one unit of the ratio costs more than the budget.
func Scale(r RatioSpec, maxEnergy int) int {
	perUnit := r.Work + r.Carry + r.Move
	if perUnit <= 0 {
		return 0
	}
	unitCost := r.Work*Cost[world.Work] + r.Carry*Cost[world.Carry] + r.Move*Cost[world.Move]

	n := MaxParts / perUnit
	if r.Limit > 0 && r.Limit < n {
		n = r.Limit
	}
	affordable := int(float64(maxEnergy) * r.Fraction / float64(unitCost))
	if affordable < n {
		n = affordable
	}
	if n < 0 {
		return 0
	}
	return n
}

// Ratio returns the scaled body, or nil if the budget cannot afford one unit.
func Ratio(r RatioSpec, maxEnergy int) []world.Part {
	n := Scale(r, maxEnergy)
	if n == 0 {
		return nil
	}
	return Worker(r.Work*n, r.Carry*n, r.Move*n)
}

// Price returns the total energy cost of a body.
func Price(parts []world.Part) int {
	total := 0
	for _, p := range parts {
		total += Cost[p]
	}
	return total
}

// Count returns how many parts of type p the body contains.
func Count(parts []world.Part, p world.Part) int {
	n := 0
	for _, part := range parts {
		if part == p {
			n++
		}
	}
	return n
}

// Describe renders a body compactly, e.g. "3W 3C 3M".
func Describe(parts []world.Part) string {
	if len(parts) == 0 {
		return "(empty)"
	}
	var b strings.Builder
	var last world.Part
	run := 0
	flush := func() {
		if run == 0 {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d%s", run, strings.ToUpper(string(last[:1])))
	}
	for _, p := range parts {
		if p != last {
			flush()
			last = p
			run = 0
		}
		run++
	}
	flush()
	return b.String()
}
