package body

import (
	"testing"

	"github.com/dyluth/warren/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed_PreservesOrder(t *testing.T) {
	parts := Fixed(
		Segment{Part: world.Move, Count: 1},
		Segment{Part: world.Work, Count: 2},
		Segment{Part: world.Move, Count: 1},
	)
	assert.Equal(t, []world.Part{world.Move, world.Work, world.Work, world.Move}, parts)
}

func TestWorker(t *testing.T) {
	parts := Worker(2, 1, 1)
	assert.Equal(t, []world.Part{world.Work, world.Work, world.Carry, world.Move}, parts)
	assert.Equal(t, 300, Price(parts))
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name      string
		ratio     RatioSpec
		maxEnergy int
		wantScale int
	}{
		{
			name:      "capped by part limit",
			ratio:     RatioSpec{Work: 1, Carry: 1, Move: 1, Fraction: 1},
			maxEnergy: 200 * 16 * 10,
			wantScale: 16,
		},
		{
			name:      "capped by energy",
			ratio:     RatioSpec{Work: 1, Carry: 1, Move: 1, Fraction: 1},
			maxEnergy: 800,
			wantScale: 4,
		},
		{
			name:      "fraction of budget",
			ratio:     RatioSpec{Work: 1, Carry: 1, Move: 1, Fraction: 0.5},
			maxEnergy: 800,
			wantScale: 2,
		},
		{
			name:      "explicit limit",
			ratio:     RatioSpec{Work: 1, Carry: 3, Move: 2, Fraction: 1, Limit: 5},
			maxEnergy: 12900,
			wantScale: 5,
		},
		{
			name:      "insufficient budget",
			ratio:     RatioSpec{Work: 2, Carry: 1, Move: 1, Fraction: 1},
			maxEnergy: 299,
			wantScale: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantScale, Scale(tt.ratio, tt.maxEnergy))

			parts := Ratio(tt.ratio, tt.maxEnergy)
			assert.Equal(t, tt.ratio.Work*tt.wantScale, Count(parts, world.Work))
			assert.Equal(t, tt.ratio.Carry*tt.wantScale, Count(parts, world.Carry))
			assert.Equal(t, tt.ratio.Move*tt.wantScale, Count(parts, world.Move))
			assert.LessOrEqual(t, len(parts), MaxParts)
		})
	}
}

func TestRatio_EqualThirdsAtFullBudget(t *testing.T) {
	// 150 energy per unit, more than enough for the cap.
	parts := Ratio(RatioSpec{Work: 1, Carry: 1, Move: 1, Fraction: 1}, 200*50)
	require.Len(t, parts, 48)
	assert.Equal(t, "16W 16C 16M", Describe(parts))
}

func TestRatio_GroupsByType(t *testing.T) {
	parts := Ratio(RatioSpec{Work: 1, Carry: 1, Move: 1, Fraction: 1}, 450)
	assert.Equal(t, []world.Part{
		world.Work, world.Work, world.Work,
		world.Carry, world.Carry, world.Carry,
		world.Move, world.Move, world.Move,
	}, parts)
}

func TestRatio_MonotonicInFraction(t *testing.T) {
	ratio := RatioSpec{Work: 2, Carry: 1, Move: 1}
	prev := 0
	for f := 0.05; f <= 1.0; f += 0.05 {
		ratio.Fraction = f
		n := Scale(ratio, 5600)
		assert.GreaterOrEqual(t, n, prev, "fraction %.2f", f)
		prev = n
	}
	assert.Equal(t, MaxParts/4, prev)
}

func TestRatioSpec_Validate(t *testing.T) {
	assert.NoError(t, RatioSpec{Work: 1, Carry: 3, Move: 2, Fraction: 1, Limit: 5}.Validate())
	assert.Error(t, RatioSpec{Fraction: 1}.Validate())
	assert.Error(t, RatioSpec{Work: 1, Fraction: 0}.Validate())
	assert.Error(t, RatioSpec{Work: 1, Fraction: 1.5}.Validate())
	assert.Error(t, RatioSpec{Work: -1, Carry: 2, Fraction: 1}.Validate())
	assert.Error(t, RatioSpec{Work: 51, Fraction: 1}.Validate())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "(empty)", Describe(nil))
	assert.Equal(t, "2W 1C 1M", Describe(Worker(2, 1, 1)))
}
