package adp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideSource(t *testing.T) {
	tests := []struct {
		name    string
		mode    BlendMode
		hasSlow bool
		hasFast bool
		hasSeed bool
		want    adpSource
	}{
		{"slow only with slow data", BlendSlowOnly, true, false, false, sourceSlow},
		{"slow only ignores fast data", BlendSlowOnly, false, true, false, sourceNone},
		{"slow only falls back to seed", BlendSlowOnly, false, true, true, sourceSeed},
		{"fast only with fast data", BlendFastOnly, false, true, false, sourceFast},
		{"fast only ignores slow data", BlendFastOnly, true, false, false, sourceNone},
		{"fast only falls back to seed", BlendFastOnly, true, false, true, sourceSeed},
		{"blended with both pools", BlendBoth, true, true, false, sourceBoth},
		{"blended with slow only", BlendBoth, true, false, false, sourceSlow},
		{"blended with fast only", BlendBoth, false, true, false, sourceFast},
		{"blended seed fallback", BlendBoth, false, false, true, sourceSeed},
		{"nothing anywhere", BlendBoth, false, false, false, sourceNone},
		{"seed trumps nothing in slow only", BlendSlowOnly, false, false, true, sourceSeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decideSource(tt.mode, tt.hasSlow, tt.hasFast, tt.hasSeed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCombinePlayerBlendsBothPools(t *testing.T) {
	decision := BlendDecision{Mode: BlendBoth, SlowWeight: 0.4, FastWeight: 0.6}
	slow := &PoolResult{WeightedADP: 10, PickCount: 30, BestPick: 5, WorstPick: 18, StdDev: 3.2}
	fast := &PoolResult{WeightedADP: 20, PickCount: 20, BestPick: 8, WorstPick: 25, StdDev: 4.1}

	got, ok := combinePlayer(decision, slow, fast, 0, false)

	require.True(t, ok)
	assert.InDelta(t, 16.0, got.rawADP, 1e-9)
	assert.Equal(t, 50, got.pickCount)
	assert.Equal(t, 5, got.bestPick)
	assert.Equal(t, 25, got.worstPick)
	assert.Equal(t, 4.1, got.stdDev) // fast pool wins as the fresher signal
	assert.True(t, got.blended)
	assert.False(t, got.seedOnly)
}

func TestCombinePlayerSinglePoolNoWeighting(t *testing.T) {
	decision := BlendDecision{Mode: BlendBoth, SlowWeight: 0.4, FastWeight: 0.6}
	slow := &PoolResult{WeightedADP: 10, PickCount: 12, BestPick: 6, WorstPick: 15, StdDev: 2.5}

	got, ok := combinePlayer(decision, slow, nil, 0, false)

	require.True(t, ok)
	// a lone pool is used verbatim, the blend weight never applies
	assert.Equal(t, 10.0, got.rawADP)
	assert.Equal(t, 12, got.pickCount)
	assert.False(t, got.blended)
}

func TestCombinePlayerSeedFallback(t *testing.T) {
	decision := BlendDecision{Mode: BlendFastOnly, FastWeight: 1}

	got, ok := combinePlayer(decision, nil, nil, 33.5, true)

	require.True(t, ok)
	assert.Equal(t, 33.5, got.rawADP)
	assert.Equal(t, 0, got.pickCount)
	assert.Equal(t, 0.0, got.stdDev)
	assert.True(t, got.seedOnly)
}

func TestCombinePlayerDropped(t *testing.T) {
	decision := BlendDecision{Mode: BlendSlowOnly, SlowWeight: 1}
	fast := &PoolResult{WeightedADP: 7, PickCount: 100}

	_, ok := combinePlayer(decision, nil, fast, 0, false)

	assert.False(t, ok)
}
