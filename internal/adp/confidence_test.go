package adp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidence(t *testing.T) {
	assert.Equal(t, 0.0, confidence(0, 50))
	assert.InDelta(t, 0.06, confidence(3, 50), 1e-9)
	assert.Equal(t, 1.0, confidence(50, 50))
	assert.Equal(t, 1.0, confidence(500, 50))
}

func TestBlendWithSeed(t *testing.T) {
	params := DefaultParameters() // min picks 50, seed blend ratio 0.5

	t.Run("low sample player is pulled toward the seed", func(t *testing.T) {
		got := blendWithSeed(6.0, 3, 10.0, true, params)
		// confidence 0.06 -> seed weight 0.47
		assert.InDelta(t, 7.88, got, 0.001)
	})

	t.Run("no seed leaves the raw value", func(t *testing.T) {
		assert.Equal(t, 6.0, blendWithSeed(6.0, 3, 0, false, params))
	})

	t.Run("full confidence ignores the seed", func(t *testing.T) {
		assert.Equal(t, 6.0, blendWithSeed(6.0, 50, 10.0, true, params))
	})

	t.Run("zero picks lean hardest on the seed", func(t *testing.T) {
		got := blendWithSeed(6.0, 0, 10.0, true, params)
		assert.InDelta(t, 8.0, got, 1e-9) // seed weight = ratio = 0.5
	})
}
