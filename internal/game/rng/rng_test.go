package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hmelgaard/beforefall/internal/game/rng"
)

func TestCryptoSource_Range(t *testing.T) {
	src := rng.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		require.GreaterOrEqual(t, v, 0.0, "Float64 must be >= 0")
		require.Less(t, v, 1.0, "Float64 must be < 1")
	}
}

func TestSeeded_Reproducible(t *testing.T) {
	a := rng.NewSeeded(42)
	b := rng.NewSeeded(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64(), "same seed must produce the same sequence")
	}
}

func TestSequence_ReturnsScriptedValues(t *testing.T) {
	src := rng.NewSequence(0.1, 0.5, 0.9)
	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 0.5, src.Float64())
	assert.Equal(t, 0.9, src.Float64())
	// Final value repeats once exhausted.
	assert.Equal(t, 0.9, src.Float64())
}

func TestSequence_EmptyPanics(t *testing.T) {
	assert.Panics(t, func() { rng.NewSequence() }, "empty sequence is a contract violation")
}

func TestChance_Bounds(t *testing.T) {
	src := rng.NewSequence(0.0)
	assert.False(t, rng.Chance(src, 0), "0% never succeeds")
	assert.False(t, rng.Chance(src, -10), "negative chance never succeeds")
	assert.True(t, rng.Chance(src, 100), "100% always succeeds")
}

func TestChance_RollComparison(t *testing.T) {
	// Roll of 0.59 → 59; succeeds against 60, fails against 59.
	assert.True(t, rng.Chance(rng.NewSequence(0.59), 60))
	assert.False(t, rng.Chance(rng.NewSequence(0.59), 59))
}

func TestSeeded_Range_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		src := rng.NewSeeded(seed)
		for i := 0; i < 20; i++ {
			v := src.Float64()
			assert.GreaterOrEqual(rt, v, 0.0)
			assert.Less(rt, v, 1.0)
		}
	})
}
