package skill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hmelgaard/beforefall/internal/game/catalog"
	"github.com/hmelgaard/beforefall/internal/game/ledger"
	"github.com/hmelgaard/beforefall/internal/game/rng"
	"github.com/hmelgaard/beforefall/internal/game/skill"
)

func TestSuccessChance_KnownValues(t *testing.T) {
	assert.Equal(t, 60.0, skill.SuccessChance(1, 1))
	assert.Equal(t, 65.0, skill.SuccessChance(3, 2))
	assert.Equal(t, 30.0, skill.SuccessChance(1, 3))
	assert.Equal(t, 95.0, skill.SuccessChance(5, 1), "clamped to 95 ceiling")
}

// TestSuccessChance_Property verifies range and monotonicity over the full
// supported domain.
func TestSuccessChance_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(1, 5).Draw(rt, "level")
		difficulty := rapid.IntRange(1, 3).Draw(rt, "difficulty")

		chance := skill.SuccessChance(level, difficulty)
		assert.GreaterOrEqual(rt, chance, 10.0)
		assert.LessOrEqual(rt, chance, 95.0)

		if level < 5 {
			assert.GreaterOrEqual(rt, skill.SuccessChance(level+1, difficulty), chance,
				"chance must be non-decreasing in level")
		}
		if difficulty < 3 {
			assert.LessOrEqual(rt, skill.SuccessChance(level, difficulty+1), chance,
				"chance must be non-increasing in difficulty")
		}
	})
}

func TestCriticalChance(t *testing.T) {
	assert.Equal(t, 10.0, skill.CriticalChance(1))
	assert.Equal(t, 30.0, skill.CriticalChance(5))
}

func TestOutputAmount(t *testing.T) {
	assert.Equal(t, 5.0, skill.OutputAmount(10, 3, false, false), "failure halves the base")
	assert.Equal(t, 10.0, skill.OutputAmount(10, 1, true, false), "level 1 modifier is 1.0")
	assert.Equal(t, 12.0, skill.OutputAmount(10, 3, true, false), "level 3 modifier is 1.2")
	assert.Equal(t, 18.0, skill.OutputAmount(10, 3, true, true), "critical multiplies by 1.5")
	assert.Equal(t, 20.0, skill.OutputAmount(10, 9, true, false), "levels clamp to 5")
	assert.Equal(t, 10.0, skill.OutputAmount(10, 0, true, false), "levels clamp to 1")
}

func TestXPGain(t *testing.T) {
	assert.Equal(t, 30.0, skill.XPGain(3, true))
	assert.Equal(t, 15.0, skill.XPGain(3, false), "failure still grants half XP")
	assert.Equal(t, 5.0, skill.XPGain(1, false))
}

func resolvableActivity() *catalog.Activity {
	return &catalog.Activity{
		ID:            "cooking",
		Name:          "Cooking",
		DurationHours: 1,
		Difficulty:    2,
		SkillCategory: catalog.Practical,
		Outputs:       []catalog.Output{{Resource: ledger.Food, BaseAmount: 10}},
	}
}

func TestResolve_SuccessWithoutCritical(t *testing.T) {
	// Level 1 difficulty 2 → 45% success; crit 10%.
	// First roll 0.40 → 40 < 45: success. Second roll 0.50 → 50 >= 10: no crit.
	res := skill.Resolve(resolvableActivity(), 1, rng.NewSequence(0.40, 0.50))
	assert.True(t, res.Succeeded)
	assert.False(t, res.Critical)
	require.Len(t, res.Outputs, 1)
	assert.Equal(t, 10.0, res.Outputs[0].Amount)
	assert.Equal(t, 20.0, res.XPGained)
	assert.Equal(t, catalog.Practical, res.Category)
}

func TestResolve_CriticalSuccess(t *testing.T) {
	res := skill.Resolve(resolvableActivity(), 1, rng.NewSequence(0.40, 0.05))
	assert.True(t, res.Succeeded)
	assert.True(t, res.Critical)
	assert.Equal(t, 15.0, res.Outputs[0].Amount, "crit: floor(10*1.0*1.5)")
}

func TestResolve_Failure(t *testing.T) {
	res := skill.Resolve(resolvableActivity(), 1, rng.NewSequence(0.99))
	assert.False(t, res.Succeeded)
	assert.False(t, res.Critical, "no critical roll happens on failure")
	assert.Equal(t, 5.0, res.Outputs[0].Amount)
	assert.Equal(t, 10.0, res.XPGained, "half XP on failure")
}

func TestResolve_NoSkillCategoryEarnsNoXP(t *testing.T) {
	a := &catalog.Activity{
		ID: "watch-tv", Name: "Watch TV", DurationHours: 1, Difficulty: 1,
		Outputs: []catalog.Output{{Resource: ledger.Comfort, BaseAmount: 4}},
	}
	res := skill.Resolve(a, 1, rng.NewSequence(0.10, 0.99))
	assert.True(t, res.Succeeded)
	assert.Zero(t, res.XPGained, "activities without a skill category grant no XP")
	assert.Empty(t, res.Category)
}
