// Package skill implements the skill/XP model and the resolver that converts
// skill level and task difficulty into success probability, output magnitude,
// critical chance, and XP gain.
package skill

import (
	"math"

	"github.com/hmelgaard/beforefall/internal/game/catalog"
	"github.com/hmelgaard/beforefall/internal/game/ledger"
	"github.com/hmelgaard/beforefall/internal/game/rng"
)

// outputModifiers scales resource output by skill level. Index 0 is unused;
// indexes 1-5 correspond to levels 1-5.
var outputModifiers = [...]float64{1.0, 1.0, 1.2, 1.5, 1.8, 2.0}

// SuccessChance returns the percent chance of completing a task of the given
// difficulty at the given skill level: 50 + 10*level - 15*(difficulty-1),
// clamped to [10, 95].
//
// Postcondition: return value is in [10, 95]; non-decreasing in level,
// non-increasing in difficulty.
func SuccessChance(level, difficulty int) float64 {
	chance := 50 + 10*float64(level) - 15*float64(difficulty-1)
	return math.Max(10, math.Min(95, chance))
}

// CriticalChance returns the percent chance of a critical success at the
// given skill level: 5 + 5*level.
func CriticalChance(level int) float64 {
	return 5 + 5*float64(level)
}

// OutputModifier returns the output multiplier for a skill level, clamping
// out-of-range levels to [1, 5].
func OutputModifier(level int) float64 {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	return outputModifiers[level]
}

// OutputAmount computes the resource amount produced, floored to an integer
// quantity. Failure yields half the base; critical success yields 1.5x the
// level-modified amount.
func OutputAmount(base float64, level int, succeeded, critical bool) float64 {
	if !succeeded {
		return math.Floor(base * 0.5)
	}
	if critical {
		return math.Floor(base * OutputModifier(level) * 1.5)
	}
	return math.Floor(base * OutputModifier(level))
}

// XPGain computes XP for completing a task: 10*difficulty on success, half
// of that (floored) on failure.
func XPGain(difficulty int, succeeded bool) float64 {
	base := 10 * float64(difficulty)
	if !succeeded {
		return math.Floor(base * 0.5)
	}
	return base
}

// ResolvedOutput is one resource amount produced by a completed activity.
type ResolvedOutput struct {
	Resource ledger.Resource
	Amount   float64
}

// Result captures the full outcome of resolving an activity completion.
type Result struct {
	Succeeded bool
	Critical  bool
	Outputs   []ResolvedOutput
	XPGained  float64
	Category  catalog.Category // empty when the activity trains no skill
}

// Resolve rolls an activity completion at the given skill level: one success
// roll against SuccessChance, then an independent critical roll only on
// success. Outputs and XP follow the rolls. Pure given the injected source.
//
// Precondition: activity must be non-nil and validated; src must be non-nil.
func Resolve(activity *catalog.Activity, level int, src rng.Source) Result {
	difficulty := activity.Difficulty
	succeeded := rng.Chance(src, SuccessChance(level, difficulty))
	critical := succeeded && rng.Chance(src, CriticalChance(level))

	var outputs []ResolvedOutput
	for _, out := range activity.Outputs {
		outputs = append(outputs, ResolvedOutput{
			Resource: out.Resource,
			Amount:   OutputAmount(out.BaseAmount, level, succeeded, critical),
		})
	}

	var xp float64
	if activity.SkillCategory != "" {
		xp = XPGain(difficulty, succeeded)
	}

	return Result{
		Succeeded: succeeded,
		Critical:  critical,
		Outputs:   outputs,
		XPGained:  xp,
		Category:  activity.SkillCategory,
	}
}
