// Package ai implements the utility scorer that ranks catalog activities
// against a character's personality and current needs, and the weighted
// random selection over the ranked candidates.
//
// Formula: utility = 0.6*traitMatch + 0.4*needSatisfaction. Personality
// dominates so trait profiles drive behavior, but needs still matter.
package ai

import (
	"errors"
	"math"
	"sort"

	"github.com/hmelgaard/beforefall/internal/game/catalog"
	"github.com/hmelgaard/beforefall/internal/game/rng"
	"github.com/hmelgaard/beforefall/internal/game/trait"
)

// Weights for the utility formula.
const (
	traitWeight = 0.6
	needWeight  = 0.4
)

// Candidate window for weighted random selection.
const (
	maxCandidates      = 3
	candidateThreshold = 0.8 // within 80% of the best score
)

// Per-need normalization constants: the largest single-activity gain expected
// for each need, used to scale effect strength into [0, 1].
const (
	energyNorm  = 20.0
	socialNorm  = 10.0
	purposeNorm = 20.0
)

// ActivityScore is one ranked scoring result.
type ActivityScore struct {
	Activity         *catalog.Activity
	Utility          float64
	TraitMatch       float64
	NeedSatisfaction float64
}

// TraitMatch computes how well an activity's trait affinities match a
// character's profile: sum(intensity*affinity) / sum(affinity).
//
// This is the single shared trait-match function; the behavior FSM's attitude
// computation uses it too, so the two call sites cannot drift.
//
// Postcondition: returns a value in [0, 1]; exactly 0.5 when the activity
// declares no affinities (neutral by definition, never 0).
func TraitMatch(p trait.Profile, affinities map[trait.Trait]float64) float64 {
	if len(affinities) == 0 {
		return 0.5
	}

	totalMatch := 0.0
	totalWeight := 0.0
	for tr, affinity := range affinities {
		totalMatch += p.Intensity(tr) * affinity
		totalWeight += affinity
	}
	if totalWeight <= 0 {
		return 0.5
	}
	return totalMatch / totalWeight
}

// NeedSatisfaction computes how much an activity's positive effects help the
// character's current needs. For each positively-affected need:
// (1 - current/100) * (effect/norm), weighted-averaged by effect strength.
//
// Postcondition: returns a value in [0, 1]; exactly 0.5 when the activity
// has no positive effects.
func NeedSatisfaction(current, effects catalog.NeedEffects) float64 {
	type pair struct{ value, effect, norm float64 }
	pairs := []pair{
		{current.Energy, effects.Energy, energyNorm},
		{current.Social, effects.Social, socialNorm},
		{current.Purpose, effects.Purpose, purposeNorm},
	}

	totalSatisfaction := 0.0
	totalWeight := 0.0
	for _, p := range pairs {
		if p.effect <= 0 {
			continue
		}
		needLevel := 1 - p.value/100
		strength := p.effect / p.norm
		totalSatisfaction += needLevel * strength
		totalWeight += strength
	}

	if totalWeight == 0 {
		return 0.5
	}
	return math.Min(1, totalSatisfaction/totalWeight)
}

// ScoreActivities scores every non-comfort activity for a character and
// returns the results sorted by utility, highest first. Ties keep catalog
// order (stable sort). Comfort behaviors are excluded; they are selected
// separately when wellbeing is too low.
func ScoreActivities(p trait.Profile, needs catalog.NeedEffects, activities []*catalog.Activity) []ActivityScore {
	var scores []ActivityScore
	for _, a := range activities {
		if a.Comfort {
			continue
		}
		tm := TraitMatch(p, a.Affinities)
		ns := NeedSatisfaction(needs, a.Effects)
		scores = append(scores, ActivityScore{
			Activity:         a,
			Utility:          tm*traitWeight + ns*needWeight,
			TraitMatch:       tm,
			NeedSatisfaction: ns,
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Utility > scores[j].Utility
	})
	return scores
}

// ScoreComfortBehaviors scores only comfort-behavior activities, by trait
// match alone; comfort behaviors exist to match personality, not to satisfy
// needs.
func ScoreComfortBehaviors(p trait.Profile, activities []*catalog.Activity) []ActivityScore {
	var scores []ActivityScore
	for _, a := range activities {
		if !a.Comfort {
			continue
		}
		tm := TraitMatch(p, a.Affinities)
		scores = append(scores, ActivityScore{
			Activity:   a,
			Utility:    tm,
			TraitMatch: tm,
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Utility > scores[j].Utility
	})
	return scores
}

// ErrNoCandidates is returned by SelectActivity when given an empty list.
// An empty selection input is a programming-contract violation, not a
// runtime condition to recover from silently.
var ErrNoCandidates = errors.New("ai: no activities to select from")

// SelectActivity picks an activity from a ranked score list. A single
// candidate is returned directly. Otherwise candidates within 80% of the top
// utility (capped at 3) enter a utility-weighted random pick.
//
// Precondition: scores must be sorted descending by utility (ScoreActivities
// output).
func SelectActivity(scores []ActivityScore, src rng.Source) (*catalog.Activity, error) {
	if len(scores) == 0 {
		return nil, ErrNoCandidates
	}
	if len(scores) == 1 {
		return scores[0].Activity, nil
	}

	threshold := scores[0].Utility * candidateThreshold
	candidates := scores
	for i, s := range scores {
		if s.Utility < threshold {
			candidates = scores[:i]
			break
		}
	}
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	totalWeight := 0.0
	for _, c := range candidates {
		totalWeight += c.Utility
	}

	roll := src.Float64() * totalWeight
	for _, c := range candidates {
		roll -= c.Utility
		if roll <= 0 {
			return c.Activity, nil
		}
	}
	// Floating-point slack: fall back to the top candidate.
	return candidates[0].Activity, nil
}
