// Package trait implements the personality model: a fixed five-value trait
// enum and the immutable per-character weighting over it that drives every
// scoring decision in the simulation.
package trait

import "fmt"

// Trait is one of the five personality axes.
type Trait string

// The five traits. Every character has a primary trait and may have a
// weaker secondary one.
const (
	Contemplative Trait = "contemplative" // analytical, withdrawn, slow to act
	Nurturing     Trait = "nurturing"     // caretaking, routine-bound
	Ambitious     Trait = "ambitious"     // driven, self-interested
	Passionate    Trait = "passionate"    // impulsive, social
	Grounded      Trait = "grounded"      // calm, attached to home rhythms
)

// All lists every valid trait.
var All = []Trait{Contemplative, Nurturing, Ambitious, Passionate, Grounded}

// Valid reports whether t is one of the five defined traits.
func (t Trait) Valid() bool {
	for _, v := range All {
		if t == v {
			return true
		}
	}
	return false
}

// Axis pairs a trait with an intensity in [0, 1].
type Axis struct {
	Trait     Trait
	Intensity float64
}

// Profile is a character's fixed personality weighting. Never mutated after
// character creation.
type Profile struct {
	Primary   Axis
	Secondary *Axis
}

// Validate checks trait validity and intensity ranges.
//
// Postcondition: nil return guarantees a valid primary trait with intensity
// in [0, 1], and the same for the secondary if present.
func (p Profile) Validate() error {
	if !p.Primary.Trait.Valid() {
		return fmt.Errorf("trait.Profile: unknown primary trait %q", p.Primary.Trait)
	}
	if p.Primary.Intensity < 0 || p.Primary.Intensity > 1 {
		return fmt.Errorf("trait.Profile: primary intensity %v out of [0,1]", p.Primary.Intensity)
	}
	if p.Secondary != nil {
		if !p.Secondary.Trait.Valid() {
			return fmt.Errorf("trait.Profile: unknown secondary trait %q", p.Secondary.Trait)
		}
		if p.Secondary.Intensity < 0 || p.Secondary.Intensity > 1 {
			return fmt.Errorf("trait.Profile: secondary intensity %v out of [0,1]", p.Secondary.Intensity)
		}
	}
	return nil
}

// Intensity returns the profile's intensity for t, or 0 when the profile
// carries no weight on that trait.
func (p Profile) Intensity(t Trait) float64 {
	if p.Primary.Trait == t {
		return p.Primary.Intensity
	}
	if p.Secondary != nil && p.Secondary.Trait == t {
		return p.Secondary.Intensity
	}
	return 0
}

// Deliberation and movement constants derived from the primary trait.
// Contemplative characters deliberate longer and move slower.
const (
	contemplativeDeliberationMs = 2500
	defaultDeliberationMs       = 1500

	contemplativeBaseSpeed = 30.0
	defaultBaseSpeed       = 45.0
)

// DeliberationMs returns the wall-clock deliberation delay, in milliseconds,
// for a character with this profile. Fixed at character creation.
func (p Profile) DeliberationMs() float64 {
	if p.Primary.Trait == Contemplative {
		return contemplativeDeliberationMs
	}
	return defaultDeliberationMs
}

// BaseSpeed returns the base walking speed in distance units per game minute,
// before wellbeing scaling.
func (p Profile) BaseSpeed() float64 {
	if p.Primary.Trait == Contemplative {
		return contemplativeBaseSpeed
	}
	return defaultBaseSpeed
}
