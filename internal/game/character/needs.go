package character

import "github.com/hmelgaard/beforefall/internal/game/catalog"

// Needs are the three decaying drives, each clamped to [0, 100]. They are
// restored only by completed activities.
type Needs struct {
	Energy  float64
	Social  float64
	Purpose float64
}

// Per-minute decay divisors. Energy drains fastest, purpose slowest.
const (
	energyDecayMinutes  = 60.0
	socialDecayMinutes  = 120.0
	purposeDecayMinutes = 200.0
)

// Wellbeing ("overskudd") is the arithmetic mean of the three needs. Always
// derived, never stored.
func (n Needs) Wellbeing() float64 {
	return (n.Energy + n.Social + n.Purpose) / 3
}

// Decay drains the needs for the given number of elapsed game minutes,
// flooring each at 0.
func (n *Needs) Decay(gameMinutes float64) {
	n.Energy = max(0, n.Energy-gameMinutes/energyDecayMinutes)
	n.Social = max(0, n.Social-gameMinutes/socialDecayMinutes)
	n.Purpose = max(0, n.Purpose-gameMinutes/purposeDecayMinutes)
}

// Apply adds an activity's need effects, clamping every need to [0, 100].
func (n *Needs) Apply(e catalog.NeedEffects) {
	n.Energy = clamp(n.Energy + e.Energy)
	n.Social = clamp(n.Social + e.Social)
	n.Purpose = clamp(n.Purpose + e.Purpose)
}

// Vector returns the needs as an effects-shaped value for the scorer.
func (n Needs) Vector() catalog.NeedEffects {
	return catalog.NeedEffects{Energy: n.Energy, Social: n.Social, Purpose: n.Purpose}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
