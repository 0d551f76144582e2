// Package clock implements the simulated game clock. Time advances from real
// elapsed milliseconds at a fixed speed of game-minutes per real second and
// only ever moves forward.
package clock

import "fmt"

// DefaultSpeed is the number of game minutes that pass per real second.
const DefaultSpeed = 10.0

// DayPhase is the coarse time-of-day bucket derived from the hour.
type DayPhase string

// Day phases in chronological order.
const (
	Morning   DayPhase = "morning"   // [6, 12)
	Afternoon DayPhase = "afternoon" // [12, 18)
	Evening   DayPhase = "evening"   // [18, 22)
	Night     DayPhase = "night"     // [22, 24) and [0, 6)
)

// Clock tracks simulated game time.
//
// Invariant: after every Advance, Minute is in [0, 60), Hour is in [0, 24),
// and Day is >= 1.
type Clock struct {
	Day    int
	Hour   int
	Minute float64
	Paused bool

	// Speed is game minutes per real second.
	Speed float64
}

// New creates a running clock at day 1, 07:00.
func New() *Clock {
	return &Clock{Day: 1, Hour: 7, Speed: DefaultSpeed}
}

// Advance moves game time forward by deltaRealMs real milliseconds.
// No-op while paused. Negative deltas are treated as zero; time never
// moves backwards.
//
// Postcondition: Minute < 60, Hour < 24, Day >= 1 regardless of delta size.
func (c *Clock) Advance(deltaRealMs float64) {
	if c.Paused || deltaRealMs <= 0 {
		return
	}

	gameMinutes := deltaRealMs / 1000 * c.Speed
	c.Minute += gameMinutes

	for c.Minute >= 60 {
		c.Minute -= 60
		c.Hour++
	}
	for c.Hour >= 24 {
		c.Hour -= 24
		c.Day++
	}
}

// GameMinutes converts a real-millisecond delta into game minutes at the
// clock's speed, returning 0 while paused.
func (c *Clock) GameMinutes(deltaRealMs float64) float64 {
	if c.Paused || deltaRealMs <= 0 {
		return 0
	}
	return deltaRealMs / 1000 * c.Speed
}

// Pause stops time. Idempotent.
func (c *Clock) Pause() { c.Paused = true }

// Resume restarts time. Idempotent.
func (c *Clock) Resume() { c.Paused = false }

// Toggle flips the paused state.
func (c *Clock) Toggle() { c.Paused = !c.Paused }

// Phase returns the day phase for the current hour. Pure.
func (c *Clock) Phase() DayPhase {
	switch {
	case c.Hour >= 6 && c.Hour < 12:
		return Morning
	case c.Hour >= 12 && c.Hour < 18:
		return Afternoon
	case c.Hour >= 18 && c.Hour < 22:
		return Evening
	default:
		return Night
	}
}

// FormattedTime returns the current time as "HH:MM".
func (c *Clock) FormattedTime() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, int(c.Minute))
}

// Reset returns the clock to the start of a new game: day 1, 06:00, paused.
func (c *Clock) Reset() {
	c.Day = 1
	c.Hour = 6
	c.Minute = 0
	c.Paused = true
}
