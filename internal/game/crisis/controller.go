// Package crisis runs the scripted late-game emergency: a warning phase, a
// clock-stopping active phase, and a set of skill-checked actions whose
// outcome ends the scenario.
package crisis

import (
	"go.uber.org/zap"

	"github.com/hmelgaard/beforefall/internal/game/catalog"
	"github.com/hmelgaard/beforefall/internal/game/clock"
	"github.com/hmelgaard/beforefall/internal/game/rng"
	"github.com/hmelgaard/beforefall/internal/game/skill"
	"github.com/hmelgaard/beforefall/internal/game/trait"
)

// Phase of the crisis scenario. Saved and Lost are terminal.
type Phase string

const (
	PhaseInactive Phase = "inactive"
	PhaseWarning  Phase = "warning"
	PhaseActive   Phase = "active"
	PhaseSaved    Phase = "saved"
	PhaseLost     Phase = "lost"
)

const (
	// Each attempt at a given action, successful or not, raises the
	// pressure on that action.
	attemptPenalty = 15.0
	// Hope gained per successful supporting action, and its cap.
	hopePerSuccess = 10.0
	hopeCap        = 20.0
	// Applied to every action when the crisis preys on the acting
	// character's primary trait and their wellbeing has slipped under the
	// shadow threshold.
	shadowPenalty   = 20.0
	shadowWellbeing = 30.0

	minChance = 5.0
	maxChance = 95.0
)

// AttemptResult records one crisis action roll for display.
type AttemptResult struct {
	Action    *catalog.CrisisAction
	Roll      float64
	Chance    float64
	Succeeded bool
	Critical  bool
}

// Controller owns the crisis lifecycle. It pauses the game clock while the
// crisis is active and resumes it on resolution.
type Controller struct {
	def       *catalog.CrisisDef
	profile   trait.Profile
	clk       *clock.Clock
	skills    *skill.Book
	rand      rng.Source
	wellbeing func() float64
	logger    *zap.Logger

	phase      Phase
	attempts   map[string]int
	hope       float64
	lastResult *AttemptResult
}

// NewController wires a controller over the catalog's crisis definition.
// A nil definition yields an inert controller that never leaves the inactive
// phase. profile and wellbeing describe the crisis character, feeding the
// shadow trait penalty.
func NewController(def *catalog.CrisisDef, profile trait.Profile, wellbeing func() float64, clk *clock.Clock, skills *skill.Book, rand rng.Source, logger *zap.Logger) *Controller {
	if clk == nil || skills == nil || rand == nil || logger == nil {
		panic("crisis: nil collaborator")
	}
	if wellbeing == nil {
		wellbeing = func() float64 { return 100 }
	}
	return &Controller{
		def:       def,
		profile:   profile,
		clk:       clk,
		skills:    skills,
		rand:      rand,
		wellbeing: wellbeing,
		logger:    logger,
		phase:     PhaseInactive,
		attempts:  make(map[string]int),
	}
}

// Phase reports the current crisis phase.
func (c *Controller) Phase() Phase { return c.phase }

// Hope is the accumulated bonus from successful supporting actions.
func (c *Controller) Hope() float64 { return c.hope }

// Attempts is the total number of crisis actions tried so far.
func (c *Controller) Attempts() int {
	total := 0
	for _, n := range c.attempts {
		total += n
	}
	return total
}

// AttemptsOf is the number of tries of one specific action.
func (c *Controller) AttemptsOf(actionID string) int { return c.attempts[actionID] }

// LastResult is the most recent attempt, nil before the first.
func (c *Controller) LastResult() *AttemptResult { return c.lastResult }

// Definition exposes the crisis definition for display, nil when no crisis
// is configured.
func (c *Controller) Definition() *catalog.CrisisDef { return c.def }

// Update advances the phase from the game clock. The warning fires at the
// configured day and hour; the active phase fires at the trigger hour and
// stops the clock until the crisis resolves.
func (c *Controller) Update() {
	if c.def == nil {
		return
	}
	switch c.phase {
	case PhaseInactive:
		if reached(c.clk, c.def.WarningDay, c.def.WarningHour) {
			c.phase = PhaseWarning
			c.logger.Warn("crisis warning",
				zap.String("character", c.def.CharacterID),
				zap.Int("day", c.clk.Day))
		}
	case PhaseWarning:
		if reached(c.clk, c.def.WarningDay, c.def.TriggerHour) {
			c.phase = PhaseActive
			c.clk.Pause()
			c.logger.Warn("crisis active, clock stopped",
				zap.String("character", c.def.CharacterID))
		}
	}
}

func reached(clk *clock.Clock, day, hour int) bool {
	if clk.Day != day {
		return clk.Day > day
	}
	return clk.Hour >= hour
}

// ActionSuccessChance computes the current chance for an action: the skill
// resolver's base chance at the crisis character's level, minus the attempt
// penalty for prior tries of that same action, minus the shadow trait
// penalty, plus banked hope on the critical action, clamped to [5, 95]. The
// shadow penalty bites every action while the crisis is active and the
// character's wellbeing is under 30.
func (c *Controller) ActionSuccessChance(action *catalog.CrisisAction) float64 {
	level := c.skills.Level(c.def.CharacterID, action.SkillCategory)
	chance := skill.SuccessChance(level, action.BaseDifficulty)
	chance -= attemptPenalty * float64(c.attempts[action.ID])
	if c.profile.Primary.Trait == c.def.ShadowTrait &&
		c.phase == PhaseActive && c.wellbeing() < shadowWellbeing {
		chance -= shadowPenalty
	}
	if action.ID == c.def.CriticalActionID {
		chance += c.hope
	}
	if chance < minChance {
		return minChance
	}
	if chance > maxChance {
		return maxChance
	}
	return chance
}

// AttemptAction rolls one crisis action. Returns nil unless the crisis is
// active or the action ID is unknown. A successful critical action saves the
// scenario; a successful supporting action that gives hope banks it.
func (c *Controller) AttemptAction(actionID string) *AttemptResult {
	if c.phase != PhaseActive {
		return nil
	}
	action, ok := c.def.ActionByID(actionID)
	if !ok {
		c.logger.Warn("unknown crisis action", zap.String("action", actionID))
		return nil
	}

	chance := c.ActionSuccessChance(action)
	roll := rng.Roll(c.rand)
	succeeded := roll < chance
	c.attempts[action.ID]++

	result := &AttemptResult{
		Action:    action,
		Roll:      roll,
		Chance:    chance,
		Succeeded: succeeded,
		Critical:  action.ID == c.def.CriticalActionID,
	}
	c.lastResult = result

	if succeeded {
		if result.Critical {
			c.phase = PhaseSaved
			c.clk.Resume()
			c.logger.Info("crisis resolved", zap.String("action", action.ID))
		} else if action.GivesHope {
			c.hope = min(hopeCap, c.hope+hopePerSuccess)
			c.logger.Info("hope gained",
				zap.String("action", action.ID), zap.Float64("hope", c.hope))
		}
	} else {
		c.logger.Info("crisis action failed",
			zap.String("action", action.ID), zap.Float64("chance", chance))
	}
	return result
}

// GiveUp abandons the crisis, losing the scenario and restarting the clock.
// Allowed from the warning phase onward; a no-op once resolved or before the
// warning fires.
func (c *Controller) GiveUp() {
	if c.phase != PhaseWarning && c.phase != PhaseActive {
		return
	}
	c.phase = PhaseLost
	c.clk.Resume()
	c.logger.Info("crisis abandoned")
}

// Reset returns the controller to the inactive phase with no history.
func (c *Controller) Reset() {
	c.phase = PhaseInactive
	c.attempts = make(map[string]int)
	c.hope = 0
	c.lastResult = nil
}
