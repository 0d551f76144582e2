// Package character implements the per-character behavior state machine:
// autonomous activity selection, movement, activity execution, and the
// attitude rules governing reactions to direct player assignments.
package character

import (
	"math"

	"go.uber.org/zap"

	"github.com/hmelgaard/beforefall/internal/game/ai"
	"github.com/hmelgaard/beforefall/internal/game/catalog"
	"github.com/hmelgaard/beforefall/internal/game/ledger"
	"github.com/hmelgaard/beforefall/internal/game/rng"
	"github.com/hmelgaard/beforefall/internal/game/skill"
	"github.com/hmelgaard/beforefall/internal/game/trait"
)

// State names a node in the behavior machine.
type State string

const (
	StateIdle       State = "idle"
	StateDeciding   State = "deciding"
	StateWalking    State = "walking"
	StatePerforming State = "performing"
)

const (
	// Wellbeing below this forces a comfort behavior with no deliberation.
	forcedComfortWellbeing = 20.0
	// Wellbeing in [forcedComfortWellbeing, refusalWellbeing) may refuse
	// autonomous selection with probability (refusalWellbeing-w)/20.
	refusalWellbeing = 40.0

	// Distance at which a walking character snaps onto the target.
	arrivalDistance = 5.0

	// Game minutes a character idles after finishing an activity.
	decisionCooldownMinutes = 2.0

	// Wall-clock lifetime of a protest line before it auto-clears.
	protestDisplayMs = 3000.0

	// Ranked scores retained for display after a deliberation.
	maxDisplayedScores = 3
)

// Env carries the shared simulation collaborators a character acts against.
type Env struct {
	Catalog *catalog.Catalog
	Ledger  *ledger.Ledger
	Skills  *skill.Book
	Rand    rng.Source
	Logger  *zap.Logger
}

// CompletionResult pairs a finished activity with its skill resolution for
// display until the next completion overwrites it.
type CompletionResult struct {
	Activity *catalog.Activity
	skill.Result
}

// Character is a single simulated person. Needs and Position are plain data;
// the state machine fields are private so transitions only happen through
// Update and ForceActivity.
type Character struct {
	ID       string
	Name     string
	Profile  trait.Profile
	Needs    Needs
	Position catalog.Position

	env Env

	state    State
	current  *catalog.Activity
	progress float64

	deliberationMs float64
	baseSpeed      float64

	cooldown float64
	queued   *catalog.Activity

	scores           []ai.ActivityScore
	decisionDeadline float64

	protest        string
	protestClearAt float64

	lastResult *CompletionResult
}

// New builds a character from its catalog definition, idle and ready to
// decide on the first tick.
//
// Precondition: def has passed catalog validation and every Env field is
// non-nil.
func New(def *catalog.CharacterDef, env Env) *Character {
	if def == nil {
		panic("character: nil definition")
	}
	if env.Catalog == nil || env.Ledger == nil || env.Skills == nil || env.Rand == nil || env.Logger == nil {
		panic("character: incomplete environment")
	}
	return &Character{
		ID:      def.ID,
		Name:    def.Name,
		Profile: def.Profile,
		Needs: Needs{
			Energy:  def.InitialNeeds.Energy,
			Social:  def.InitialNeeds.Social,
			Purpose: def.InitialNeeds.Purpose,
		},
		Position:       def.Position,
		env:            env,
		state:          StateIdle,
		deliberationMs: def.Profile.DeliberationMs(),
		baseSpeed:      def.Profile.BaseSpeed(),
	}
}

// State reports the current behavior state.
func (c *Character) State() State { return c.state }

// CurrentActivity is the activity being walked to or performed, nil otherwise.
func (c *Character) CurrentActivity() *catalog.Activity { return c.current }

// Progress is the completion fraction of the activity being performed, in
// [0, 1).
func (c *Character) Progress() float64 { return c.progress }

// Queued is the assignment waiting for the current activity to finish, nil if
// none.
func (c *Character) Queued() *catalog.Activity { return c.queued }

// Protest is the active reluctance or refusal line, empty once it expires.
func (c *Character) Protest() string { return c.protest }

// DisplayedScores returns the top-ranked candidates of the most recent
// deliberation, at most three, for display while deciding.
func (c *Character) DisplayedScores() []ai.ActivityScore {
	if len(c.scores) <= maxDisplayedScores {
		return c.scores
	}
	return c.scores[:maxDisplayedScores]
}

// LastResult is the resolution of the most recently completed activity, nil
// before the first completion.
func (c *Character) LastResult() *CompletionResult { return c.lastResult }

// Update advances the character by gameMinutes of simulated time. wallMs is
// the simulation's monotonic wall clock in milliseconds; deliberation and
// protest lifetimes run on it so they elapse even while the game clock is
// paused, while need decay and movement are game-time driven and freeze with
// the clock.
func (c *Character) Update(gameMinutes, wallMs float64) {
	c.Needs.Decay(gameMinutes)

	if c.protest != "" && wallMs >= c.protestClearAt {
		c.protest = ""
	}

	switch c.state {
	case StateIdle:
		c.cooldown -= gameMinutes
		if c.cooldown <= 0 {
			c.startDecision(wallMs)
		}
	case StateDeciding:
		if wallMs >= c.decisionDeadline {
			c.completeDecision()
		}
	case StateWalking:
		c.walk(gameMinutes)
	case StatePerforming:
		c.perform(gameMinutes, wallMs)
	}
}

// startDecision runs the wellbeing gates and either drops straight into a
// comfort behavior or opens a deliberation window.
func (c *Character) startDecision(wallMs float64) {
	w := c.Needs.Wellbeing()
	if w < forcedComfortWellbeing {
		c.env.Logger.Debug("wellbeing collapsed, forcing comfort behavior",
			zap.String("character", c.ID), zap.Float64("wellbeing", w))
		c.startComfort()
		return
	}
	if w < refusalWellbeing {
		refuseChance := (refusalWellbeing - w) / (refusalWellbeing - forcedComfortWellbeing)
		if c.env.Rand.Float64() < refuseChance {
			c.env.Logger.Debug("low wellbeing, retreating to comfort behavior",
				zap.String("character", c.ID), zap.Float64("wellbeing", w))
			c.startComfort()
			return
		}
	}

	scores := ai.ScoreActivities(c.Profile, c.Needs.Vector(), c.env.Catalog.Regular())
	if len(scores) == 0 {
		c.startComfort()
		return
	}
	c.scores = scores
	c.state = StateDeciding
	c.decisionDeadline = wallMs + c.deliberationMs
	c.env.Logger.Debug("deliberating",
		zap.String("character", c.ID),
		zap.String("top", scores[0].Activity.ID),
		zap.Float64("utility", scores[0].Utility))
}

// completeDecision fires when the deliberation deadline passes. The state
// guard makes a stale deadline from an interrupted deliberation harmless.
func (c *Character) completeDecision() {
	if c.state != StateDeciding {
		return
	}
	selected, err := ai.SelectActivity(c.scores, c.env.Rand)
	if err != nil {
		c.startComfort()
		return
	}
	c.beginWalking(selected)
}

// startComfort sends the character to their best trait-matched comfort
// behavior, skipping deliberation.
func (c *Character) startComfort() {
	comforts := ai.ScoreComfortBehaviors(c.Profile, c.env.Catalog.ComfortBehaviors())
	if len(comforts) == 0 {
		// Catalog validation requires at least one comfort behavior.
		c.state = StateIdle
		c.cooldown = decisionCooldownMinutes
		return
	}
	c.beginWalking(comforts[0].Activity)
}

func (c *Character) beginWalking(a *catalog.Activity) {
	c.current = a
	c.progress = 0
	c.state = StateWalking
	c.scores = nil
	c.env.Logger.Debug("walking to activity",
		zap.String("character", c.ID), zap.String("activity", a.ID))
}

// walk moves toward the current activity's location at a wellbeing-scaled
// speed, snapping onto the target inside the arrival threshold.
func (c *Character) walk(gameMinutes float64) {
	target := c.current.Location
	dx := target.X - c.Position.X
	dy := target.Y - c.Position.Y
	dist := math.Hypot(dx, dy)

	step := c.Needs.Wellbeing() / 100 * c.baseSpeed * gameMinutes
	if dist <= arrivalDistance || step >= dist {
		c.Position = target
		c.state = StatePerforming
		c.progress = 0
		return
	}
	c.Position.X += dx / dist * step
	c.Position.Y += dy / dist * step
}

func (c *Character) perform(gameMinutes, wallMs float64) {
	c.progress += gameMinutes / (c.current.DurationHours * 60)
	if c.progress >= 1 {
		c.completeActivity(wallMs)
	}
}

// completeActivity resolves the finished activity against the skill system,
// banks outputs and need effects, and returns to idle. A queued assignment
// immediately re-enters through the forced path.
func (c *Character) completeActivity(wallMs float64) {
	a := c.current

	level := 1
	if a.SkillCategory != "" {
		level = c.env.Skills.Level(c.ID, a.SkillCategory)
	}
	res := skill.Resolve(a, level, c.env.Rand)
	if res.Category != "" && res.XPGained > 0 {
		c.env.Skills.GrantXP(c.ID, res.Category, res.XPGained)
	}
	for _, out := range res.Outputs {
		c.env.Ledger.Add(out.Resource, out.Amount)
	}
	c.Needs.Apply(a.Effects)
	c.lastResult = &CompletionResult{Activity: a, Result: res}

	c.env.Logger.Info("activity completed",
		zap.String("character", c.ID),
		zap.String("activity", a.ID),
		zap.Bool("succeeded", res.Succeeded),
		zap.Bool("critical", res.Critical),
		zap.Float64("xp", res.XPGained))

	c.current = nil
	c.progress = 0
	c.state = StateIdle
	c.cooldown = decisionCooldownMinutes

	if c.queued != nil {
		next := c.queued
		c.queued = nil
		c.ForceActivity(next, wallMs)
	}
}

// ForceActivity assigns an activity directly. A busy character (walking or
// performing) queues it instead, one slot, latest assignment wins. Otherwise
// the character heads straight for it, voicing a protest line first when
// their attitude calls for one. Returns the attitude the assignment met.
//
// Precondition: activity is not nil.
func (c *Character) ForceActivity(activity *catalog.Activity, wallMs float64) Attitude {
	attitude := c.AttitudeToward(activity)
	if c.state == StateWalking || c.state == StatePerforming {
		c.queued = activity
		c.env.Logger.Debug("assignment queued",
			zap.String("character", c.ID), zap.String("activity", activity.ID))
		return attitude
	}
	if line := protestLine(c.Profile.Primary.Trait, attitude); line != "" {
		c.protest = line
		c.protestClearAt = wallMs + protestDisplayMs
	}
	c.beginWalking(activity)
	return attitude
}

// Reset returns the character to its catalog-defined starting condition.
func (c *Character) Reset(def *catalog.CharacterDef) {
	c.Needs = Needs{
		Energy:  def.InitialNeeds.Energy,
		Social:  def.InitialNeeds.Social,
		Purpose: def.InitialNeeds.Purpose,
	}
	c.Position = def.Position
	c.state = StateIdle
	c.current = nil
	c.progress = 0
	c.cooldown = 0
	c.queued = nil
	c.scores = nil
	c.decisionDeadline = 0
	c.protest = ""
	c.protestClearAt = 0
	c.lastResult = nil
}
