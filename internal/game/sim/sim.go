// Package sim owns the assembled simulation: the clock, the cast, the shared
// ledgers and trackers, and the command surface the outside world drives them
// through. A Simulation is single-threaded; the Runner serializes access.
package sim

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hmelgaard/beforefall/internal/game/catalog"
	"github.com/hmelgaard/beforefall/internal/game/character"
	"github.com/hmelgaard/beforefall/internal/game/clock"
	"github.com/hmelgaard/beforefall/internal/game/crisis"
	"github.com/hmelgaard/beforefall/internal/game/ledger"
	"github.com/hmelgaard/beforefall/internal/game/quest"
	"github.com/hmelgaard/beforefall/internal/game/rng"
	"github.com/hmelgaard/beforefall/internal/game/skill"
	"github.com/hmelgaard/beforefall/internal/game/trait"
)

// Debug need levels for the drain/restore commands.
const (
	drainedNeedLevel  = 10.0
	restoredNeedLevel = 100.0
)

// Simulation is one running game world. All state mutation goes through
// Advance and the command methods; none of them are safe for concurrent use.
type Simulation struct {
	runID uuid.UUID

	cat        *catalog.Catalog
	clk        *clock.Clock
	bank       *ledger.Ledger
	skills     *skill.Book
	characters []*character.Character
	byID       map[string]*character.Character
	quests     *quest.Tracker
	crisis     *crisis.Controller
	rand       rng.Source
	logger     *zap.Logger

	// Monotonic wall clock in milliseconds. Keeps advancing while the game
	// clock is paused so deliberation and message timers still elapse.
	wallMs float64

	selected string
}

// New assembles a simulation from a validated catalog. Character update
// order is catalog order and never changes.
//
// Precondition: cat has passed Validate; src and logger are non-nil.
func New(cat *catalog.Catalog, src rng.Source, logger *zap.Logger) (*Simulation, error) {
	if cat == nil || src == nil || logger == nil {
		return nil, fmt.Errorf("sim: nil catalog, source, or logger")
	}
	if len(cat.Characters) == 0 {
		return nil, fmt.Errorf("sim: catalog defines no characters")
	}

	s := &Simulation{
		runID:  uuid.New(),
		cat:    cat,
		clk:    clock.New(),
		bank:   ledger.New(),
		skills: skill.NewBook(),
		byID:   make(map[string]*character.Character),
		rand:   src,
		logger: logger,
	}

	env := character.Env{
		Catalog: cat,
		Ledger:  s.bank,
		Skills:  s.skills,
		Rand:    src,
		Logger:  logger,
	}
	for _, def := range cat.Characters {
		s.skills.InitCharacter(def.ID, def.Profile)
		ch := character.New(def, env)
		s.characters = append(s.characters, ch)
		s.byID[def.ID] = ch
	}
	s.selected = cat.Characters[0].ID

	s.quests = quest.NewTracker(cat.Quests, s.bank, s.skills, logger)
	s.crisis = crisis.NewController(cat.Crisis, s.crisisProfile(), s.crisisWellbeing(), s.clk, s.skills, src, logger)

	logger.Info("simulation assembled",
		zap.String("run_id", s.runID.String()),
		zap.Int("characters", len(s.characters)),
		zap.Int("quests", len(cat.Quests)),
		zap.Bool("crisis", cat.Crisis != nil))
	return s, nil
}

func (s *Simulation) crisisProfile() trait.Profile {
	if s.cat.Crisis == nil {
		return trait.Profile{}
	}
	def, ok := s.cat.CharacterByID(s.cat.Crisis.CharacterID)
	if !ok {
		return trait.Profile{}
	}
	return def.Profile
}

// crisisWellbeing binds the crisis character's live wellbeing for the shadow
// penalty, nil when no crisis is configured.
func (s *Simulation) crisisWellbeing() func() float64 {
	if s.cat.Crisis == nil {
		return nil
	}
	ch, ok := s.byID[s.cat.Crisis.CharacterID]
	if !ok {
		return nil
	}
	return func() float64 { return ch.Needs.Wellbeing() }
}

// RunID identifies this simulation run in logs and snapshots.
func (s *Simulation) RunID() uuid.UUID { return s.runID }

// Clock exposes the game clock for pause control and display.
func (s *Simulation) Clock() *clock.Clock { return s.clk }

// Ledger exposes the shared resource bank.
func (s *Simulation) Ledger() *ledger.Ledger { return s.bank }

// Skills exposes the skill book.
func (s *Simulation) Skills() *skill.Book { return s.skills }

// Quests exposes the quest tracker.
func (s *Simulation) Quests() *quest.Tracker { return s.quests }

// Crisis exposes the crisis controller.
func (s *Simulation) Crisis() *crisis.Controller { return s.crisis }

// Characters returns the cast in update order.
func (s *Simulation) Characters() []*character.Character { return s.characters }

// Character looks a cast member up by ID.
func (s *Simulation) Character(id string) (*character.Character, bool) {
	ch, ok := s.byID[id]
	return ch, ok
}

// WallMs is the monotonic wall clock, for tests and display timers.
func (s *Simulation) WallMs() float64 { return s.wallMs }

// Advance steps the whole world by elapsedMs real milliseconds: wall clock,
// game clock, characters in cast order, then the crisis schedule and the
// quest completion edge. The wall clock always moves; game-time effects
// freeze while the clock is paused.
func (s *Simulation) Advance(elapsedMs float64) {
	if elapsedMs <= 0 {
		return
	}
	s.wallMs += elapsedMs

	gameMinutes := s.clk.GameMinutes(elapsedMs)
	s.clk.Advance(elapsedMs)

	for _, ch := range s.characters {
		ch.Update(gameMinutes, s.wallMs)
	}

	s.crisis.Update()
	s.quests.Check()
}

// SelectCharacter changes which character the presentation layer follows.
func (s *Simulation) SelectCharacter(id string) error {
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("sim: unknown character %q", id)
	}
	s.selected = id
	return nil
}

// Selected returns the currently followed character.
func (s *Simulation) Selected() *character.Character {
	return s.byID[s.selected]
}

// ForceAssignActivity pushes an activity onto a character, returning the
// attitude the assignment met.
func (s *Simulation) ForceAssignActivity(characterID, activityID string) (character.Attitude, error) {
	ch, ok := s.byID[characterID]
	if !ok {
		return "", fmt.Errorf("sim: unknown character %q", characterID)
	}
	activity, ok := s.cat.ActivityByID(activityID)
	if !ok {
		return "", fmt.Errorf("sim: unknown activity %q", activityID)
	}
	attitude := ch.ForceActivity(activity, s.wallMs)
	s.logger.Info("activity assigned",
		zap.String("character", characterID),
		zap.String("activity", activityID),
		zap.String("attitude", string(attitude)))
	return attitude, nil
}

// AttemptCrisisAction rolls a crisis action, nil unless the crisis is
// active.
func (s *Simulation) AttemptCrisisAction(actionID string) *crisis.AttemptResult {
	return s.crisis.AttemptAction(actionID)
}

// GiveUpCrisis abandons an active crisis.
func (s *Simulation) GiveUpCrisis() {
	s.crisis.GiveUp()
}

// AcknowledgeQuest dismisses a pending quest completion and unlocks the
// next quest.
func (s *Simulation) AcknowledgeQuest() {
	s.quests.Advance()
}

// AcknowledgeLevelUp dismisses the pending level-up notification, if any.
func (s *Simulation) AcknowledgeLevelUp() {
	if up := s.skills.PendingLevelUp(); up != nil {
		s.skills.ClearLevelUp(up.CharacterID, up.Category)
	}
}

// TogglePause flips the game clock without touching the wall clock.
func (s *Simulation) TogglePause() {
	s.clk.Toggle()
	s.logger.Info("clock toggled", zap.Bool("paused", s.clk.Paused))
}

// DrainNeeds is a debug command: drops a character's needs to the drained
// level to provoke the low-wellbeing paths.
func (s *Simulation) DrainNeeds(characterID string) error {
	ch, ok := s.byID[characterID]
	if !ok {
		return fmt.Errorf("sim: unknown character %q", characterID)
	}
	ch.Needs = character.Needs{
		Energy:  drainedNeedLevel,
		Social:  drainedNeedLevel,
		Purpose: drainedNeedLevel,
	}
	return nil
}

// RestoreNeeds is a debug command: refills a character's needs.
func (s *Simulation) RestoreNeeds(characterID string) error {
	ch, ok := s.byID[characterID]
	if !ok {
		return fmt.Errorf("sim: unknown character %q", characterID)
	}
	ch.Needs = character.Needs{
		Energy:  restoredNeedLevel,
		Social:  restoredNeedLevel,
		Purpose: restoredNeedLevel,
	}
	return nil
}

// Reset rewinds the whole world to the start of a new game under a fresh
// run ID. The clock comes back paused at day 1, 06:00.
func (s *Simulation) Reset() {
	s.runID = uuid.New()
	s.clk.Reset()
	s.bank.Reset()
	s.skills.Reset()
	for _, def := range s.cat.Characters {
		s.skills.InitCharacter(def.ID, def.Profile)
	}
	for _, ch := range s.characters {
		def, _ := s.cat.CharacterByID(ch.ID)
		ch.Reset(def)
	}
	s.quests.Reset()
	s.crisis.Reset()
	s.wallMs = 0
	s.selected = s.cat.Characters[0].ID
	s.logger.Info("simulation reset", zap.String("run_id", s.runID.String()))
}
