package sim_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hmelgaard/beforefall/internal/game/catalog"
	"github.com/hmelgaard/beforefall/internal/game/character"
	"github.com/hmelgaard/beforefall/internal/game/crisis"
	"github.com/hmelgaard/beforefall/internal/game/ledger"
	"github.com/hmelgaard/beforefall/internal/game/rng"
	"github.com/hmelgaard/beforefall/internal/game/sim"
	"github.com/hmelgaard/beforefall/internal/game/trait"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := &catalog.Catalog{
		Activities: []*catalog.Activity{
			{
				ID:            "reading",
				Name:          "Reading",
				Affinities:    map[trait.Trait]float64{trait.Contemplative: 0.9},
				Location:      catalog.Position{X: 100, Y: 100},
				DurationHours: 1,
				Effects:       catalog.NeedEffects{Energy: -5, Purpose: 15},
				SkillCategory: catalog.Creative,
				Outputs:       []catalog.Output{{Resource: ledger.Creativity, BaseAmount: 10}},
				Difficulty:    1,
			},
			{
				ID:            "sit-quietly",
				Name:          "Sit Quietly",
				Location:      catalog.Position{X: 50, Y: 50},
				DurationHours: 0.25,
				Effects:       catalog.NeedEffects{Energy: 5},
				Comfort:       true,
				Difficulty:    1,
			},
		},
		Characters: []*catalog.CharacterDef{
			{
				ID:   "elling",
				Name: "Elling",
				Profile: trait.Profile{
					Primary: trait.Axis{Trait: trait.Contemplative, Intensity: 1.0},
				},
				InitialNeeds: catalog.NeedEffects{Energy: 80, Social: 60, Purpose: 50},
				Position:     catalog.Position{X: 100, Y: 100},
			},
			{
				ID:   "mother",
				Name: "Mother",
				Profile: trait.Profile{
					Primary: trait.Axis{Trait: trait.Nurturing, Intensity: 0.7},
				},
				InitialNeeds: catalog.NeedEffects{Energy: 70, Social: 50, Purpose: 60},
				Position:     catalog.Position{X: 280, Y: 200},
			},
		},
		Skills: []*catalog.SkillDef{
			{ID: "reading", Name: "Reading", Category: catalog.Creative},
		},
		Quests: []*catalog.Quest{
			{
				ID:           "creative-output",
				Title:        "Something To Show",
				Type:         catalog.ResourceQuest,
				Resource:     ledger.Creativity,
				TargetAmount: 100,
			},
		},
		Crisis: &catalog.CrisisDef{
			WarningDay:       10,
			WarningHour:      8,
			TriggerHour:      14,
			CharacterID:      "elling",
			CriticalActionID: "call-emergency",
			ShadowTrait:      trait.Contemplative,
			Actions: []catalog.CrisisAction{
				{ID: "call-emergency", Name: "Call For Help", SkillCategory: catalog.Social, BaseDifficulty: 2},
			},
		},
	}
	require.NoError(t, c.Validate())
	return c
}

func newTestSim(t *testing.T) *sim.Simulation {
	t.Helper()
	s, err := sim.New(testCatalog(t), rng.NewSeeded(1), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestNew_Assembly(t *testing.T) {
	s := newTestSim(t)

	assert.NotEqual(t, "", s.RunID().String())
	assert.Len(t, s.Characters(), 2)
	assert.Equal(t, "elling", s.Selected().ID, "the first catalog character starts selected")
	assert.Equal(t, 1, s.Clock().Day)
	assert.Equal(t, crisis.PhaseInactive, s.Crisis().Phase())

	require.NotNil(t, s.Quests().Active())
	assert.Equal(t, "creative-output", s.Quests().Active().ID)
}

func TestNew_RequiresCharacters(t *testing.T) {
	cat := testCatalog(t)
	cat.Characters = nil
	_, err := sim.New(cat, rng.NewSeeded(1), zap.NewNop())
	assert.Error(t, err)
}

func TestAdvance_WallClockRunsWhilePaused(t *testing.T) {
	s := newTestSim(t)
	s.Clock().Pause()
	day, minute := s.Clock().Day, s.Clock().Minute

	s.Advance(5000)

	assert.Equal(t, 5000.0, s.WallMs(), "the wall clock never pauses")
	assert.Equal(t, day, s.Clock().Day, "game time holds while paused")
	assert.Equal(t, minute, s.Clock().Minute)
}

func TestAdvance_DeliberationElapsesWhilePaused(t *testing.T) {
	s := newTestSim(t)

	// One running tick puts the idle cast into deliberation.
	s.Advance(1)
	ch := s.Selected()
	require.Equal(t, character.StateDeciding, ch.State())

	// Contemplative deliberation is 2500ms of wall time; it elapses even
	// with the game clock stopped.
	s.Clock().Pause()
	s.Advance(3000)
	assert.Equal(t, character.StateWalking, ch.State())
}

func TestAdvance_GameTimeMovesCast(t *testing.T) {
	s := newTestSim(t)

	// 6 real seconds at speed 10 is an hour of game time.
	s.Advance(6000)

	assert.Equal(t, 8, s.Clock().Hour)
	for _, ch := range s.Characters() {
		assert.NotEqual(t, character.StateIdle, ch.State(), "the cast acts on its own")
	}
}

func TestAdvance_CrisisActivationPausesClock(t *testing.T) {
	s := newTestSim(t)
	s.Clock().Day = 10
	s.Clock().Hour = 13

	s.Advance(1)
	assert.Equal(t, crisis.PhaseWarning, s.Crisis().Phase())

	s.Clock().Hour = 14
	s.Advance(1)
	assert.Equal(t, crisis.PhaseActive, s.Crisis().Phase())
	assert.True(t, s.Clock().Paused)

	// Commands still flow while the clock is stopped.
	res := s.AttemptCrisisAction("call-emergency")
	require.NotNil(t, res)
}

func TestAdvance_QuestCompletionEdge(t *testing.T) {
	s := newTestSim(t)
	s.Ledger().Add(ledger.Creativity, 100)

	s.Advance(1)
	pending := s.Quests().PendingCompletion()
	require.NotNil(t, pending)
	assert.Equal(t, "creative-output", pending.ID)

	s.AcknowledgeQuest()
	assert.Nil(t, s.Quests().PendingCompletion())
	assert.True(t, s.Quests().AllComplete())
}

func TestSelectCharacter(t *testing.T) {
	s := newTestSim(t)

	require.NoError(t, s.SelectCharacter("mother"))
	assert.Equal(t, "mother", s.Selected().ID)

	assert.Error(t, s.SelectCharacter("nobody"))
	assert.Equal(t, "mother", s.Selected().ID, "a failed selection keeps the previous choice")
}

func TestForceAssignActivity(t *testing.T) {
	s := newTestSim(t)

	attitude, err := s.ForceAssignActivity("elling", "reading")
	require.NoError(t, err)
	assert.Equal(t, character.AttitudeEager, attitude)
	ch, _ := s.Character("elling")
	assert.Equal(t, character.StateWalking, ch.State())

	_, err = s.ForceAssignActivity("nobody", "reading")
	assert.Error(t, err)
	_, err = s.ForceAssignActivity("elling", "no-such-activity")
	assert.Error(t, err)
}

func TestDrainNeeds_ProvokesComfortBehavior(t *testing.T) {
	s := newTestSim(t)
	require.NoError(t, s.DrainNeeds("elling"))

	ch, _ := s.Character("elling")
	assert.InDelta(t, 10, ch.Needs.Wellbeing(), 1e-9)

	// Collapsed wellbeing skips deliberation entirely.
	s.Advance(1)
	require.Equal(t, character.StateWalking, ch.State())
	assert.True(t, ch.CurrentActivity().Comfort)

	require.NoError(t, s.RestoreNeeds("elling"))
	assert.Equal(t, 100.0, ch.Needs.Energy)
}

func TestSnapshot(t *testing.T) {
	s := newTestSim(t)
	s.Ledger().Add(ledger.Creativity, 47)
	s.Advance(1)

	snap := s.Snapshot()

	assert.Equal(t, s.RunID().String(), snap.RunID)
	assert.Equal(t, 1, snap.Day)
	assert.Equal(t, "elling", snap.Selected)
	assert.Len(t, snap.Characters, 2)
	assert.Equal(t, 47.0, snap.Resources[ledger.Creativity])
	assert.Equal(t, "creative-output", snap.Quests.Active)
	assert.Equal(t, 0.47, snap.Quests.Progress)
	assert.Equal(t, crisis.PhaseInactive, snap.Crisis.Phase)
	assert.Equal(t, 0, snap.Crisis.Attempts)

	// Mutating the snapshot's resource map must not leak into the ledger.
	snap.Resources[ledger.Creativity] = 0
	assert.Equal(t, 47.0, s.Ledger().Get(ledger.Creativity))
}

func TestLevelUpNotification(t *testing.T) {
	s := newTestSim(t)

	// Elling's contemplative bonus starts Creative at 100 XP; 250 more
	// crosses the 300 threshold for level 3.
	s.Skills().GrantXP("elling", catalog.Creative, 250)

	snap := s.Snapshot()
	require.NotNil(t, snap.LevelUp, "crossing a threshold must surface a notification")
	assert.Equal(t, "elling", snap.LevelUp.Character)
	assert.Equal(t, "Creative", snap.LevelUp.Category)
	assert.Equal(t, 3, snap.LevelUp.NewLevel)

	s.AcknowledgeLevelUp()
	assert.Nil(t, s.Snapshot().LevelUp, "acknowledging clears the notification")
}

func TestReset(t *testing.T) {
	s := newTestSim(t)
	firstRun := s.RunID()
	s.Advance(10_000)
	s.Ledger().Add(ledger.Creativity, 50)
	require.NoError(t, s.SelectCharacter("mother"))

	s.Reset()

	assert.NotEqual(t, firstRun, s.RunID(), "a reset starts a new run")
	assert.Equal(t, 1, s.Clock().Day)
	assert.Equal(t, 6, s.Clock().Hour)
	assert.True(t, s.Clock().Paused, "a fresh game starts paused")
	assert.Equal(t, 0.0, s.Ledger().Get(ledger.Creativity))
	assert.Equal(t, 0.0, s.WallMs())
	assert.Equal(t, "elling", s.Selected().ID)
	for _, ch := range s.Characters() {
		assert.Equal(t, character.StateIdle, ch.State())
	}
}

func TestRunner_StartAndStop(t *testing.T) {
	s := newTestSim(t)
	r := sim.NewRunner(s, zap.NewNop(), 0, 0)
	assert.InDelta(t, 1000.0/sim.DefaultTargetFPS, r.TickMs(), 1e-9)

	done := make(chan error, 1)
	go func() { done <- r.Start() }()

	// Let a few ticks land, then verify the world actually moved.
	time.Sleep(150 * time.Millisecond)
	var wall float64
	r.Do(func(s *sim.Simulation) { wall = s.WallMs() })
	assert.Greater(t, wall, 0.0)

	r.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}

	r.Stop() // idempotent
}
