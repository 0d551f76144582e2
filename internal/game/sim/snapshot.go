package sim

import (
	"github.com/hmelgaard/beforefall/internal/game/character"
	"github.com/hmelgaard/beforefall/internal/game/clock"
	"github.com/hmelgaard/beforefall/internal/game/crisis"
	"github.com/hmelgaard/beforefall/internal/game/ledger"
)

// ScoreView is one ranked candidate from a character's deliberation.
type ScoreView struct {
	Activity string  `json:"activity"`
	Utility  float64 `json:"utility"`
}

// ResultView summarizes a character's most recent activity completion.
type ResultView struct {
	Activity  string  `json:"activity"`
	Succeeded bool    `json:"succeeded"`
	Critical  bool    `json:"critical"`
	XPGained  float64 `json:"xp_gained"`
}

// CharacterView is the display slice of one character's state.
type CharacterView struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	State     character.State    `json:"state"`
	X         float64            `json:"x"`
	Y         float64            `json:"y"`
	Energy    float64            `json:"energy"`
	Social    float64            `json:"social"`
	Purpose   float64            `json:"purpose"`
	Wellbeing float64            `json:"wellbeing"`
	Attitude  character.Attitude `json:"attitude,omitempty"`
	Activity  string             `json:"activity,omitempty"`
	Progress  float64            `json:"progress"`
	Protest   string             `json:"protest,omitempty"`
	Scores    []ScoreView        `json:"scores,omitempty"`
	Last      *ResultView        `json:"last_result,omitempty"`
}

// AttemptView summarizes the most recent crisis action attempt.
type AttemptView struct {
	Action    string  `json:"action"`
	Roll      float64 `json:"roll"`
	Chance    float64 `json:"chance"`
	Succeeded bool    `json:"succeeded"`
	Critical  bool    `json:"critical"`
}

// CrisisView summarizes crisis state for display.
type CrisisView struct {
	Phase    crisis.Phase `json:"phase"`
	Attempts int          `json:"attempts"`
	Hope     float64      `json:"hope"`
	Last     *AttemptView `json:"last_attempt,omitempty"`
}

// LevelUpView is a pending level-up notification shaped for display.
type LevelUpView struct {
	Character string `json:"character"`
	Category  string `json:"category"`
	NewLevel  int    `json:"new_level"`
}

// QuestView summarizes quest-line state for display.
type QuestView struct {
	Active      string  `json:"active,omitempty"`
	Progress    float64 `json:"progress"`
	Pending     string  `json:"pending,omitempty"`
	AllComplete bool    `json:"all_complete"`
}

// Snapshot is a read-only view of the whole world at one instant, shaped for
// serialization to a presentation layer.
type Snapshot struct {
	RunID      string                      `json:"run_id"`
	Day        int                         `json:"day"`
	Time       string                      `json:"time"`
	Phase      clock.DayPhase              `json:"phase"`
	Paused     bool                        `json:"paused"`
	Selected   string                      `json:"selected"`
	Resources  map[ledger.Resource]float64 `json:"resources"`
	Characters []CharacterView             `json:"characters"`
	Quests     QuestView                   `json:"quests"`
	Crisis     CrisisView                  `json:"crisis"`
	LevelUp    *LevelUpView                `json:"level_up,omitempty"`
}

// Snapshot captures the current world state. The returned value shares
// nothing mutable with the simulation.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		RunID:     s.runID.String(),
		Day:       s.clk.Day,
		Time:      s.clk.FormattedTime(),
		Phase:     s.clk.Phase(),
		Paused:    s.clk.Paused,
		Selected:  s.selected,
		Resources: s.bank.Snapshot(),
		Crisis: CrisisView{
			Phase:    s.crisis.Phase(),
			Attempts: s.crisis.Attempts(),
			Hope:     s.crisis.Hope(),
		},
	}
	if last := s.crisis.LastResult(); last != nil {
		snap.Crisis.Last = &AttemptView{
			Action:    last.Action.ID,
			Roll:      last.Roll,
			Chance:    last.Chance,
			Succeeded: last.Succeeded,
			Critical:  last.Critical,
		}
	}

	for _, ch := range s.characters {
		view := CharacterView{
			ID:        ch.ID,
			Name:      ch.Name,
			State:     ch.State(),
			X:         ch.Position.X,
			Y:         ch.Position.Y,
			Energy:    ch.Needs.Energy,
			Social:    ch.Needs.Social,
			Purpose:   ch.Needs.Purpose,
			Wellbeing: ch.Needs.Wellbeing(),
			Progress:  ch.Progress(),
			Protest:   ch.Protest(),
		}
		if a := ch.CurrentActivity(); a != nil {
			view.Activity = a.ID
			view.Attitude = ch.AttitudeToward(a)
		}
		for _, score := range ch.DisplayedScores() {
			view.Scores = append(view.Scores, ScoreView{
				Activity: score.Activity.ID,
				Utility:  score.Utility,
			})
		}
		if last := ch.LastResult(); last != nil {
			view.Last = &ResultView{
				Activity:  last.Activity.ID,
				Succeeded: last.Succeeded,
				Critical:  last.Critical,
				XPGained:  last.XPGained,
			}
		}
		snap.Characters = append(snap.Characters, view)
	}

	if active := s.quests.Active(); active != nil {
		snap.Quests.Active = active.ID
	}
	snap.Quests.Progress = s.quests.ActiveProgress()
	if pending := s.quests.PendingCompletion(); pending != nil {
		snap.Quests.Pending = pending.ID
	}
	snap.Quests.AllComplete = s.quests.AllComplete()

	if up := s.skills.PendingLevelUp(); up != nil {
		snap.LevelUp = &LevelUpView{
			Character: up.CharacterID,
			Category:  string(up.Category),
			NewLevel:  up.NewLevel,
		}
	}

	return snap
}
