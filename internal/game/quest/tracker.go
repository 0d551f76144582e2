// Package quest tracks sequential quest progression. Quests unlock one at a
// time in catalog order, and progress is always computed live from the
// resource ledger and the skill book rather than accumulated, so it can never
// drift from the state it summarizes.
package quest

import (
	"math"

	"go.uber.org/zap"

	"github.com/hmelgaard/beforefall/internal/game/catalog"
	"github.com/hmelgaard/beforefall/internal/game/ledger"
	"github.com/hmelgaard/beforefall/internal/game/skill"
)

// Status of a quest relative to the tracker's monotone index.
type Status string

const (
	StatusLocked    Status = "locked"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Tracker walks the quest list front to back. The index only ever moves
// forward, one quest at a time, through Advance.
type Tracker struct {
	quests []*catalog.Quest
	bank   *ledger.Ledger
	skills *skill.Book
	logger *zap.Logger

	index   int
	pending *catalog.Quest
}

// NewTracker builds a tracker over the catalog's quest list. The first quest
// is active immediately.
//
// Precondition: all arguments are non-nil; quests have passed catalog
// validation.
func NewTracker(quests []*catalog.Quest, bank *ledger.Ledger, skills *skill.Book, logger *zap.Logger) *Tracker {
	if bank == nil || skills == nil || logger == nil {
		panic("quest: nil collaborator")
	}
	return &Tracker{quests: quests, bank: bank, skills: skills, logger: logger}
}

// Active returns the quest currently being pursued, nil once every quest is
// complete.
func (t *Tracker) Active() *catalog.Quest {
	if t.index >= len(t.quests) {
		return nil
	}
	return t.quests[t.index]
}

// AllComplete reports whether the quest line has been exhausted.
func (t *Tracker) AllComplete() bool {
	return t.index >= len(t.quests) && t.pending == nil
}

// StatusOf reports where a quest sits relative to the monotone index.
func (t *Tracker) StatusOf(q *catalog.Quest) Status {
	for i, candidate := range t.quests {
		if candidate.ID != q.ID {
			continue
		}
		switch {
		case i < t.index:
			return StatusCompleted
		case i == t.index:
			return StatusActive
		default:
			return StatusLocked
		}
	}
	return StatusLocked
}

// Progress derives a quest's completion fraction in [0, 1] from current
// ledger and skill state.
func (t *Tracker) Progress(q *catalog.Quest) float64 {
	switch q.Type {
	case catalog.ResourceQuest:
		return math.Min(1, t.bank.Get(q.Resource)/q.TargetAmount)
	case catalog.SkillQuest:
		level := t.skills.Level(q.CharacterID, q.SkillCategory)
		if level >= q.TargetLevel {
			return 1
		}
		gained := float64(level-1) + t.skills.Progress(q.CharacterID, q.SkillCategory)
		return math.Min(1, gained/float64(q.TargetLevel-1))
	case catalog.CompositeQuest:
		total := 0.0
		for _, cond := range q.Conditions {
			total += math.Min(1, t.bank.Get(cond.Resource)/cond.Amount)
		}
		return total / float64(len(q.Conditions))
	default:
		return 0
	}
}

// ActiveProgress is the derived progress of the active quest, 1 when the
// quest line is exhausted.
func (t *Tracker) ActiveProgress() float64 {
	active := t.Active()
	if active == nil {
		return 1
	}
	return t.Progress(active)
}

// Check fires the completion edge: when the active quest's derived progress
// reaches 1 and no completion is awaiting acknowledgement, the quest becomes
// pending. Repeated calls while pending are no-ops, so a completion is
// announced exactly once.
func (t *Tracker) Check() {
	if t.pending != nil {
		return
	}
	active := t.Active()
	if active == nil {
		return
	}
	if t.Progress(active) >= 1 {
		t.pending = active
		t.logger.Info("quest completed", zap.String("quest", active.ID))
	}
}

// PendingCompletion returns the completed-but-unacknowledged quest, nil if
// none.
func (t *Tracker) PendingCompletion() *catalog.Quest {
	return t.pending
}

// Advance acknowledges the pending completion and unlocks the next quest.
// Calling it with nothing pending is a no-op.
func (t *Tracker) Advance() {
	if t.pending == nil {
		return
	}
	t.pending = nil
	t.index++
	if next := t.Active(); next != nil {
		t.logger.Info("quest unlocked", zap.String("quest", next.ID))
	}
}

// Reset rewinds the tracker to the first quest.
func (t *Tracker) Reset() {
	t.index = 0
	t.pending = nil
}
