package skill

import (
	"fmt"
	"math"

	"github.com/hmelgaard/beforefall/internal/game/catalog"
	"github.com/hmelgaard/beforefall/internal/game/trait"
)

// xpThresholds are the cumulative XP totals for levels 1-5. Index 0 is
// level 1's floor.
var xpThresholds = [...]float64{0, 100, 300, 600, 1000}

// MaxLevel is the highest reachable skill level.
const MaxLevel = 5

// bonusXP is the starting XP granted to the category favored by a
// character's primary trait (enough for level 2).
const bonusXP = 100

// LevelFromXP derives the level (1-5) for an XP total.
//
// Postcondition: return value is in [1, 5]; non-decreasing in xp.
func LevelFromXP(xp float64) int {
	for i := len(xpThresholds) - 1; i >= 0; i-- {
		if xp >= xpThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// LevelProgress returns progress in [0, 1] within the current level; 1 at
// max level.
func LevelProgress(xp float64) float64 {
	level := LevelFromXP(xp)
	if level >= MaxLevel {
		return 1
	}
	lo := xpThresholds[level-1]
	hi := xpThresholds[level]
	return math.Min(1, (xp-lo)/(hi-lo))
}

// XPToNextLevel returns the XP still needed for the next level; 0 at max.
func XPToNextLevel(xp float64) float64 {
	level := LevelFromXP(xp)
	if level >= MaxLevel {
		return 0
	}
	return xpThresholds[level] - xp
}

// LevelUp is a pending level-up notification for the presentation layer.
// Write-once; cleared by the consumer after display.
type LevelUp struct {
	CharacterID string
	Category    catalog.Category
	NewLevel    int
}

// entry tracks accumulated XP for one (character, category) pair.
// XP is monotonically non-decreasing; level is always derived, never stored.
type entry struct {
	xp        float64
	pendingUp *LevelUp
}

// Book holds every character's per-category XP. Not safe for concurrent use;
// all mutation happens on the single simulation turn.
type Book struct {
	entries map[string]map[catalog.Category]*entry
}

// NewBook creates an empty skill book.
func NewBook() *Book {
	return &Book{entries: make(map[string]map[catalog.Category]*entry)}
}

// bonusCategory maps a primary trait to the skill category that starts at
// level 2.
func bonusCategory(t trait.Trait) catalog.Category {
	switch t {
	case trait.Contemplative:
		return catalog.Creative
	case trait.Nurturing, trait.Grounded:
		return catalog.Practical
	case trait.Passionate:
		return catalog.Social
	case trait.Ambitious:
		return catalog.Technical
	default:
		return ""
	}
}

// InitCharacter creates all four category entries for a character, applying
// the primary-trait starting bonus.
//
// Precondition: characterID must not already be initialized.
func (b *Book) InitCharacter(characterID string, p trait.Profile) {
	if _, exists := b.entries[characterID]; exists {
		panic(fmt.Sprintf("skill: character %q initialized twice", characterID))
	}
	bonus := bonusCategory(p.Primary.Trait)
	cats := make(map[catalog.Category]*entry, len(catalog.AllCategories))
	for _, c := range catalog.AllCategories {
		e := &entry{}
		if c == bonus {
			e.xp = bonusXP
		}
		cats[c] = e
	}
	b.entries[characterID] = cats
}

// get returns the entry for (characterID, category); a miss is a
// data-integrity bug since every character is initialized at game start.
func (b *Book) get(characterID string, category catalog.Category) *entry {
	cats, ok := b.entries[characterID]
	if !ok {
		panic(fmt.Sprintf("skill: unknown character %q", characterID))
	}
	e, ok := cats[category]
	if !ok {
		panic(fmt.Sprintf("skill: unknown category %q", category))
	}
	return e
}

// Level returns the derived level for (characterID, category).
func (b *Book) Level(characterID string, category catalog.Category) int {
	return LevelFromXP(b.get(characterID, category).xp)
}

// XP returns the accumulated XP for (characterID, category).
func (b *Book) XP(characterID string, category catalog.Category) float64 {
	return b.get(characterID, category).xp
}

// Progress returns the in-level progress for (characterID, category).
func (b *Book) Progress(characterID string, category catalog.Category) float64 {
	return LevelProgress(b.get(characterID, category).xp)
}

// GrantXP adds XP to (characterID, category), recording a pending level-up
// notification when a threshold is crossed.
//
// Precondition: amount >= 0; XP never decreases.
func (b *Book) GrantXP(characterID string, category catalog.Category, amount float64) {
	if amount < 0 {
		panic("skill: GrantXP called with negative amount")
	}
	e := b.get(characterID, category)
	oldLevel := LevelFromXP(e.xp)
	e.xp += amount
	newLevel := LevelFromXP(e.xp)
	if newLevel > oldLevel {
		e.pendingUp = &LevelUp{CharacterID: characterID, Category: category, NewLevel: newLevel}
	}
}

// PendingLevelUp returns the first pending level-up notification found, or
// nil when none is waiting.
func (b *Book) PendingLevelUp() *LevelUp {
	for _, cats := range b.entries {
		for _, e := range cats {
			if e.pendingUp != nil {
				return e.pendingUp
			}
		}
	}
	return nil
}

// ClearLevelUp clears the pending notification for (characterID, category).
func (b *Book) ClearLevelUp(characterID string, category catalog.Category) {
	b.get(characterID, category).pendingUp = nil
}

// Reset drops all entries for a new game.
func (b *Book) Reset() {
	b.entries = make(map[string]map[catalog.Category]*entry)
}
