// Package catalog holds the static data tables that configure a game: the
// activity catalog, character definitions, quest sequence, skill definitions,
// and the scripted crisis. Catalogs are loaded once at startup, validated,
// and treated as immutable; a lookup miss after validation is a programming
// error, not a runtime condition.
package catalog

import (
	"fmt"

	"github.com/hmelgaard/beforefall/internal/game/ledger"
	"github.com/hmelgaard/beforefall/internal/game/trait"
)

// Category is a skill category trained by activities.
type Category string

// The four skill categories.
const (
	Practical Category = "Practical"
	Creative  Category = "Creative"
	Social    Category = "Social"
	Technical Category = "Technical"
)

// AllCategories lists every valid skill category.
var AllCategories = []Category{Practical, Creative, Social, Technical}

// Valid reports whether c is a defined category.
func (c Category) Valid() bool {
	for _, v := range AllCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Position is a point in the apartment's 2D space.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// NeedEffects holds per-need deltas (for activity effects) or absolute
// values (for initial needs). Positive effect values restore, negative
// consume.
type NeedEffects struct {
	Energy  float64 `yaml:"energy"`
	Social  float64 `yaml:"social"`
	Purpose float64 `yaml:"purpose"`
}

// Output is a resource produced when an activity completes.
type Output struct {
	Resource   ledger.Resource `yaml:"resource"`
	BaseAmount float64         `yaml:"base_amount"`
}

// Activity is one catalog entry, shared by reference and never mutated.
type Activity struct {
	ID            string
	Name          string
	Icon          string
	Affinities    map[trait.Trait]float64
	Location      Position
	DurationHours float64
	Effects       NeedEffects
	Comfort       bool
	SkillCategory Category // empty = activity trains no skill
	Outputs       []Output
	Difficulty    int // 1-3; loader defaults 0 to 1
}

// Validate checks a single activity's invariants.
//
// Postcondition: nil return guarantees non-empty ID and name, positive
// duration, affinities in [0,1] on valid traits, difficulty in [1,3], valid
// output resources, and a valid skill category when one is declared.
func (a *Activity) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("catalog.Activity: ID must not be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("catalog.Activity %q: name must not be empty", a.ID)
	}
	if a.DurationHours <= 0 {
		return fmt.Errorf("catalog.Activity %q: duration must be positive, got %v", a.ID, a.DurationHours)
	}
	for tr, aff := range a.Affinities {
		if !tr.Valid() {
			return fmt.Errorf("catalog.Activity %q: unknown trait %q", a.ID, tr)
		}
		if aff < 0 || aff > 1 {
			return fmt.Errorf("catalog.Activity %q: affinity for %q out of [0,1]: %v", a.ID, tr, aff)
		}
	}
	if a.Difficulty < 1 || a.Difficulty > 3 {
		return fmt.Errorf("catalog.Activity %q: difficulty must be 1-3, got %d", a.ID, a.Difficulty)
	}
	if a.SkillCategory != "" && !a.SkillCategory.Valid() {
		return fmt.Errorf("catalog.Activity %q: unknown skill category %q", a.ID, a.SkillCategory)
	}
	for _, out := range a.Outputs {
		if !out.Resource.Valid() {
			return fmt.Errorf("catalog.Activity %q: unknown resource %q", a.ID, out.Resource)
		}
		if out.BaseAmount <= 0 {
			return fmt.Errorf("catalog.Activity %q: output base amount must be positive", a.ID)
		}
	}
	return nil
}

// CharacterDef is the static definition a live character is created from.
type CharacterDef struct {
	ID           string
	Name         string
	Profile      trait.Profile
	InitialNeeds NeedEffects
	Position     Position
}

// Validate checks the definition's invariants.
func (d *CharacterDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("catalog.CharacterDef: ID must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("catalog.CharacterDef %q: name must not be empty", d.ID)
	}
	if err := d.Profile.Validate(); err != nil {
		return fmt.Errorf("catalog.CharacterDef %q: %w", d.ID, err)
	}
	for _, v := range []float64{d.InitialNeeds.Energy, d.InitialNeeds.Social, d.InitialNeeds.Purpose} {
		if v < 0 || v > 100 {
			return fmt.Errorf("catalog.CharacterDef %q: initial need %v out of [0,100]", d.ID, v)
		}
	}
	return nil
}

// SkillDef describes one trainable skill.
type SkillDef struct {
	ID          string
	Name        string
	Category    Category
	Description string
}

// QuestType discriminates how quest progress is derived.
type QuestType string

// Quest types.
const (
	ResourceQuest  QuestType = "resource"
	SkillQuest     QuestType = "skill"
	CompositeQuest QuestType = "composite"
)

// ResourceCondition is one threshold of a composite quest.
type ResourceCondition struct {
	Resource ledger.Resource `yaml:"resource"`
	Amount   float64         `yaml:"amount"`
}

// Quest is a static quest definition. Progress is always derived live from
// ledger and skill state, never stored here.
type Quest struct {
	ID          string
	Title       string
	Description string
	Type        QuestType

	// Resource quests.
	Resource     ledger.Resource
	TargetAmount float64

	// Skill quests.
	CharacterID   string
	SkillCategory Category
	TargetLevel   int

	// Composite quests.
	Conditions []ResourceCondition
}

// Validate checks the per-type required fields.
func (q *Quest) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("catalog.Quest: ID must not be empty")
	}
	switch q.Type {
	case ResourceQuest:
		if !q.Resource.Valid() {
			return fmt.Errorf("catalog.Quest %q: unknown resource %q", q.ID, q.Resource)
		}
		if q.TargetAmount <= 0 {
			return fmt.Errorf("catalog.Quest %q: target amount must be positive", q.ID)
		}
	case SkillQuest:
		if q.CharacterID == "" {
			return fmt.Errorf("catalog.Quest %q: skill quest requires a character", q.ID)
		}
		if !q.SkillCategory.Valid() {
			return fmt.Errorf("catalog.Quest %q: unknown skill category %q", q.ID, q.SkillCategory)
		}
		if q.TargetLevel < 2 || q.TargetLevel > 5 {
			return fmt.Errorf("catalog.Quest %q: target level must be 2-5, got %d", q.ID, q.TargetLevel)
		}
	case CompositeQuest:
		if len(q.Conditions) == 0 {
			return fmt.Errorf("catalog.Quest %q: composite quest requires conditions", q.ID)
		}
		for _, c := range q.Conditions {
			if !c.Resource.Valid() {
				return fmt.Errorf("catalog.Quest %q: unknown resource %q", q.ID, c.Resource)
			}
			if c.Amount <= 0 {
				return fmt.Errorf("catalog.Quest %q: condition amount must be positive", q.ID)
			}
		}
	default:
		return fmt.Errorf("catalog.Quest %q: unknown type %q", q.ID, q.Type)
	}
	return nil
}

// CrisisAction is one action available while the crisis is active.
type CrisisAction struct {
	ID             string
	Name           string
	Icon           string
	Description    string
	SkillCategory  Category
	BaseDifficulty int
	GivesHope      bool
}

// CrisisDef configures the scripted, time-triggered emergency.
type CrisisDef struct {
	// WarningDay and WarningHour mark when the warning phase begins.
	WarningDay  int
	WarningHour int
	// TriggerHour is the hour (same day) when the crisis becomes active.
	TriggerHour int
	// CharacterID is the character whose skills resolve every action.
	CharacterID string
	// CriticalActionID names the action whose success resolves the crisis.
	CriticalActionID string
	// ShadowTrait is the primary trait subject to the shadow penalty.
	ShadowTrait trait.Trait
	Actions     []CrisisAction
}

// Validate checks the crisis definition's invariants.
func (c *CrisisDef) Validate() error {
	if c.WarningDay < 1 {
		return fmt.Errorf("catalog.CrisisDef: warning day must be >= 1, got %d", c.WarningDay)
	}
	if c.WarningHour < 0 || c.WarningHour > 23 || c.TriggerHour < 0 || c.TriggerHour > 23 {
		return fmt.Errorf("catalog.CrisisDef: hours must be 0-23")
	}
	if c.TriggerHour <= c.WarningHour {
		return fmt.Errorf("catalog.CrisisDef: trigger hour %d must be after warning hour %d", c.TriggerHour, c.WarningHour)
	}
	if c.CharacterID == "" {
		return fmt.Errorf("catalog.CrisisDef: character must not be empty")
	}
	if !c.ShadowTrait.Valid() {
		return fmt.Errorf("catalog.CrisisDef: unknown shadow trait %q", c.ShadowTrait)
	}
	if len(c.Actions) == 0 {
		return fmt.Errorf("catalog.CrisisDef: at least one action is required")
	}
	ids := make(map[string]struct{}, len(c.Actions))
	for _, a := range c.Actions {
		if a.ID == "" {
			return fmt.Errorf("catalog.CrisisDef: action with empty ID")
		}
		if _, dup := ids[a.ID]; dup {
			return fmt.Errorf("catalog.CrisisDef: duplicate action ID %q", a.ID)
		}
		ids[a.ID] = struct{}{}
		if !a.SkillCategory.Valid() {
			return fmt.Errorf("catalog.CrisisDef action %q: unknown skill category %q", a.ID, a.SkillCategory)
		}
		if a.BaseDifficulty < 1 || a.BaseDifficulty > 3 {
			return fmt.Errorf("catalog.CrisisDef action %q: difficulty must be 1-3", a.ID)
		}
	}
	if _, ok := ids[c.CriticalActionID]; !ok {
		return fmt.Errorf("catalog.CrisisDef: critical action %q is not in the action list", c.CriticalActionID)
	}
	return nil
}

// ActionByID returns the crisis action with the given ID.
func (c *CrisisDef) ActionByID(id string) (*CrisisAction, bool) {
	for i := range c.Actions {
		if c.Actions[i].ID == id {
			return &c.Actions[i], true
		}
	}
	return nil, false
}

// Catalog aggregates all static data for one game.
//
// Invariant: after a successful Validate, every cross-reference resolves and
// every ID is unique within its table.
type Catalog struct {
	Activities []*Activity
	Characters []*CharacterDef
	Skills     []*SkillDef
	Quests     []*Quest
	Crisis     *CrisisDef

	activityByID  map[string]*Activity
	characterByID map[string]*CharacterDef
}

// Validate checks every table and all cross-table references, and builds the
// lookup indexes.
//
// Postcondition: nil return guarantees MustActivity and CharacterByID succeed
// for every referenced ID.
func (c *Catalog) Validate() error {
	if len(c.Characters) == 0 {
		return fmt.Errorf("catalog: at least one character is required")
	}
	if len(c.Activities) == 0 {
		return fmt.Errorf("catalog: at least one activity is required")
	}

	c.activityByID = make(map[string]*Activity, len(c.Activities))
	for _, a := range c.Activities {
		if err := a.Validate(); err != nil {
			return err
		}
		if _, dup := c.activityByID[a.ID]; dup {
			return fmt.Errorf("catalog: duplicate activity ID %q", a.ID)
		}
		c.activityByID[a.ID] = a
	}

	if len(c.ComfortBehaviors()) == 0 {
		return fmt.Errorf("catalog: at least one comfort behavior is required")
	}

	c.characterByID = make(map[string]*CharacterDef, len(c.Characters))
	for _, d := range c.Characters {
		if err := d.Validate(); err != nil {
			return err
		}
		if _, dup := c.characterByID[d.ID]; dup {
			return fmt.Errorf("catalog: duplicate character ID %q", d.ID)
		}
		c.characterByID[d.ID] = d
	}

	skillIDs := make(map[string]struct{}, len(c.Skills))
	for _, s := range c.Skills {
		if s.ID == "" {
			return fmt.Errorf("catalog: skill with empty ID")
		}
		if _, dup := skillIDs[s.ID]; dup {
			return fmt.Errorf("catalog: duplicate skill ID %q", s.ID)
		}
		skillIDs[s.ID] = struct{}{}
		if !s.Category.Valid() {
			return fmt.Errorf("catalog: skill %q has unknown category %q", s.ID, s.Category)
		}
	}

	questIDs := make(map[string]struct{}, len(c.Quests))
	for _, q := range c.Quests {
		if err := q.Validate(); err != nil {
			return err
		}
		if _, dup := questIDs[q.ID]; dup {
			return fmt.Errorf("catalog: duplicate quest ID %q", q.ID)
		}
		questIDs[q.ID] = struct{}{}
		if q.Type == SkillQuest {
			if _, ok := c.characterByID[q.CharacterID]; !ok {
				return fmt.Errorf("catalog: quest %q references unknown character %q", q.ID, q.CharacterID)
			}
		}
	}

	if c.Crisis != nil {
		if err := c.Crisis.Validate(); err != nil {
			return err
		}
		if _, ok := c.characterByID[c.Crisis.CharacterID]; !ok {
			return fmt.Errorf("catalog: crisis references unknown character %q", c.Crisis.CharacterID)
		}
	}

	return nil
}

// Regular returns all non-comfort activities in catalog order.
func (c *Catalog) Regular() []*Activity {
	var out []*Activity
	for _, a := range c.Activities {
		if !a.Comfort {
			out = append(out, a)
		}
	}
	return out
}

// ComfortBehaviors returns all comfort-behavior activities in catalog order.
func (c *Catalog) ComfortBehaviors() []*Activity {
	var out []*Activity
	for _, a := range c.Activities {
		if a.Comfort {
			out = append(out, a)
		}
	}
	return out
}

// ActivityByID returns the activity with the given ID.
func (c *Catalog) ActivityByID(id string) (*Activity, bool) {
	a, ok := c.activityByID[id]
	return a, ok
}

// MustActivity returns the activity with the given ID, panicking on a miss.
// The catalog is validated at load, so a miss is a data-integrity bug.
func (c *Catalog) MustActivity(id string) *Activity {
	a, ok := c.activityByID[id]
	if !ok {
		panic("catalog: unknown activity ID " + id)
	}
	return a
}

// CharacterByID returns the character definition with the given ID.
func (c *Catalog) CharacterByID(id string) (*CharacterDef, bool) {
	d, ok := c.characterByID[id]
	return d, ok
}
