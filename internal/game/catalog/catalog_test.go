package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmelgaard/beforefall/internal/game/ledger"
	"github.com/hmelgaard/beforefall/internal/game/trait"
)

func validCatalog() *Catalog {
	return &Catalog{
		Activities: []*Activity{
			{
				ID:            "reading",
				Name:          "Reading",
				Affinities:    map[trait.Trait]float64{trait.Contemplative: 0.9},
				DurationHours: 1,
				Effects:       NeedEffects{Energy: -5, Purpose: 15},
				SkillCategory: Creative,
				Outputs:       []Output{{Resource: ledger.Creativity, BaseAmount: 10}},
				Difficulty:    1,
			},
			{
				ID:            "sit-quietly",
				Name:          "Sit Quietly",
				DurationHours: 0.25,
				Effects:       NeedEffects{Energy: 5},
				Comfort:       true,
				Difficulty:    1,
			},
		},
		Characters: []*CharacterDef{
			{
				ID:   "elling",
				Name: "Elling",
				Profile: trait.Profile{
					Primary: trait.Axis{Trait: trait.Contemplative, Intensity: 1.0},
				},
				InitialNeeds: NeedEffects{Energy: 80, Social: 60, Purpose: 50},
			},
		},
		Skills: []*SkillDef{
			{ID: "reading", Name: "Reading", Category: Creative},
		},
		Quests: []*Quest{
			{
				ID:           "creative-output",
				Title:        "Creative Output",
				Type:         ResourceQuest,
				Resource:     ledger.Creativity,
				TargetAmount: 100,
			},
		},
		Crisis: &CrisisDef{
			WarningDay:       10,
			WarningHour:      8,
			TriggerHour:      14,
			CharacterID:      "elling",
			CriticalActionID: "call-emergency",
			ShadowTrait:      trait.Contemplative,
			Actions: []CrisisAction{
				{ID: "call-emergency", Name: "Call", SkillCategory: Social, BaseDifficulty: 2},
			},
		},
	}
}

func TestValidate_ValidCatalog(t *testing.T) {
	c := validCatalog()
	require.NoError(t, c.Validate())

	a, ok := c.ActivityByID("reading")
	require.True(t, ok)
	assert.Equal(t, "Reading", a.Name)

	assert.Len(t, c.Regular(), 1)
	assert.Len(t, c.ComfortBehaviors(), 1)
}

func TestValidate_DuplicateActivityID(t *testing.T) {
	c := validCatalog()
	dup := *c.Activities[0]
	c.Activities = append(c.Activities, &dup)
	assert.ErrorContains(t, c.Validate(), "duplicate activity ID")
}

func TestValidate_MissingComfortBehavior(t *testing.T) {
	c := validCatalog()
	c.Activities = c.Activities[:1]
	assert.ErrorContains(t, c.Validate(), "comfort behavior")
}

func TestValidate_CrisisCriticalActionMustExist(t *testing.T) {
	c := validCatalog()
	c.Crisis.CriticalActionID = "nonexistent"
	assert.ErrorContains(t, c.Validate(), "critical action")
}

func TestValidate_SkillQuestUnknownCharacter(t *testing.T) {
	c := validCatalog()
	c.Quests = append(c.Quests, &Quest{
		ID:            "stay-connected",
		Type:          SkillQuest,
		CharacterID:   "nobody",
		SkillCategory: Social,
		TargetLevel:   2,
	})
	assert.ErrorContains(t, c.Validate(), "unknown character")
}

func TestActivityValidate(t *testing.T) {
	a := &Activity{ID: "x", Name: "X", DurationHours: 1, Difficulty: 1}
	assert.NoError(t, a.Validate())

	bad := &Activity{ID: "x", Name: "X", DurationHours: 0, Difficulty: 1}
	assert.Error(t, bad.Validate(), "zero duration is invalid")

	badAff := &Activity{
		ID: "x", Name: "X", DurationHours: 1, Difficulty: 1,
		Affinities: map[trait.Trait]float64{trait.Grounded: 1.5},
	}
	assert.Error(t, badAff.Validate())

	badDiff := &Activity{ID: "x", Name: "X", DurationHours: 1, Difficulty: 4}
	assert.Error(t, badDiff.Validate())
}

func TestQuestValidate_PerType(t *testing.T) {
	res := &Quest{ID: "q", Type: ResourceQuest, Resource: ledger.Food, TargetAmount: 20}
	assert.NoError(t, res.Validate())

	skill := &Quest{ID: "q", Type: SkillQuest, CharacterID: "c", SkillCategory: Social, TargetLevel: 2}
	assert.NoError(t, skill.Validate())

	comp := &Quest{ID: "q", Type: CompositeQuest, Conditions: []ResourceCondition{
		{Resource: ledger.Food, Amount: 20},
	}}
	assert.NoError(t, comp.Validate())

	assert.Error(t, (&Quest{ID: "q", Type: "bogus"}).Validate())
	assert.Error(t, (&Quest{ID: "q", Type: CompositeQuest}).Validate(), "composite needs conditions")
	assert.Error(t, (&Quest{ID: "q", Type: SkillQuest, CharacterID: "c", SkillCategory: Social, TargetLevel: 9}).Validate())
}

func TestMustActivity_PanicsOnMiss(t *testing.T) {
	c := validCatalog()
	require.NoError(t, c.Validate())
	assert.Panics(t, func() { c.MustActivity("nope") },
		"a lookup miss after validation is a data-integrity bug")
}
