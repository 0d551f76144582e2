package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hmelgaard/beforefall/internal/game/ledger"
	"github.com/hmelgaard/beforefall/internal/game/trait"
)

// yamlActivitiesFile is the top-level structure of activities.yaml.
type yamlActivitiesFile struct {
	Activities []yamlActivity `yaml:"activities"`
}

type yamlActivity struct {
	ID            string             `yaml:"id"`
	Name          string             `yaml:"name"`
	Icon          string             `yaml:"icon"`
	Affinities    map[string]float64 `yaml:"affinities"`
	Location      Position           `yaml:"location"`
	DurationHours float64            `yaml:"duration_hours"`
	Effects       NeedEffects        `yaml:"effects"`
	Comfort       bool               `yaml:"comfort"`
	SkillCategory string             `yaml:"skill_category"`
	Outputs       []Output           `yaml:"outputs"`
	Difficulty    int                `yaml:"difficulty"`
}

type yamlCharactersFile struct {
	Characters []yamlCharacter `yaml:"characters"`
}

type yamlCharacter struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Primary struct {
		Trait     string  `yaml:"trait"`
		Intensity float64 `yaml:"intensity"`
	} `yaml:"primary"`
	Secondary *struct {
		Trait     string  `yaml:"trait"`
		Intensity float64 `yaml:"intensity"`
	} `yaml:"secondary"`
	InitialNeeds NeedEffects `yaml:"initial_needs"`
	Position     Position    `yaml:"position"`
}

type yamlSkillsFile struct {
	Skills []yamlSkill `yaml:"skills"`
}

type yamlSkill struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

type yamlQuestsFile struct {
	Quests []yamlQuest `yaml:"quests"`
}

type yamlQuest struct {
	ID            string              `yaml:"id"`
	Title         string              `yaml:"title"`
	Description   string              `yaml:"description"`
	Type          string              `yaml:"type"`
	Resource      string              `yaml:"resource"`
	TargetAmount  float64             `yaml:"target_amount"`
	CharacterID   string              `yaml:"character"`
	SkillCategory string              `yaml:"skill_category"`
	TargetLevel   int                 `yaml:"target_level"`
	Conditions    []ResourceCondition `yaml:"conditions"`
}

type yamlCrisisFile struct {
	Crisis yamlCrisis `yaml:"crisis"`
}

type yamlCrisis struct {
	WarningDay       int                `yaml:"warning_day"`
	WarningHour      int                `yaml:"warning_hour"`
	TriggerHour      int                `yaml:"trigger_hour"`
	CharacterID      string             `yaml:"character"`
	CriticalActionID string             `yaml:"critical_action"`
	ShadowTrait      string             `yaml:"shadow_trait"`
	Actions          []yamlCrisisAction `yaml:"actions"`
}

type yamlCrisisAction struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Icon           string `yaml:"icon"`
	Description    string `yaml:"description"`
	SkillCategory  string `yaml:"skill_category"`
	BaseDifficulty int    `yaml:"base_difficulty"`
	GivesHope      bool   `yaml:"gives_hope"`
}

// Load reads all catalog files from dir and returns a validated Catalog.
// Expected files: activities.yaml, characters.yaml, skills.yaml, quests.yaml,
// and optionally crisis.yaml.
//
// Precondition: dir must be a readable directory.
// Postcondition: the returned catalog has passed Validate.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{}

	if err := loadYAML(dir, "activities.yaml", func(data []byte) error {
		var f yamlActivitiesFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return err
		}
		for _, ya := range f.Activities {
			c.Activities = append(c.Activities, convertActivity(ya))
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := loadYAML(dir, "characters.yaml", func(data []byte) error {
		var f yamlCharactersFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return err
		}
		for _, yc := range f.Characters {
			c.Characters = append(c.Characters, convertCharacter(yc))
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := loadYAML(dir, "skills.yaml", func(data []byte) error {
		var f yamlSkillsFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return err
		}
		for _, ys := range f.Skills {
			c.Skills = append(c.Skills, &SkillDef{
				ID:          ys.ID,
				Name:        ys.Name,
				Category:    Category(ys.Category),
				Description: ys.Description,
			})
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := loadYAML(dir, "quests.yaml", func(data []byte) error {
		var f yamlQuestsFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return err
		}
		for _, yq := range f.Quests {
			c.Quests = append(c.Quests, convertQuest(yq))
		}
		return nil
	}); err != nil {
		return nil, err
	}

	crisisPath := filepath.Join(dir, "crisis.yaml")
	if _, err := os.Stat(crisisPath); err == nil {
		if err := loadYAML(dir, "crisis.yaml", func(data []byte) error {
			var f yamlCrisisFile
			if err := yaml.Unmarshal(data, &f); err != nil {
				return err
			}
			c.Crisis = convertCrisis(f.Crisis)
			return nil
		}); err != nil {
			return nil, err
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	return c, nil
}

// loadYAML reads one named file from dir and hands its bytes to parse.
func loadYAML(dir, name string, parse func([]byte) error) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog.Load: reading %s: %w", name, err)
	}
	if err := parse(data); err != nil {
		return fmt.Errorf("catalog.Load: parsing %s: %w", name, err)
	}
	return nil
}

func convertActivity(ya yamlActivity) *Activity {
	a := &Activity{
		ID:            ya.ID,
		Name:          ya.Name,
		Icon:          ya.Icon,
		Location:      ya.Location,
		DurationHours: ya.DurationHours,
		Effects:       ya.Effects,
		Comfort:       ya.Comfort,
		SkillCategory: Category(ya.SkillCategory),
		Outputs:       ya.Outputs,
		Difficulty:    ya.Difficulty,
	}
	if a.Difficulty == 0 {
		a.Difficulty = 1
	}
	if len(ya.Affinities) > 0 {
		a.Affinities = make(map[trait.Trait]float64, len(ya.Affinities))
		for k, v := range ya.Affinities {
			a.Affinities[trait.Trait(k)] = v
		}
	}
	return a
}

func convertCharacter(yc yamlCharacter) *CharacterDef {
	d := &CharacterDef{
		ID:   yc.ID,
		Name: yc.Name,
		Profile: trait.Profile{
			Primary: trait.Axis{Trait: trait.Trait(yc.Primary.Trait), Intensity: yc.Primary.Intensity},
		},
		InitialNeeds: yc.InitialNeeds,
		Position:     yc.Position,
	}
	if yc.Secondary != nil {
		d.Profile.Secondary = &trait.Axis{
			Trait:     trait.Trait(yc.Secondary.Trait),
			Intensity: yc.Secondary.Intensity,
		}
	}
	return d
}

func convertQuest(yq yamlQuest) *Quest {
	return &Quest{
		ID:            yq.ID,
		Title:         yq.Title,
		Description:   yq.Description,
		Type:          QuestType(yq.Type),
		Resource:      ledger.Resource(yq.Resource),
		TargetAmount:  yq.TargetAmount,
		CharacterID:   yq.CharacterID,
		SkillCategory: Category(yq.SkillCategory),
		TargetLevel:   yq.TargetLevel,
		Conditions:    yq.Conditions,
	}
}

func convertCrisis(yc yamlCrisis) *CrisisDef {
	def := &CrisisDef{
		WarningDay:       yc.WarningDay,
		WarningHour:      yc.WarningHour,
		TriggerHour:      yc.TriggerHour,
		CharacterID:      yc.CharacterID,
		CriticalActionID: yc.CriticalActionID,
		ShadowTrait:      trait.Trait(yc.ShadowTrait),
	}
	for _, ya := range yc.Actions {
		def.Actions = append(def.Actions, CrisisAction{
			ID:             ya.ID,
			Name:           ya.Name,
			Icon:           ya.Icon,
			Description:    ya.Description,
			SkillCategory:  Category(ya.SkillCategory),
			BaseDifficulty: ya.BaseDifficulty,
			GivesHope:      ya.GivesHope,
		})
	}
	return def
}
