package character

import (
	"github.com/hmelgaard/beforefall/internal/game/ai"
	"github.com/hmelgaard/beforefall/internal/game/catalog"
	"github.com/hmelgaard/beforefall/internal/game/trait"
)

// Attitude describes how a character feels about an activity being pushed on
// them. It only flavors messaging; even a refusing character complies with a
// direct assignment.
type Attitude string

const (
	AttitudeEager     Attitude = "eager"
	AttitudeNeutral   Attitude = "neutral"
	AttitudeReluctant Attitude = "reluctant"
	AttitudeRefusing  Attitude = "refusing"
)

const (
	eagerMatchThreshold     = 0.6
	reluctantMatchThreshold = 0.3
)

// AttitudeToward derives the character's attitude to an activity from current
// wellbeing first, trait match second.
//
// Precondition: activity is not nil.
func (c *Character) AttitudeToward(activity *catalog.Activity) Attitude {
	w := c.Needs.Wellbeing()
	if w < forcedComfortWellbeing {
		return AttitudeRefusing
	}
	if w < refusalWellbeing {
		return AttitudeReluctant
	}
	match := ai.TraitMatch(c.Profile, activity.Affinities)
	switch {
	case match > eagerMatchThreshold:
		return AttitudeEager
	case match < reluctantMatchThreshold:
		return AttitudeReluctant
	default:
		return AttitudeNeutral
	}
}

var reluctantLines = map[trait.Trait]string{
	trait.Contemplative: "I suppose... give me a moment to gather myself.",
	trait.Nurturing:     "Oh, alright then, if it really must be done.",
	trait.Ambitious:     "Fine. But this is not the best use of my time.",
	trait.Passionate:    "Ugh, really? Okay, okay, I'm going.",
	trait.Grounded:      "Hm. Not what I'd have picked, but I'll manage.",
}

var refusingLines = map[trait.Trait]string{
	trait.Contemplative: "I can't. Not right now. I just... can't.",
	trait.Nurturing:     "Please, I have nothing left to give today.",
	trait.Ambitious:     "No. I am running on empty and you know it.",
	trait.Passionate:    "Don't push me right now. I mean it.",
	trait.Grounded:      "No. I need to sit down before I fall down.",
}

func protestLine(primary trait.Trait, attitude Attitude) string {
	var lines map[trait.Trait]string
	switch attitude {
	case AttitudeReluctant:
		lines = reluctantLines
	case AttitudeRefusing:
		lines = refusingLines
	default:
		return ""
	}
	if line, ok := lines[primary]; ok {
		return line
	}
	return lines[trait.Grounded]
}
