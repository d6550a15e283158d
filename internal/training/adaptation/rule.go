package adaptation

import (
	"math"

	"github.com/2beens/trainingcoach/internal/training/readiness"
)

// Modifiers are positive multipliers applied to a prescription, 1.0 leaves a value unchanged.
type Modifiers struct {
	Volume    float64 `json:"volume"`
	Intensity float64 `json:"intensity"`
	Rest      float64 `json:"rest"`
}

func NeutralModifiers() Modifiers {
	return Modifiers{Volume: 1, Intensity: 1, Rest: 1}
}

func (m Modifiers) Valid() bool {
	return validModifier(m.Volume) && validModifier(m.Intensity) && validModifier(m.Rest)
}

func validModifier(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

type Rule struct {
	Level     readiness.Level `json:"level"`
	Modifiers Modifiers       `json:"modifiers"`
	Message   string          `json:"message"`
}

// RuleTable is a snapshot of the system default rule per readiness level.
type RuleTable map[readiness.Level]Rule

func NeutralRule() Rule {
	return Rule{Modifiers: NeutralModifiers()}
}

// Resolve looks the level up in table. Unknown levels, missing rules and rules
// with unusable modifiers all resolve to the neutral rule.
func Resolve(table RuleTable, level readiness.Level) Rule {
	if !level.Valid() {
		return NeutralRule()
	}
	rule, ok := table[level]
	if !ok || !rule.Modifiers.Valid() {
		return NeutralRule()
	}
	rule.Level = level
	return rule
}
