package adaptation

import (
	"math"

	"github.com/2beens/trainingcoach/pkg"
)

const (
	DefaultSets        = 3
	DefaultReps        = 10
	DefaultRestSeconds = 60

	minSets        = 1
	minReps        = 1
	minRestSeconds = 30

	maxModifier = 10.0
)

// PrescribedExercise is one exercise of a plan as the coach wrote it.
// Absent base values fall back to the defaults.
type PrescribedExercise struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Sets          *int     `json:"sets,omitempty"`
	Reps          *int     `json:"reps,omitempty"`
	RestSeconds   *int     `json:"restSeconds,omitempty"`
	PriorWeightKg *float64 `json:"priorWeightKg,omitempty"`
}

type AdaptedExercise struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Sets          int      `json:"sets"`
	Reps          int      `json:"reps"`
	RestSeconds   int      `json:"restSeconds"`
	PriorWeightKg *float64 `json:"priorWeightKg,omitempty"`
	// Adapted is set when any value differs from the (defaulted) base.
	Adapted bool `json:"adapted"`
}

// Adapt applies the modifiers to the exercise. It never fails: floors of
// 1 set, 1 rep and 30 s rest always hold.
func Adapt(ex PrescribedExercise, m Modifiers) AdaptedExercise {
	baseSets := baseOrDefault(ex.Sets, DefaultSets)
	baseReps := baseOrDefault(ex.Reps, DefaultReps)
	baseRest := baseOrDefault(ex.RestSeconds, DefaultRestSeconds)

	adapted := AdaptedExercise{
		ID:            ex.ID,
		Name:          ex.Name,
		Sets:          max(minSets, pkg.RoundHalfUp(float64(baseSets)*sanitizeModifier(m.Volume))),
		Reps:          max(minReps, pkg.RoundHalfUp(float64(baseReps)*sanitizeModifier(m.Intensity))),
		RestSeconds:   max(minRestSeconds, pkg.RoundHalfUp(float64(baseRest)*sanitizeModifier(m.Rest))),
		PriorWeightKg: ex.PriorWeightKg,
	}
	adapted.Adapted = adapted.Sets != baseSets || adapted.Reps != baseReps || adapted.RestSeconds != baseRest

	return adapted
}

func baseOrDefault(v *int, def int) int {
	if v == nil || *v <= 0 {
		return def
	}
	return *v
}

func sanitizeModifier(v float64) float64 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v > maxModifier:
		return maxModifier
	default:
		return v
	}
}
