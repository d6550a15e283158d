package session

import (
	"math"

	"github.com/2beens/trainingcoach/internal/training/adaptation"
)

type ExerciseStatus string

const (
	ExercisePending    ExerciseStatus = "pending"
	ExerciseInProgress ExerciseStatus = "in_progress"
	ExerciseCompleted  ExerciseStatus = "completed"
	ExerciseSkipped    ExerciseStatus = "skipped"
)

// ExerciseLog holds the sets of one exercise. Reps, WeightsKg and RPE are
// parallel and append-only.
type ExerciseLog struct {
	ExerciseID   string                        `json:"exerciseId"`
	ExerciseName string                        `json:"exerciseName"`
	Position     int                           `json:"position"`
	Prescribed   adaptation.PrescribedExercise `json:"prescribed"`
	Adapted      *adaptation.AdaptedExercise   `json:"adapted,omitempty"`
	Reps         []int                         `json:"reps"`
	WeightsKg    []float64                     `json:"weightsKg"`
	RPE          []int                         `json:"rpe"`
	Status       ExerciseStatus                `json:"status"`

	// volume in gram-reps keeps sums exact
	volumeGramReps int64
}

func (l *ExerciseLog) ActualSets() int {
	return len(l.Reps)
}

func (l *ExerciseLog) TargetSets() int {
	if l.Adapted == nil {
		return 0
	}
	return l.Adapted.Sets
}

func (l *ExerciseLog) VolumeGramReps() int64 {
	return l.volumeGramReps
}

func (l *ExerciseLog) TotalVolumeKg() float64 {
	return float64(l.volumeGramReps) / 1000
}

func (l *ExerciseLog) RPESum() int {
	sum := 0
	for _, r := range l.RPE {
		sum += r
	}
	return sum
}

// AverageRPE is nil when no set was logged.
func (l *ExerciseLog) AverageRPE() *float64 {
	if len(l.RPE) == 0 {
		return nil
	}
	avg := float64(l.RPESum()) / float64(len(l.RPE))
	return &avg
}

func (l *ExerciseLog) appendSet(in SetInput) {
	l.Reps = append(l.Reps, in.Reps)
	l.WeightsKg = append(l.WeightsKg, in.WeightKg)
	l.RPE = append(l.RPE, in.RPE)
	l.volumeGramReps += SetVolumeGramReps(in.Reps, in.WeightKg)
}

// SetVolumeGramReps is reps x weight in grams. Logged weights are whole grams,
// the rounding only absorbs float error.
func SetVolumeGramReps(reps int, weightKg float64) int64 {
	return int64(reps) * int64(math.Round(weightKg*1000))
}

func (l *ExerciseLog) clone() ExerciseLog {
	c := *l
	c.Reps = append([]int{}, l.Reps...)
	c.WeightsKg = append([]float64{}, l.WeightsKg...)
	c.RPE = append([]int{}, l.RPE...)
	if l.Adapted != nil {
		adapted := *l.Adapted
		c.Adapted = &adapted
	}
	return c
}

// ExerciseSummary adds the derived values to a copy of the log.
type ExerciseSummary struct {
	ExerciseLog
	ActualSets    int      `json:"actualSets"`
	TotalVolumeKg float64  `json:"totalVolumeKg"`
	AverageRPE    *float64 `json:"averageRpe,omitempty"`
}

func (l *ExerciseLog) Summary() ExerciseSummary {
	return ExerciseSummary{
		ExerciseLog:   l.clone(),
		ActualSets:    l.ActualSets(),
		TotalVolumeKg: l.TotalVolumeKg(),
		AverageRPE:    l.AverageRPE(),
	}
}
