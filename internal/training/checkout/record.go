package checkout

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/2beens/trainingcoach/internal/training/adaptation"
	"github.com/2beens/trainingcoach/internal/training/readiness"
	"github.com/2beens/trainingcoach/internal/training/session"

	"go.uber.org/multierr"
)

var ErrInvalidInput = errors.New("invalid checkout input")

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusAbandoned  Status = "abandoned"
	StatusSkipped    Status = "skipped"
)

type Feeling string

const (
	FeelingGreat     Feeling = "great"
	FeelingGood      Feeling = "good"
	FeelingOK        Feeling = "ok"
	FeelingTired     Feeling = "tired"
	FeelingExhausted Feeling = "exhausted"
)

func (f Feeling) Valid() bool {
	switch f {
	case FeelingGreat, FeelingGood, FeelingOK, FeelingTired, FeelingExhausted:
		return true
	}
	return false
}

const maxNotesLength = 2000

// Input is what the student reports at checkout.
type Input struct {
	OverallRPE int     `json:"overallRpe"`
	Feeling    Feeling `json:"feeling"`
	Notes      string  `json:"notes"`
}

func (in Input) Validate() error {
	var err error
	if in.OverallRPE < 1 || in.OverallRPE > 10 {
		err = multierr.Append(err, fmt.Errorf("%w: overall rpe must be between 1 and 10", ErrInvalidInput))
	}
	if !in.Feeling.Valid() {
		err = multierr.Append(err, fmt.Errorf("%w: unknown feeling [%s]", ErrInvalidInput, in.Feeling))
	}
	if utf8.RuneCountInString(in.Notes) > maxNotesLength {
		err = multierr.Append(err, fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, maxNotesLength))
	}
	return err
}

type WorkoutSession struct {
	ID                 string               `json:"id"`
	StudentID          string               `json:"studentId"`
	PlanID             string               `json:"planId"`
	Status             Status               `json:"status"`
	ReadinessLevel     readiness.Level      `json:"readinessLevel,omitempty"`
	Modifiers          adaptation.Modifiers `json:"modifiers"`
	StartedAt          time.Time            `json:"startedAt"`
	CompletedAt        time.Time            `json:"completedAt"`
	DurationSeconds    int                  `json:"durationSeconds"`
	TotalExercises     int                  `json:"totalExercises"`
	CompletedExercises int                  `json:"completedExercises"`
	TotalVolumeKg      float64              `json:"totalVolumeKg"`
	AverageRPE         *float64             `json:"averageRpe,omitempty"`
	OverallRPE         int                  `json:"overallRpe"`
	Feeling            Feeling              `json:"feeling"`
	Notes              string               `json:"notes"`
}

// Record is the immutable result of a checkout: the session row and one
// entry per attempted exercise.
type Record struct {
	Session   WorkoutSession            `json:"session"`
	Exercises []session.ExerciseSummary `json:"exercises"`
}
