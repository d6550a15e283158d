package checkout

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainingcoach/internal/training/session"

	"github.com/google/uuid"
)

var ErrSessionNotCompleted = errors.New("session is not completed")

// CompletedSession is the part of a session machine the aggregator reads.
type CompletedSession interface {
	Context() session.Context
	State() session.State
	Logs() []session.ExerciseLog
	CompletedAt() time.Time
	Duration() time.Duration
	TotalExercises() int
	TotalSets() int
}

// Aggregate folds a completed session and the student's ratings into one
// record. Pending exercises are left out, skipped ones are kept. A session
// without a single logged set is never turned into a record.
func Aggregate(s CompletedSession, in Input) (Record, error) {
	if state := s.State(); state != session.StateCompleted {
		return Record{}, fmt.Errorf("%w: state %s", ErrSessionNotCompleted, state)
	}
	if s.TotalSets() == 0 {
		return Record{}, session.ErrEmptySession
	}
	if err := in.Validate(); err != nil {
		return Record{}, err
	}

	sc := s.Context()
	id, err := uuid.Parse(sc.SessionID)
	if err != nil {
		return Record{}, fmt.Errorf("parse session id [%s]: %w", sc.SessionID, err)
	}

	var (
		volumeKg  float64
		rpeSum    int
		rpeCount  int
		completed int
		exercises []session.ExerciseSummary
	)
	for _, l := range s.Logs() {
		if l.Status == session.ExercisePending || l.Status == session.ExerciseInProgress {
			continue
		}
		if l.Status == session.ExerciseCompleted {
			completed++
		}
		summary := l.Summary()
		// the session total is the sum of the stored exercise totals, in plan order
		volumeKg += summary.TotalVolumeKg
		rpeSum += l.RPESum()
		rpeCount += len(l.RPE)
		exercises = append(exercises, summary)
	}

	var avgRPE *float64
	if rpeCount > 0 {
		avg := float64(rpeSum) / float64(rpeCount)
		avgRPE = &avg
	}

	return Record{
		Session: WorkoutSession{
			ID:                 id.String(),
			StudentID:          sc.StudentID,
			PlanID:             sc.PlanID,
			Status:             StatusCompleted,
			ReadinessLevel:     sc.ReadinessLevel,
			Modifiers:          sc.Modifiers,
			StartedAt:          sc.StartedAt,
			CompletedAt:        s.CompletedAt(),
			DurationSeconds:    int(s.Duration() / time.Second),
			TotalExercises:     s.TotalExercises(),
			CompletedExercises: completed,
			TotalVolumeKg:      volumeKg,
			AverageRPE:         avgRPE,
			OverallRPE:         in.OverallRPE,
			Feeling:            in.Feeling,
			Notes:              in.Notes,
		},
		Exercises: exercises,
	}, nil
}
