package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/trainingcoach/internal/telemetry/tracing"
	"github.com/2beens/trainingcoach/internal/training/adaptation"
	"github.com/2beens/trainingcoach/internal/training/readiness"
	"github.com/2beens/trainingcoach/internal/training/session"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const sessionColumns = `id, student_id, plan_id, status, readiness_level, volume_modifier, intensity_modifier,
	rest_modifier, started_at, completed_at, duration_seconds, total_exercises, completed_exercises,
	total_volume_kg, average_rpe, overall_rpe, feeling, notes`

const exerciseColumns = `session_id, exercise_id, exercise_name, position, prescribed_sets, prescribed_reps,
	prescribed_rest, adapted_sets, adapted_reps, adapted_rest, reps, weights_kg, rpe, status, average_rpe,
	total_volume_kg`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Save writes the session and its exercise logs in one transaction. Saving
// a record whose session id already exists is a no-op.
func (r *Repo) Save(ctx context.Context, rec Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.session.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("session.id", rec.Session.ID),
		attribute.String("student.id", rec.Session.StudentID),
		attribute.Int("exercises.count", len(rec.Exercises)),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback save session %s: %s", rec.Session.ID, rbErr)
		}
	}()

	s := rec.Session
	tag, err := tx.Exec(
		ctx,
		`INSERT INTO workout_session (`+sessionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			ON CONFLICT (id) DO NOTHING;`,
		s.ID, s.StudentID, s.PlanID, string(s.Status), string(s.ReadinessLevel),
		s.Modifiers.Volume, s.Modifiers.Intensity, s.Modifiers.Rest,
		s.StartedAt, s.CompletedAt, s.DurationSeconds, s.TotalExercises, s.CompletedExercises,
		s.TotalVolumeKg, s.AverageRPE, s.OverallRPE, string(s.Feeling), s.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Debugf("session %s already stored", s.ID)
		span.SetAttributes(attribute.Bool("session.already_stored", true))
		return tx.Commit(ctx)
	}

	batch := &pgx.Batch{}
	for _, ex := range rec.Exercises {
		adapted := ex.Adapted
		if adapted == nil {
			neutral := adaptation.Adapt(ex.Prescribed, adaptation.NeutralModifiers())
			adapted = &neutral
		}
		batch.Queue(
			`INSERT INTO exercise_log (`+exerciseColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`,
			s.ID, ex.ExerciseID, ex.ExerciseName, ex.Position,
			ex.Prescribed.Sets, ex.Prescribed.Reps, ex.Prescribed.RestSeconds,
			adapted.Sets, adapted.Reps, adapted.RestSeconds,
			ex.Reps, ex.WeightsKg, ex.RPE, string(ex.Status), ex.AverageRPE, ex.TotalVolumeKg,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert exercise logs: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// ListPage returns the student's sessions, newest first, with their
// exercise logs, and the total number of stored sessions.
func (r *Repo) ListPage(ctx context.Context, studentID string, page, size int) (_ []Record, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.session.page")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("student.id", studentID),
		attribute.Int("page", page),
		attribute.Int("size", size),
	)

	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workout_session WHERE student_id = $1;`,
		studentID,
	).Scan(&total); err != nil {
		return nil, -1, fmt.Errorf("count sessions: %w", err)
	}

	offset := (page - 1) * size
	log.Tracef("getting sessions for %s, total count %d, limit %d, offset %d", studentID, total, size, offset)

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionColumns+` FROM workout_session
			WHERE student_id = $1
			ORDER BY started_at DESC
			LIMIT $2 OFFSET $3;`,
		studentID, size, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	sessions, err := pgx.CollectRows(rows, scanSession)
	if err != nil {
		return nil, -1, fmt.Errorf("collect sessions: %w", err)
	}

	records := make([]Record, 0, len(sessions))
	if len(sessions) == 0 {
		return records, total, nil
	}

	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	exRows, err := r.db.Query(
		ctx,
		`SELECT `+exerciseColumns+` FROM exercise_log
			WHERE session_id = ANY($1::uuid[])
			ORDER BY session_id, position;`,
		ids,
	)
	if err != nil {
		return nil, -1, err
	}
	exercises, err := pgx.CollectRows(exRows, scanExercise)
	if err != nil {
		return nil, -1, fmt.Errorf("collect exercise logs: %w", err)
	}

	bySession := make(map[string][]session.ExerciseSummary, len(sessions))
	for _, ex := range exercises {
		bySession[ex.sessionID] = append(bySession[ex.sessionID], ex.summary)
	}
	for _, s := range sessions {
		exs := bySession[s.ID]
		if exs == nil {
			exs = []session.ExerciseSummary{}
		}
		records = append(records, Record{Session: s, Exercises: exs})
	}

	return records, total, nil
}

func scanSession(row pgx.CollectableRow) (WorkoutSession, error) {
	var (
		s                      WorkoutSession
		status, level, feeling string
	)
	err := row.Scan(
		&s.ID, &s.StudentID, &s.PlanID, &status, &level,
		&s.Modifiers.Volume, &s.Modifiers.Intensity, &s.Modifiers.Rest,
		&s.StartedAt, &s.CompletedAt, &s.DurationSeconds, &s.TotalExercises, &s.CompletedExercises,
		&s.TotalVolumeKg, &s.AverageRPE, &s.OverallRPE, &feeling, &s.Notes,
	)
	s.Status = Status(status)
	s.ReadinessLevel = readiness.Level(level)
	s.Feeling = Feeling(feeling)
	return s, err
}

type storedExercise struct {
	sessionID string
	summary   session.ExerciseSummary
}

func scanExercise(row pgx.CollectableRow) (storedExercise, error) {
	var (
		ex      storedExercise
		adapted adaptation.AdaptedExercise
		status  string
	)
	l := &ex.summary.ExerciseLog
	err := row.Scan(
		&ex.sessionID, &l.ExerciseID, &l.ExerciseName, &l.Position,
		&l.Prescribed.Sets, &l.Prescribed.Reps, &l.Prescribed.RestSeconds,
		&adapted.Sets, &adapted.Reps, &adapted.RestSeconds,
		&l.Reps, &l.WeightsKg, &l.RPE, &status, &ex.summary.AverageRPE, &ex.summary.TotalVolumeKg,
	)
	l.Prescribed.ID = l.ExerciseID
	l.Prescribed.Name = l.ExerciseName
	adapted.ID = l.ExerciseID
	adapted.Name = l.ExerciseName
	l.Adapted = &adapted
	l.Status = session.ExerciseStatus(status)
	ex.summary.ActualSets = len(l.Reps)
	return ex, err
}
