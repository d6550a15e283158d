package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainingcoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrCheckinNotFound = errors.New("check-in not found")

const checkinColumns = `id, student_id, checkin_date, sleep_quality, sleep_hours, muscle_soreness, stress_level,
	energy_level, mood, hrv_ms, resting_heart_rate, readiness_score, readiness_level, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert stores the check-in, overwriting an earlier one for the same student and day.
func (r *Repo) Upsert(ctx context.Context, c Checkin) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.checkin.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("student.id", c.StudentID),
		attribute.String("readiness.level", string(c.ReadinessLevel)),
	)

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO wellness_checkin
				(student_id, checkin_date, sleep_quality, sleep_hours, muscle_soreness, stress_level,
				 energy_level, mood, hrv_ms, resting_heart_rate, readiness_score, readiness_level)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (student_id, checkin_date) DO UPDATE SET
				sleep_quality = EXCLUDED.sleep_quality,
				sleep_hours = EXCLUDED.sleep_hours,
				muscle_soreness = EXCLUDED.muscle_soreness,
				stress_level = EXCLUDED.stress_level,
				energy_level = EXCLUDED.energy_level,
				mood = EXCLUDED.mood,
				hrv_ms = EXCLUDED.hrv_ms,
				resting_heart_rate = EXCLUDED.resting_heart_rate,
				readiness_score = EXCLUDED.readiness_score,
				readiness_level = EXCLUDED.readiness_level,
				updated_at = now()
			RETURNING `+checkinColumns+`;`,
		c.StudentID, c.Date, c.SleepQuality, c.SleepHours, c.MuscleSoreness, c.StressLevel,
		c.EnergyLevel, c.Mood, c.HRVMs, c.RestingHeartRate, c.ReadinessScore, string(c.ReadinessLevel),
	)
	if err != nil {
		return nil, err
	}

	stored, err := pgx.CollectExactlyOneRow(rows, scanCheckin)
	if err != nil {
		return nil, fmt.Errorf("collect upserted check-in: %w", err)
	}

	span.SetAttributes(attribute.Int64("checkin.id", stored.ID))
	return &stored, nil
}

func (r *Repo) GetByDate(ctx context.Context, studentID string, day time.Time) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.checkin.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("student.id", studentID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+checkinColumns+` FROM wellness_checkin WHERE student_id = $1 AND checkin_date = $2;`,
		studentID, day,
	)
	if err != nil {
		return nil, err
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCheckin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCheckinNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("collect check-in: %w", err)
	}

	return &c, nil
}

// List returns the student's check-ins with from <= date <= to, newest first.
func (r *Repo) List(ctx context.Context, studentID string, from, to time.Time) (_ []Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.checkin.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("student.id", studentID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+checkinColumns+` FROM wellness_checkin
			WHERE student_id = $1 AND checkin_date BETWEEN $2 AND $3
			ORDER BY checkin_date DESC;`,
		studentID, from, to,
	)
	if err != nil {
		return nil, err
	}

	checkins, err := pgx.CollectRows(rows, scanCheckin)
	if err != nil {
		return nil, fmt.Errorf("collect check-ins: %w", err)
	}

	span.SetAttributes(attribute.Int("checkins.count", len(checkins)))
	return checkins, nil
}

func scanCheckin(row pgx.CollectableRow) (Checkin, error) {
	var (
		c     Checkin
		level string
	)
	err := row.Scan(
		&c.ID, &c.StudentID, &c.Date, &c.SleepQuality, &c.SleepHours, &c.MuscleSoreness, &c.StressLevel,
		&c.EnergyLevel, &c.Mood, &c.HRVMs, &c.RestingHeartRate, &c.ReadinessScore, &level,
		&c.CreatedAt, &c.UpdatedAt,
	)
	c.ReadinessLevel = Level(level)
	return c, err
}
