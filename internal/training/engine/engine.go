package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/trainingcoach/internal/telemetry/metrics"
	"github.com/2beens/trainingcoach/internal/telemetry/tracing"
	"github.com/2beens/trainingcoach/internal/training/adaptation"
	"github.com/2beens/trainingcoach/internal/training/checkout"
	"github.com/2beens/trainingcoach/internal/training/readiness"
	"github.com/2beens/trainingcoach/internal/training/session"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=engine_mocks_test.go -package=engine_test

type checkinStore interface {
	Upsert(ctx context.Context, c readiness.Checkin) (*readiness.Checkin, error)
	GetByDate(ctx context.Context, studentID string, day time.Time) (*readiness.Checkin, error)
}

type ruleTableSource interface {
	Table(ctx context.Context) adaptation.RuleTable
}

type recordPersister interface {
	Persist(ctx context.Context, rec checkout.Record) error
}

const (
	outcomeStarted   = "started"
	outcomeAbandoned = "abandoned"
	outcomeIdle      = "idle"
)

type CheckinResult struct {
	Checkin *readiness.Checkin `json:"checkin"`
	Result  readiness.Result   `json:"result"`
	Rule    adaptation.Rule    `json:"rule"`
}

type TodayCheckin struct {
	CheckinRequired bool               `json:"checkinRequired"`
	Checkin         *readiness.Checkin `json:"checkin,omitempty"`
}

// Engine runs check-ins and workout sessions for all students.
type Engine struct {
	scorer         *readiness.Scorer
	checkins       checkinStore
	rules          ruleTableSource
	persister      recordPersister
	registry       *session.Registry
	metricsManager *metrics.Manager
	clock          session.Clock
	loc            *time.Location
	newSessionID   func() string
}

type Params struct {
	Scorer         *readiness.Scorer
	Checkins       checkinStore
	Rules          ruleTableSource
	Persister      recordPersister
	Registry       *session.Registry
	MetricsManager *metrics.Manager
	Clock          session.Clock
	Location       *time.Location
}

func New(p Params) *Engine {
	e := &Engine{
		scorer:         p.Scorer,
		checkins:       p.Checkins,
		rules:          p.Rules,
		persister:      p.Persister,
		registry:       p.Registry,
		metricsManager: p.MetricsManager,
		clock:          p.Clock,
		loc:            p.Location,
		newSessionID:   func() string { return uuid.New().String() },
	}
	if e.scorer == nil {
		e.scorer = readiness.NewScorer(readiness.DefaultScorerConfig())
	}
	if e.registry == nil {
		e.registry = session.NewRegistry()
	}
	if e.metricsManager == nil {
		// unexported registry, nothing scrapes it
		e.metricsManager = metrics.NewManager("backend", "training", prometheus.NewRegistry())
	}
	if e.clock == nil {
		e.clock = session.SystemClock()
	}
	if e.loc == nil {
		e.loc = time.UTC
	}
	return e
}

// SubmitCheckin scores the check-in and stores it for today, replacing an
// earlier check-in of the same day.
func (e *Engine) SubmitCheckin(ctx context.Context, studentID string, c readiness.Checkin) (_ *CheckinResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.checkin.submit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("student.id", studentID))

	c.StudentID = studentID
	c.Date = readiness.Day(e.clock.Now(), e.loc)

	result, err := e.scorer.Score(c)
	if err != nil {
		return nil, err
	}
	c.ReadinessScore = result.Score
	c.ReadinessLevel = result.Level
	span.SetAttributes(attribute.String("readiness.level", string(result.Level)))

	stored, err := e.checkins.Upsert(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store check-in: %w", err)
	}
	e.metricsManager.CounterCheckIns.WithLabelValues(string(result.Level)).Inc()
	log.Debugf("check-in for %s: score %.2f, level %s", studentID, result.Score, result.Level)

	return &CheckinResult{
		Checkin: stored,
		Result:  result,
		Rule:    adaptation.Resolve(e.rules.Table(ctx), result.Level),
	}, nil
}

// TodayCheckin tells whether the student still has to check in today.
func (e *Engine) TodayCheckin(ctx context.Context, studentID string) (*TodayCheckin, error) {
	c, err := e.checkins.GetByDate(ctx, studentID, readiness.Day(e.clock.Now(), e.loc))
	if errors.Is(err, readiness.ErrCheckinNotFound) {
		return &TodayCheckin{CheckinRequired: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get today's check-in: %w", err)
	}
	return &TodayCheckin{Checkin: c}, nil
}

// StartSession adapts the plan to today's readiness and starts the session.
// Without a check-in the plan runs unchanged.
func (e *Engine) StartSession(
	ctx context.Context,
	studentID, planID string,
	exercises []adaptation.PrescribedExercise,
) (_ session.Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.session.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("student.id", studentID),
		attribute.String("plan.id", planID),
		attribute.Int("exercises.count", len(exercises)),
	)

	if len(exercises) == 0 {
		return session.Snapshot{}, session.ErrNoExercises
	}

	var level readiness.Level
	checkin, checkinErr := e.checkins.GetByDate(ctx, studentID, readiness.Day(e.clock.Now(), e.loc))
	switch {
	case errors.Is(checkinErr, readiness.ErrCheckinNotFound):
		log.Debugf("no check-in today for %s, session runs unadapted", studentID)
	case checkinErr != nil:
		log.Warnf("get check-in for %s, session runs unadapted: %s", studentID, checkinErr)
	default:
		level = checkin.ReadinessLevel
	}

	rule := adaptation.Resolve(e.rules.Table(ctx), level)
	if rule.Level == "" && level != "" {
		log.Debugf("no usable adaptation rule for level [%s], using neutral modifiers", level)
	}
	span.SetAttributes(attribute.String("readiness.level", string(level)))

	sessionCtx := session.Context{
		SessionID:      e.newSessionID(),
		StudentID:      studentID,
		PlanID:         planID,
		ReadinessLevel: level,
		Modifiers:      rule.Modifiers,
		Message:        rule.Message,
	}
	if _, err := e.registry.Start(studentID, func() (*session.Machine, error) {
		return session.NewMachine(sessionCtx, exercises, e.clock)
	}); err != nil {
		return session.Snapshot{}, err
	}
	e.metricsManager.CounterSessions.WithLabelValues(outcomeStarted).Inc()
	e.metricsManager.GaugeActiveSessions.Set(float64(e.registry.Len()))
	log.Infof("session %s started for %s, level [%s]", sessionCtx.SessionID, studentID, level)

	return e.Current(studentID)
}

func (e *Engine) Current(studentID string) (session.Snapshot, error) {
	var snap session.Snapshot
	err := e.registry.With(studentID, func(m *session.Machine) error {
		snap = m.Snapshot()
		return nil
	})
	return snap, err
}

func (e *Engine) LogSet(studentID string, in session.SetInput) (session.SetResult, error) {
	var res session.SetResult
	err := e.registry.With(studentID, func(m *session.Machine) error {
		var err error
		res, err = m.LogSet(in)
		return err
	})
	if err != nil {
		return session.SetResult{}, err
	}

	if res.Duplicate {
		e.metricsManager.CounterDuplicateSets.Inc()
		log.Debugf("duplicate set %d of %s from %s ignored", in.SetNumber, in.ExerciseID, studentID)
	} else {
		e.metricsManager.CounterSetsLogged.Inc()
	}
	return res, nil
}

func (e *Engine) FinishRest(studentID string) (session.Snapshot, error) {
	var snap session.Snapshot
	err := e.registry.With(studentID, func(m *session.Machine) error {
		var err error
		snap, err = m.FinishRest()
		return err
	})
	return snap, err
}

func (e *Engine) SkipExercise(studentID string) (session.Snapshot, error) {
	var snap session.Snapshot
	err := e.registry.With(studentID, func(m *session.Machine) error {
		var err error
		snap, err = m.SkipExercise()
		return err
	})
	return snap, err
}

// FinishSession completes the session, aggregates it and persists the
// record. When persisting fails the session stays registered and the call
// can be repeated.
func (e *Engine) FinishSession(ctx context.Context, studentID string, in checkout.Input) (_ *checkout.Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.session.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("student.id", studentID))

	if err := in.Validate(); err != nil {
		return nil, err
	}

	var rec checkout.Record
	err = e.registry.With(studentID, func(m *session.Machine) error {
		if _, err := m.Finish(); err != nil {
			return err
		}
		var err error
		rec, err = checkout.Aggregate(m, in)
		if err != nil {
			return err
		}
		if err := e.persister.Persist(ctx, rec); err != nil {
			return err
		}
		e.registry.Remove(studentID, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("session.id", rec.Session.ID))
	e.metricsManager.CounterSessions.WithLabelValues(string(rec.Session.Status)).Inc()
	e.metricsManager.HistSessionDuration.Observe(float64(rec.Session.DurationSeconds))
	e.metricsManager.GaugeActiveSessions.Set(float64(e.registry.Len()))
	log.Infof(
		"session %s of %s stored: %d/%d exercises, %.1f kg",
		rec.Session.ID, studentID, rec.Session.CompletedExercises, rec.Session.TotalExercises, rec.Session.TotalVolumeKg,
	)

	return &rec, nil
}

// AbandonSession drops the session without writing anything. A completed
// session that was never checked out can be dropped too.
func (e *Engine) AbandonSession(studentID, reason string) error {
	err := e.registry.With(studentID, func(m *session.Machine) error {
		if err := m.Abandon(reason); err != nil && m.State() != session.StateCompleted {
			return err
		}
		e.registry.Remove(studentID, m)
		return nil
	})
	if err != nil {
		return err
	}

	e.metricsManager.CounterSessions.WithLabelValues(outcomeAbandoned).Inc()
	e.metricsManager.GaugeActiveSessions.Set(float64(e.registry.Len()))
	log.Infof("session of %s abandoned: %s", studentID, reason)
	return nil
}

// SweepIdle abandons sessions nobody touched for longer than idle.
func (e *Engine) SweepIdle(idle time.Duration) int {
	swept := e.registry.Sweep(idle)
	for _, sc := range swept {
		log.Infof("session %s of %s abandoned after %s idle", sc.SessionID, sc.StudentID, idle)
		e.metricsManager.CounterSessions.WithLabelValues(outcomeIdle).Inc()
	}
	e.metricsManager.GaugeActiveSessions.Set(float64(e.registry.Len()))
	return len(swept)
}

func (e *Engine) ActiveSessions() int {
	return e.registry.Len()
}
