package session

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/trainingcoach/internal/training/adaptation"
)

const (
	maxReps     = 1000
	maxWeightKg = 1000
	minRPE      = 1
	maxRPE      = 10
)

// RestFrame tells the client what comes after the current rest.
type RestFrame string

const (
	RestNextSet      RestFrame = "next_set"
	RestNextExercise RestFrame = "next_exercise"
	RestFinish       RestFrame = "finish"
)

type SetInput struct {
	ExerciseID string  `json:"exerciseId"`
	SetNumber  int     `json:"setNumber"`
	Reps       int     `json:"reps"`
	WeightKg   float64 `json:"weightKg"`
	RPE        int     `json:"rpe"`
}

func (in SetInput) validate() error {
	switch {
	case in.SetNumber < 1:
		return fmt.Errorf("%w: set number must be positive", ErrInvalidSet)
	case in.Reps < 1 || in.Reps > maxReps:
		return fmt.Errorf("%w: reps must be between 1 and %d", ErrInvalidSet, maxReps)
	case math.IsNaN(in.WeightKg) || in.WeightKg < 0 || in.WeightKg > maxWeightKg:
		return fmt.Errorf("%w: weight must be between 0 and %d kg", ErrInvalidSet, maxWeightKg)
	case !wholeGrams(in.WeightKg):
		return fmt.Errorf("%w: weight must not be finer than 1 g", ErrInvalidSet)
	case in.RPE < minRPE || in.RPE > maxRPE:
		return fmt.Errorf("%w: rpe must be between %d and %d", ErrInvalidSet, minRPE, maxRPE)
	}
	return nil
}

// wholeGrams tolerates the float error of decimal kg values like 140.1.
func wholeGrams(weightKg float64) bool {
	g := weightKg * 1000
	return math.Abs(g-math.Round(g)) < 1e-6
}

type SetResult struct {
	Duplicate   bool      `json:"duplicate"`
	SetNumber   int       `json:"setNumber"`
	RestFrame   RestFrame `json:"restFrame,omitempty"`
	RestSeconds int       `json:"restSeconds,omitempty"`
	Session     Snapshot  `json:"session"`
}

// Snapshot is a read-only view of a machine at one instant.
type Snapshot struct {
	Context
	State                State                       `json:"state"`
	CurrentPosition      int                         `json:"currentPosition,omitempty"`
	CurrentExercise      *adaptation.AdaptedExercise `json:"currentExercise,omitempty"`
	NextSetNumber        int                         `json:"nextSetNumber,omitempty"`
	RestFrame            RestFrame                   `json:"restFrame,omitempty"`
	RestRemainingSeconds int                         `json:"restRemainingSeconds"`
	ElapsedSeconds       int                         `json:"elapsedSeconds"`
	CompletedAt          *time.Time                  `json:"completedAt,omitempty"`
	Exercises            []ExerciseSummary           `json:"exercises"`
}

// Machine drives one student through the adapted exercise list, one set and
// one rest at a time. It is not safe for concurrent use, the Registry
// serializes access per student.
type Machine struct {
	ctx   Context
	clock Clock

	state   State
	logs    []*ExerciseLog
	current int

	restUntil time.Time
	restFrame RestFrame

	startedAt     time.Time
	completedAt   time.Time
	lastActivity  time.Time
	abandonReason string
}

// NewMachine starts a session in awaiting_set on the first exercise. The
// modifiers in ctx are frozen for the lifetime of the machine.
func NewMachine(ctx Context, exercises []adaptation.PrescribedExercise, clock Clock) (*Machine, error) {
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}
	if clock == nil {
		clock = SystemClock()
	}

	now := clock.Now()
	if ctx.StartedAt.IsZero() {
		ctx.StartedAt = now
	}

	m := &Machine{
		ctx:          ctx,
		clock:        clock,
		state:        StateAwaitingSet,
		logs:         make([]*ExerciseLog, 0, len(exercises)),
		startedAt:    now,
		lastActivity: now,
	}
	for i, ex := range exercises {
		m.logs = append(m.logs, &ExerciseLog{
			ExerciseID:   ex.ID,
			ExerciseName: ex.Name,
			Position:     i + 1,
			Prescribed:   ex,
			Reps:         []int{},
			WeightsKg:    []float64{},
			RPE:          []int{},
			Status:       ExercisePending,
		})
	}
	m.enter(0)

	return m, nil
}

func (m *Machine) Context() Context {
	return m.ctx
}

func (m *Machine) State() State {
	m.tick(m.clock.Now())
	return m.state
}

func (m *Machine) AbandonReason() string {
	return m.abandonReason
}

// CompletedAt is zero until the machine reaches completed. Once set it
// never moves, so repeated checkouts see the same value.
func (m *Machine) CompletedAt() time.Time {
	return m.completedAt
}

// Duration is the session elapsed time, frozen at completion.
func (m *Machine) Duration() time.Duration {
	now := m.clock.Now()
	m.tick(now)
	return m.elapsedAt(now)
}

func (m *Machine) Idle() time.Duration {
	return m.clock.Now().Sub(m.lastActivity)
}

func (m *Machine) TotalExercises() int {
	return len(m.logs)
}

func (m *Machine) TotalSets() int {
	total := 0
	for _, l := range m.logs {
		total += l.ActualSets()
	}
	return total
}

// Logs returns copies of every exercise log in plan order.
func (m *Machine) Logs() []ExerciseLog {
	m.tick(m.clock.Now())
	out := make([]ExerciseLog, 0, len(m.logs))
	for _, l := range m.logs {
		out = append(out, l.clone())
	}
	return out
}

func (m *Machine) LogSet(in SetInput) (SetResult, error) {
	now := m.clock.Now()
	m.tick(now)

	if err := in.validate(); err != nil {
		return SetResult{}, err
	}

	// a repeated set stays a no-op even after the session completed
	log := m.logFor(in.ExerciseID)
	if log != nil && in.SetNumber <= log.ActualSets() {
		if !m.state.Terminal() {
			m.lastActivity = now
		}
		return SetResult{
			Duplicate: true,
			SetNumber: in.SetNumber,
			Session:   m.snapshot(now),
		}, nil
	}
	if m.state.Terminal() {
		return SetResult{}, fmt.Errorf("%w: log set in %s", ErrInvalidTransition, m.state)
	}
	m.lastActivity = now
	if m.state == StateResting {
		return SetResult{}, ErrRestInProgress
	}
	cur := m.logs[m.current]
	if log != cur {
		return SetResult{}, ErrNotCurrentExercise
	}
	if in.SetNumber != cur.ActualSets()+1 {
		return SetResult{}, fmt.Errorf("%w: expected set %d, got %d", ErrInvalidSet, cur.ActualSets()+1, in.SetNumber)
	}
	if !allowed(m.state, EventLogSet, StateResting) {
		return SetResult{}, ErrInvalidTransition
	}

	cur.appendSet(in)

	switch {
	case cur.ActualSets() < cur.TargetSets():
		m.restFrame = RestNextSet
	case m.current < len(m.logs)-1:
		m.restFrame = RestNextExercise
	default:
		m.restFrame = RestFinish
	}
	rest := cur.Adapted.RestSeconds
	m.restUntil = now.Add(time.Duration(rest) * time.Second)
	m.state = StateResting

	return SetResult{
		SetNumber:   in.SetNumber,
		RestFrame:   m.restFrame,
		RestSeconds: rest,
		Session:     m.snapshot(now),
	}, nil
}

// FinishRest ends the current rest early.
func (m *Machine) FinishRest() (Snapshot, error) {
	now := m.clock.Now()
	m.tick(now)

	if m.state != StateResting {
		return Snapshot{}, fmt.Errorf("%w: finish rest in %s", ErrInvalidTransition, m.state)
	}
	m.lastActivity = now
	m.completeRest(now)

	return m.snapshot(now), nil
}

// SkipExercise closes the current exercise, as completed when it has sets
// and skipped otherwise, and moves to the next one.
func (m *Machine) SkipExercise() (Snapshot, error) {
	now := m.clock.Now()
	m.tick(now)

	if !accepts(m.state, EventSkip) {
		return Snapshot{}, fmt.Errorf("%w: skip exercise in %s", ErrInvalidTransition, m.state)
	}
	to := StateAwaitingSet
	if m.current == len(m.logs)-1 {
		to = StateCompleted
	}
	if !allowed(m.state, EventSkip, to) {
		return Snapshot{}, ErrInvalidTransition
	}
	m.lastActivity = now

	m.closeCurrent()
	m.clearRest()
	m.state = StateAwaitingSet
	m.advance(now)

	return m.snapshot(now), nil
}

// Finish ends the session early. Exercises never reached stay pending and
// are left out of the checkout. Calling it on a completed session is a no-op.
func (m *Machine) Finish() (Snapshot, error) {
	now := m.clock.Now()
	m.tick(now)

	if m.state == StateCompleted {
		return m.snapshot(now), nil
	}
	if !accepts(m.state, EventFinish) {
		return Snapshot{}, fmt.Errorf("%w: finish in %s", ErrInvalidTransition, m.state)
	}
	if m.TotalSets() == 0 {
		return Snapshot{}, ErrEmptySession
	}
	m.lastActivity = now

	m.closeCurrent()
	m.clearRest()
	m.complete(now)

	return m.snapshot(now), nil
}

func (m *Machine) Abandon(reason string) error {
	now := m.clock.Now()
	m.tick(now)

	if !accepts(m.state, EventAbandon) {
		return fmt.Errorf("%w: abandon in %s", ErrInvalidTransition, m.state)
	}
	m.lastActivity = now
	m.clearRest()
	m.state = StateAbandoned
	m.abandonReason = reason

	return nil
}

func (m *Machine) Snapshot() Snapshot {
	now := m.clock.Now()
	m.tick(now)
	return m.snapshot(now)
}

// tick applies a rest that ran out before now, at the moment it ran out.
func (m *Machine) tick(now time.Time) {
	if m.state == StateResting && !now.Before(m.restUntil) {
		m.completeRest(m.restUntil)
	}
}

func (m *Machine) completeRest(at time.Time) {
	frame := m.restFrame
	m.clearRest()

	if frame == RestNextSet {
		m.state = StateAwaitingSet
		return
	}

	m.closeCurrent()
	m.state = StateAwaitingSet
	m.advance(at)
}

// advance moves to the next exercise or completes the session after the last one.
func (m *Machine) advance(at time.Time) {
	if m.current >= len(m.logs)-1 {
		m.complete(at)
		return
	}
	m.enter(m.current + 1)
}

func (m *Machine) enter(i int) {
	m.current = i
	l := m.logs[i]
	adapted := adaptation.Adapt(l.Prescribed, m.ctx.Modifiers)
	l.Adapted = &adapted
	l.Status = ExerciseInProgress
}

func (m *Machine) closeCurrent() {
	l := m.logs[m.current]
	if l.Status != ExerciseInProgress {
		return
	}
	if l.ActualSets() > 0 {
		l.Status = ExerciseCompleted
	} else {
		l.Status = ExerciseSkipped
	}
}

func (m *Machine) complete(at time.Time) {
	m.state = StateCompleted
	if m.completedAt.IsZero() {
		m.completedAt = at
	}
}

func (m *Machine) clearRest() {
	m.restUntil = time.Time{}
	m.restFrame = ""
}

func (m *Machine) logFor(exerciseID string) *ExerciseLog {
	if m.logs[m.current].ExerciseID == exerciseID {
		return m.logs[m.current]
	}
	for _, l := range m.logs {
		if l.ExerciseID == exerciseID {
			return l
		}
	}
	return nil
}

func (m *Machine) snapshot(now time.Time) Snapshot {
	s := Snapshot{
		Context:        m.ctx,
		State:          m.state,
		ElapsedSeconds: int(m.elapsedAt(now) / time.Second),
		Exercises:      make([]ExerciseSummary, 0, len(m.logs)),
	}
	for _, l := range m.logs {
		s.Exercises = append(s.Exercises, l.Summary())
	}

	if !m.state.Terminal() {
		cur := m.logs[m.current]
		adapted := *cur.Adapted
		s.CurrentPosition = cur.Position
		s.CurrentExercise = &adapted
		s.NextSetNumber = cur.ActualSets() + 1
	}
	if m.state == StateResting {
		s.RestFrame = m.restFrame
		s.RestRemainingSeconds = int(math.Ceil(m.restUntil.Sub(now).Seconds()))
		if s.RestFrame != RestNextSet {
			s.NextSetNumber = 0
		}
	}
	if !m.completedAt.IsZero() {
		completedAt := m.completedAt
		s.CompletedAt = &completedAt
	}

	return s
}

func (m *Machine) elapsedAt(now time.Time) time.Duration {
	if !m.completedAt.IsZero() {
		return m.completedAt.Sub(m.startedAt)
	}
	return now.Sub(m.startedAt)
}
