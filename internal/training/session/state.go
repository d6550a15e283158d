package session

import "errors"

type State string

const (
	StateAwaitingSet State = "awaiting_set"
	StateResting     State = "resting"
	StateCompleted   State = "completed"
	StateAbandoned   State = "abandoned"
)

func (s State) Terminal() bool {
	return s == StateCompleted || s == StateAbandoned
}

type Event string

const (
	EventLogSet      Event = "log_set"
	EventRestElapsed Event = "rest_elapsed"
	EventSkip        Event = "skip_exercise"
	EventFinish      Event = "finish"
	EventAbandon     Event = "abandon"
)

var (
	ErrInvalidTransition  = errors.New("invalid session transition")
	ErrRestInProgress     = errors.New("rest in progress")
	ErrNotCurrentExercise = errors.New("not the current exercise")
	ErrEmptySession       = errors.New("no sets logged in session")
	ErrInvalidSet         = errors.New("invalid set")
	ErrNoExercises        = errors.New("session has no exercises")
)

type transition struct {
	From  State
	Event Event
	To    State
}

// Rest elapse and skip fan out: the target depends on what is left of the plan.
var transitionsTable = []transition{
	{From: StateAwaitingSet, Event: EventLogSet, To: StateResting},
	{From: StateAwaitingSet, Event: EventSkip, To: StateAwaitingSet},
	{From: StateAwaitingSet, Event: EventSkip, To: StateCompleted},
	{From: StateAwaitingSet, Event: EventFinish, To: StateCompleted},
	{From: StateAwaitingSet, Event: EventAbandon, To: StateAbandoned},

	{From: StateResting, Event: EventRestElapsed, To: StateAwaitingSet},
	{From: StateResting, Event: EventRestElapsed, To: StateCompleted},
	{From: StateResting, Event: EventSkip, To: StateAwaitingSet},
	{From: StateResting, Event: EventSkip, To: StateCompleted},
	{From: StateResting, Event: EventFinish, To: StateCompleted},
	{From: StateResting, Event: EventAbandon, To: StateAbandoned},
}

func allowed(from State, ev Event, to State) bool {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Event == ev && tr.To == to {
			return true
		}
	}
	return false
}

func accepts(from State, ev Event) bool {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Event == ev {
			return true
		}
	}
	return false
}
