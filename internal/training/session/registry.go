package session

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrSessionActive   = errors.New("student already has an active session")
	ErrNoActiveSession = errors.New("no active session")
)

const idleAbandonReason = "idle timeout"

type entry struct {
	mu      sync.Mutex
	machine *Machine
	removed bool
}

// Registry holds at most one machine per student. Events for a student are
// serialized by the entry mutex. Locks are always taken entry first, then
// registry.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
	}
}

// Start registers the machine built by create. Nothing is created when the
// student already has a session.
func (r *Registry) Start(studentID string, create func() (*Machine, error)) (*Machine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[studentID]; ok {
		return nil, ErrSessionActive
	}

	m, err := create()
	if err != nil {
		return nil, err
	}
	r.entries[studentID] = &entry{machine: m}

	return m, nil
}

// With runs fn with exclusive access to the student's machine.
func (r *Registry) With(studentID string, fn func(m *Machine) error) error {
	r.mu.Lock()
	e, ok := r.entries[studentID]
	r.mu.Unlock()
	if !ok {
		return ErrNoActiveSession
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return ErrNoActiveSession
	}

	return fn(e.machine)
}

// Remove tears down the student's entry if it still holds m. It must only be
// called from inside With for the same student.
func (r *Registry) Remove(studentID string, m *Machine) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[studentID]
	if !ok || e.machine != m {
		return
	}
	e.removed = true
	delete(r.entries, studentID)
}

// Sweep abandons and drops every session idle for longer than idle. Nothing
// is persisted for swept sessions.
func (r *Registry) Sweep(idle time.Duration) []Context {
	type candidate struct {
		studentID string
		entry     *entry
	}

	r.mu.Lock()
	candidates := make([]candidate, 0, len(r.entries))
	for id, e := range r.entries {
		candidates = append(candidates, candidate{studentID: id, entry: e})
	}
	r.mu.Unlock()

	var swept []Context
	for _, c := range candidates {
		c.entry.mu.Lock()
		if !c.entry.removed && c.entry.machine.Idle() > idle {
			m := c.entry.machine
			// a completed session that was never checked out is dropped as well
			_ = m.Abandon(idleAbandonReason)
			r.Remove(c.studentID, m)
			swept = append(swept, m.Context())
		}
		c.entry.mu.Unlock()
	}

	return swept
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
