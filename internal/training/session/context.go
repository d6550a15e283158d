package session

import (
	"time"

	"github.com/2beens/trainingcoach/internal/training/adaptation"
	"github.com/2beens/trainingcoach/internal/training/readiness"
)

// Context is captured when a session starts and never changes afterwards,
// later check-ins do not touch a running session.
type Context struct {
	SessionID      string               `json:"sessionId"`
	StudentID      string               `json:"studentId"`
	PlanID         string               `json:"planId"`
	ReadinessLevel readiness.Level      `json:"readinessLevel,omitempty"`
	Modifiers      adaptation.Modifiers `json:"modifiers"`
	Message        string               `json:"message,omitempty"`
	StartedAt      time.Time            `json:"startedAt"`
}
