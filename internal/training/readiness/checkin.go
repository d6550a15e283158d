package readiness

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/multierr"
)

type Level string

const (
	LevelGreen  Level = "green"
	LevelYellow Level = "yellow"
	LevelRed    Level = "red"
)

func (l Level) Valid() bool {
	switch l {
	case LevelGreen, LevelYellow, LevelRed:
		return true
	default:
		return false
	}
}

// Checkin is one student's wellness check-in for a calendar day.
type Checkin struct {
	ID               int64     `json:"id,omitempty"`
	StudentID        string    `json:"studentId"`
	Date             time.Time `json:"date"`
	SleepQuality     int       `json:"sleepQuality"`
	SleepHours       *float64  `json:"sleepHours,omitempty"`
	MuscleSoreness   int       `json:"muscleSoreness"`
	StressLevel      int       `json:"stressLevel"`
	EnergyLevel      int       `json:"energyLevel"`
	Mood             *int      `json:"mood,omitempty"`
	HRVMs            *float64  `json:"hrvMs,omitempty"`
	RestingHeartRate *int      `json:"restingHeartRate,omitempty"`
	ReadinessScore   float64   `json:"readinessScore"`
	ReadinessLevel   Level     `json:"readinessLevel"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty"`
}

type Result struct {
	Score float64 `json:"score"`
	Level Level   `json:"level"`
}

// ValidationError lists every check-in field that is out of range.
type ValidationError struct {
	Fields []string
	err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid check-in [%s]: %s", strings.Join(e.Fields, ", "), e.err)
}

func (e *ValidationError) Unwrap() []error {
	return multierr.Errors(e.err)
}

func (e *ValidationError) add(field string, format string, args ...any) {
	e.Fields = append(e.Fields, field)
	e.err = multierr.Append(e.err, fmt.Errorf("%s: "+format, append([]any{field}, args...)...))
}

const (
	minScale      = 1
	maxScale      = 10
	minSleepHours = 4.0
	maxSleepHours = 10.0
	minRestingHR  = 20
	maxRestingHR  = 250
)

// Validate rejects out-of-range input. Values are never clamped.
func Validate(c Checkin) error {
	verr := &ValidationError{}

	scaled := []struct {
		name  string
		value int
	}{
		{"sleep_quality", c.SleepQuality},
		{"muscle_soreness", c.MuscleSoreness},
		{"stress_level", c.StressLevel},
		{"energy_level", c.EnergyLevel},
	}
	for _, f := range scaled {
		if f.value < minScale || f.value > maxScale {
			verr.add(f.name, "must be within %d-%d, got %d", minScale, maxScale, f.value)
		}
	}

	if c.SleepHours != nil {
		h := *c.SleepHours
		switch {
		case math.IsNaN(h) || h < minSleepHours || h > maxSleepHours:
			verr.add("sleep_hours", "must be within %.0f-%.0f, got %v", minSleepHours, maxSleepHours, h)
		case h*2 != math.Trunc(h*2):
			verr.add("sleep_hours", "must be in half hour steps, got %v", h)
		}
	}
	if c.Mood != nil && (*c.Mood < minScale || *c.Mood > maxScale) {
		verr.add("mood", "must be within %d-%d, got %d", minScale, maxScale, *c.Mood)
	}
	if c.HRVMs != nil && (math.IsNaN(*c.HRVMs) || *c.HRVMs <= 0) {
		verr.add("hrv_ms", "must be positive, got %v", *c.HRVMs)
	}
	if c.RestingHeartRate != nil && (*c.RestingHeartRate < minRestingHR || *c.RestingHeartRate > maxRestingHR) {
		verr.add("resting_heart_rate", "must be within %d-%d, got %d", minRestingHR, maxRestingHR, *c.RestingHeartRate)
	}

	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

// Day truncates t to the calendar day it falls on in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
