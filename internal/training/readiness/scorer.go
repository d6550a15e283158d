package readiness

import (
	"math"

	"github.com/2beens/trainingcoach/pkg"
)

type Weights struct {
	SleepQuality float64
	SleepHours   float64
	Soreness     float64
	Stress       float64
	Energy       float64
}

func (w Weights) total() float64 {
	return w.SleepQuality + w.SleepHours + w.Soreness + w.Stress + w.Energy
}

type ScorerConfig struct {
	Weights             Weights
	OptimalSleepHours   float64
	SleepPenaltyPerHour float64
	GreenThreshold      float64
	YellowThreshold     float64
}

func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		Weights: Weights{
			SleepQuality: 1,
			SleepHours:   1,
			Soreness:     1,
			Stress:       1,
			Energy:       1,
		},
		OptimalSleepHours:   8,
		SleepPenaltyPerHour: 2.5,
		GreenThreshold:      7,
		YellowThreshold:     4,
	}
}

// Scorer turns a check-in into a readiness score and level. It is stateless.
type Scorer struct {
	cfg ScorerConfig
}

func NewScorer(cfg ScorerConfig) *Scorer {
	def := DefaultScorerConfig()
	if cfg.Weights.total() <= 0 {
		cfg.Weights = def.Weights
	}
	if cfg.OptimalSleepHours <= 0 {
		cfg.OptimalSleepHours = def.OptimalSleepHours
	}
	if cfg.SleepPenaltyPerHour <= 0 {
		cfg.SleepPenaltyPerHour = def.SleepPenaltyPerHour
	}
	if cfg.GreenThreshold <= cfg.YellowThreshold {
		cfg.GreenThreshold, cfg.YellowThreshold = def.GreenThreshold, def.YellowThreshold
	}
	return &Scorer{cfg: cfg}
}

func (s *Scorer) Score(c Checkin) (Result, error) {
	if err := Validate(c); err != nil {
		return Result{}, err
	}

	w := s.cfg.Weights
	sum := w.SleepQuality*float64(c.SleepQuality) +
		w.SleepHours*s.sleepHoursComponent(c.SleepHours) +
		w.Soreness*float64(11-c.MuscleSoreness) +
		w.Stress*float64(11-c.StressLevel) +
		w.Energy*float64(c.EnergyLevel)

	score := pkg.RoundTo(clamp(sum/w.total(), 0, 10), 2)

	return Result{
		Score: score,
		Level: s.Classify(score),
	}, nil
}

func (s *Scorer) Classify(score float64) Level {
	switch {
	case score >= s.cfg.GreenThreshold:
		return LevelGreen
	case score >= s.cfg.YellowThreshold:
		return LevelYellow
	default:
		return LevelRed
	}
}

// missing sleep hours count as the optimum
func (s *Scorer) sleepHoursComponent(hours *float64) float64 {
	if hours == nil {
		return 10
	}
	deviation := math.Abs(*hours - s.cfg.OptimalSleepHours)
	return clamp(10-deviation*s.cfg.SleepPenaltyPerHour, 0, 10)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
