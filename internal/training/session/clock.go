package session

import "time"

// Clock is the time source of a session. time.Now readings carry the
// monotonic clock, so elapsed times survive wall clock jumps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func SystemClock() Clock {
	return systemClock{}
}
