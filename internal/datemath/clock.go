package datemath

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Date builds a FixedClock at local noon of the given day.
func Date(year int, month time.Month, day int) FixedClock {
	return FixedClock(time.Date(year, month, day, 12, 0, 0, 0, time.Local))
}
