package dates

import "time"

// Clock supplies "today" to code that substitutes the current date.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Today() time.Time {
	return Truncate(time.Now())
}

// FixedClock always reports the same day.
type FixedClock time.Time

func (c FixedClock) Today() time.Time {
	return Truncate(time.Time(c))
}
