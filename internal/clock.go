package internal

import "time"

// Clock supplies the current moment to flow resolution and date
// stamping. Injected so tests can fix time instead of patching the
// system clock.
type Clock interface {
	Now() time.Time
}

// ZoneClock reads the wall clock in a single fixed location. The whole
// journal runs in one timezone; per-record zones are out of scope.
type ZoneClock struct {
	loc *time.Location
}

func NewZoneClock(loc *time.Location) *ZoneClock {
	if loc == nil {
		loc = time.Local
	}
	return &ZoneClock{loc: loc}
}

func (c *ZoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always reports the same moment. Test helper.
type FixedClock struct {
	Moment time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Moment
}
