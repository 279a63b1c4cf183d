package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze "today" via
// SetClock. Date-range resolution closes open-ended ranges against the
// current date, which would otherwise make test output time-dependent.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for date-range resolution.
// Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
