package domain

import "github.com/jonboulle/clockwork"

// clock is the package-level time source used when a RetryPolicy carries no
// clock of its own. Tests inject a fake via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the default time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
