package domain

import "github.com/jonboulle/clockwork"

// clock is the package-level time source for ProcessedAt stamps. Production
// code runs on the real clock; tests and fixture generation freeze it via
// SetClock for reproducible output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used when building observations. Pass nil
// to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
