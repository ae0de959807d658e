package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc returns a pseudo-random base seed when the caller did not pin one.
var seedFunc = func() uint64 { return uint64(time.Now().UnixNano()) }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() uint64) { seedFunc = f }
