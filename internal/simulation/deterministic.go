package simulation

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc mints a seed for requests that did not supply one.
var seedFunc = func() int64 { return nowFunc().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// RandomSeed returns a fresh seed from the current provider. The boundary
// uses it so the minted seed can be echoed back to the caller.
func RandomSeed() int64 { return seedFunc() }
