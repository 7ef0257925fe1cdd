package simulation

import (
	"hash/fnv"
	"math"
)

// splitmix64 constants.
const (
	golden = 0x9E3779B97F4A7C15
	mixA   = 0xBF58476D1CE4E5B9
	mixB   = 0x94D049BB133111EB
)

// Cursor is an immutable position in a reproducible random stream. The value
// at each position is a pure function of (seed, index), so two simulations
// with the same seed consume identical draws regardless of timing or
// goroutine scheduling. Advancing returns a new Cursor; the old one still
// yields the same values.
type Cursor struct {
	seed  uint64
	index uint64
}

// NewCursor starts a stream at index 0 for the given seed.
func NewCursor(seed int64) Cursor {
	return Cursor{seed: uint64(seed)}
}

// Index reports how many draws have been consumed.
func (c Cursor) Index() uint64 { return c.index }

// mix64 is the splitmix64 finalizer.
func mix64(z uint64) uint64 {
	z ^= z >> 30
	z *= mixA
	z ^= z >> 27
	z *= mixB
	z ^= z >> 31
	return z
}

// Next returns a uniform draw in the open interval (0, 1) and the advanced
// cursor. The open interval keeps log(u) finite for the normal transform.
func (c Cursor) Next() (float64, Cursor) {
	v := mix64(c.seed + (c.index+1)*golden)
	u := (float64(v>>11) + 0.5) / (1 << 53)
	return u, Cursor{seed: c.seed, index: c.index + 1}
}

// NextNorm returns a standard normal draw via the Box-Muller transform,
// consuming two uniforms.
func (c Cursor) NextNorm() (float64, Cursor) {
	u1, c := c.Next()
	u2, c := c.Next()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return z, c
}

// SeedFromString maps an arbitrary seed label to a numeric seed with FNV-1a,
// so callers can use memorable strings like "test1".
func SeedFromString(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
