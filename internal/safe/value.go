// Package safe provides overflow-checked conversions and hardened file
// reads for code that handles host-supplied data.
package safe

import (
	"math"
)

// Uint64ToInt64 safely converts an uint64 value to int64, clamping to math.MaxInt64 if overflow
// would occur.
// Returns the converted value and a boolean indicating whether clamping occurred.
// Argument capture funnels every integer width through a shared int64
// representation, so out-of-range unsigned values must degrade predictably
// instead of wrapping negative.
func Uint64ToInt64(val uint64) (int64, bool) {
	if val > math.MaxInt64 {
		return math.MaxInt64, true
	}
	return int64(val), false
}
