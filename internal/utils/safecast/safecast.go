// Package safecast converts between integer types with explicit range checks
// so flag and amount coercions fail instead of wrapping.
package safecast

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// IntToUint32 converts an int to uint32, rejecting negatives and overflow.
func IntToUint32(value int) (uint32, error) {
	if value < 0 || value > math.MaxUint32 {
		return 0, fmt.Errorf("value %d exceeds uint32 range", value)
	}

	return cast.ToUint32E(value)
}

// Int64ToUint64 converts an int64 to uint64, rejecting negatives.
func Int64ToUint64(value int64) (uint64, error) {
	if value < 0 {
		return 0, fmt.Errorf("value %d is negative, cannot convert to uint64", value)
	}

	return cast.ToUint64E(value)
}

// Float64ToUint64 converts a float64 to uint64. Negative, fractional and
// out-of-range values are rejected rather than truncated, so token amounts
// scaled from human units cannot silently lose precision.
func Float64ToUint64(value float64) (uint64, error) {
	if value < 0 {
		return 0, fmt.Errorf("value %g is negative, cannot convert to uint64", value)
	}
	if value > math.MaxUint64 {
		return 0, fmt.Errorf("value %g exceeds uint64 range", value)
	}
	if value != math.Trunc(value) {
		return 0, fmt.Errorf("value %g has fractional part, cannot convert to uint64", value)
	}

	return cast.ToUint64E(value)
}
