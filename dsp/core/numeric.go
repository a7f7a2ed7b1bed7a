// Package core holds the numeric sample constraint, error taxonomy and
// configuration shared by the convolution and filter packages.
package core

import (
	"errors"
	"math"
)

const defaultEpsilon = 1e-12

// ErrInvalidArgument is the root of every argument validation error in this
// module. Package-level sentinels wrap it so callers can test with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Sample is the set of element types a signal or a kernel may hold.
//
// Integer arithmetic follows Go semantics: overflow wraps and is never
// saturated or reported.
type Sample interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// IsFinite reports whether v is neither NaN nor an infinity.
// Integer samples are always finite.
func IsFinite[T Sample](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
