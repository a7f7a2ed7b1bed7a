package conv

import (
	"fmt"

	"github.com/cwbudde/algo-blockconv/dsp/core"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput         = fmt.Errorf("conv: empty input: %w", core.ErrInvalidArgument)
	ErrEmptyKernel        = fmt.Errorf("conv: empty kernel: %w", core.ErrInvalidArgument)
	ErrInvalidBlockLength = fmt.Errorf("conv: invalid block length: %w", core.ErrInvalidArgument)
	ErrLengthMismatch     = fmt.Errorf("conv: buffer length mismatch: %w", core.ErrInvalidArgument)
)

// Mode specifies the output mode for linear convolution.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input.
	ModeSame

	// ModeValid returns only the portion where signals fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

func validate[T core.Sample](x, h []T) error {
	if len(x) == 0 {
		return ErrEmptyInput
	}
	if len(h) == 0 {
		return ErrEmptyKernel
	}
	return nil
}

// Linear performs direct time-domain linear convolution of x and h.
// Returns a new slice of length len(x) + len(h) - 1 with
//
//	y[i] = sum_{j} x[j] * h[i-j]
//
// where terms outside either operand contribute zero. The inputs are not
// modified. This is an O(N*M) algorithm.
func Linear[T core.Sample](x, h []T) ([]T, error) {
	if err := validate(x, h); err != nil {
		return nil, err
	}

	y := make([]T, len(x)+len(h)-1)
	linearTo(y, x, h, nil)
	return y, nil
}

// LinearTo performs direct linear convolution into a pre-allocated destination.
// dst must have length len(x) + len(h) - 1.
func LinearTo[T core.Sample](dst, x, h []T) error {
	if err := validate(x, h); err != nil {
		return err
	}
	if want := len(x) + len(h) - 1; len(dst) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, want, len(dst))
	}

	linearTo(dst, x, h, nil)
	return nil
}

// linearTo assumes validated, non-empty operands and a correctly sized dst.
// temp is optional scratch of at least len(h) samples for the vector path.
func linearTo[T core.Sample](dst, x, h, temp []T) {
	core.Zero(dst)

	// float64 with kernels >= 4 samples goes through the vector kernels
	const simdThreshold = 4
	if len(h) >= simdThreshold {
		if d, ok := any(dst).([]float64); ok {
			linearFloat64(d, any(x).([]float64), any(h).([]float64), any(temp).([]float64))
			return
		}
	}

	for i, xi := range x {
		row := dst[i : i+len(h)]
		for j, hj := range h {
			row[j] += xi * hj
		}
	}
}

// LinearMode performs linear convolution and trims the result to mode.
func LinearMode[T core.Sample](x, h []T, mode Mode) ([]T, error) {
	full, err := Linear(x, h)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(x), len(h), mode), nil
}

// trimToMode extracts the appropriate portion of a full convolution result.
func trimToMode[T core.Sample](full []T, lenA, lenB int, mode Mode) []T {
	switch mode {
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}
		return full[lenA-1 : lenB]
	default:
		return full
	}
}

// Circular performs direct circular convolution of x and h.
//
// The working length is L = max(len(x), len(h)); both operands are copied
// and zero-padded to L, leaving the caller's slices untouched. The result has
// length L with
//
//	y[n] = sum_{k=0}^{L-1} x[k] * h[(n-k) mod L]
func Circular[T core.Sample](x, h []T) ([]T, error) {
	if err := validate(x, h); err != nil {
		return nil, err
	}

	n := max(len(x), len(h))
	y := make([]T, n)
	circularTo(y, core.ZeroPad(x, n), core.ZeroPad(h, n))
	return y, nil
}

// CircularTo performs circular convolution into a pre-allocated destination.
// dst must have length max(len(x), len(h)). Unlike Circular it does not copy
// the operands; samples past the end of the shorter one read as zero.
func CircularTo[T core.Sample](dst, x, h []T) error {
	if err := validate(x, h); err != nil {
		return err
	}
	if want := max(len(x), len(h)); len(dst) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, want, len(dst))
	}

	circularTo(dst, x, h)
	return nil
}

// circularTo uses len(dst) as the working length. Samples of x or h at or
// beyond their own length read as zero.
func circularTo[T core.Sample](dst, x, h []T) {
	n := len(dst)
	for i := range n {
		var acc T
		for k := 0; k < len(x) && k < n; k++ {
			idx := i - k
			if i < k {
				idx = i + n - k
			}
			if idx < len(h) {
				acc += x[k] * h[idx]
			}
		}
		dst[i] = acc
	}
}
