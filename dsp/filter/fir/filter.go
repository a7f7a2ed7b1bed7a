package fir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-blockconv/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the filter.
var (
	ErrEmptyCoefficients = fmt.Errorf("fir: empty coefficients: %w", core.ErrInvalidArgument)
	ErrNonFiniteSample   = fmt.Errorf("fir: non-finite sample: %w", core.ErrInvalidArgument)
	ErrLengthMismatch    = fmt.Errorf("fir: buffer length mismatch: %w", core.ErrInvalidArgument)
)

// Filter implements a direct-form FIR filter with a shift-register history.
type Filter[T core.Sample] struct {
	coeffs  []T
	history []T // history[0] is the most recent input
}

// New creates a FIR filter from the given coefficient slice.
// The coefficients are copied and the history starts at zero.
// The filter order is len(coeffs)-1.
func New[T core.Sample](coeffs []T) (*Filter[T], error) {
	if len(coeffs) == 0 {
		return nil, ErrEmptyCoefficients
	}

	return &Filter[T]{
		coeffs:  core.Clone(coeffs),
		history: make([]T, len(coeffs)),
	}, nil
}

// Process filters one input sample:
//
//	y[n] = sum_{k=0}^{M-1} h[k] * x[n-k]
//
// The sample enters the history at index 0, the output is the dot product
// of coefficients and history, and the history then shifts right by one.
// A NaN or infinite sample returns ErrNonFiniteSample and leaves the
// history untouched.
func (f *Filter[T]) Process(x T) (T, error) {
	if !core.IsFinite(x) {
		return 0, fmt.Errorf("%w: %v", ErrNonFiniteSample, x)
	}

	f.history[0] = x
	y := dot(f.coeffs, f.history)
	copy(f.history[1:], f.history[:len(f.history)-1])
	return y, nil
}

func dot[T core.Sample](a, b []T) T {
	if af, ok := any(a).([]float64); ok {
		return T(vecmath.DotProduct(af, any(b).([]float64)))
	}

	var acc T
	for i, v := range a {
		acc += v * b[i]
	}
	return acc
}

// ProcessBlock filters a block of samples in-place.
// It stops at the first non-finite sample: buf[:i] is already filtered, the
// rest of buf is untouched, and the returned error names index i.
func (f *Filter[T]) ProcessBlock(buf []T) error {
	for i, x := range buf {
		y, err := f.Process(x)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		buf[i] = y
	}
	return nil
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// A non-finite sample stops processing as in ProcessBlock.
func (f *Filter[T]) ProcessBlockTo(dst, src []T) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst has %d samples, src has %d", ErrLengthMismatch, len(dst), len(src))
	}

	for i, x := range src {
		y, err := f.Process(x)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		dst[i] = y
	}
	return nil
}

// Reset clears the history to zero.
func (f *Filter[T]) Reset() {
	core.Zero(f.history)
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter[T]) Order() int {
	return len(f.coeffs) - 1
}

// Len returns the number of taps.
func (f *Filter[T]) Len() int {
	return len(f.coeffs)
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter[T]) Coefficients() []T {
	return core.Clone(f.coeffs)
}

// History returns a copy of the input history, most recent sample first.
// Between calls to Process, index 0 duplicates index 1 and is overwritten
// by the next sample.
func (f *Filter[T]) History() []T {
	return core.Clone(f.history)
}

// Response computes the complex frequency response H(e^{-jw}) at the given
// frequency (Hz) and sample rate (Hz).
func (f *Filter[T]) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range f.coeffs {
		h += complex(float64(c), 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter[T]) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(f.Response(freqHz, sampleRate)))
}
