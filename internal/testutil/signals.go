package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-blockconv/dsp/core"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise in [-amplitude, amplitude) with a
// fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DeterministicInts generates integers uniformly drawn from [-limit, limit]
// with a fixed seed. Integer signals make equivalence checks exact.
func DeterministicInts(seed int64, limit, length int) []int {
	out := make([]int, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.Intn(2*limit+1) - limit
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse[T core.Sample](length, pos int) []T {
	out := make([]T, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Ramp returns 1, 2, ..., n.
func Ramp[T core.Sample](n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(i + 1)
	}
	return out
}

// ReferenceConvolve is the textbook gather-form linear convolution
//
//	y[i] = sum_{j=0}^{i} x[j] * h[i-j]
//
// kept independent of the package under test.
func ReferenceConvolve[T core.Sample](x, h []T) []T {
	if len(x) == 0 || len(h) == 0 {
		return nil
	}
	y := make([]T, len(x)+len(h)-1)
	for i := range y {
		for j := 0; j <= i; j++ {
			if j >= len(x) || i-j >= len(h) {
				continue
			}
			y[i] += x[j] * h[i-j]
		}
	}
	return y
}
