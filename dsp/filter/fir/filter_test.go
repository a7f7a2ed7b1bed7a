package fir

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-blockconv/dsp/core"
	"github.com/cwbudde/algo-blockconv/internal/testutil"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func mustNew[T core.Sample](t *testing.T, coeffs []T) *Filter[T] {
	t.Helper()
	f, err := New(coeffs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestNew(t *testing.T) {
	coeffs := []float64{0.25, 0.5, 0.25}
	f := mustNew(t, coeffs)
	if f.Order() != 2 || f.Len() != 3 {
		t.Fatalf("Order=%d Len=%d, want 2 and 3", f.Order(), f.Len())
	}
	got := f.Coefficients()
	for i := range coeffs {
		if got[i] != coeffs[i] {
			t.Errorf("coeffs[%d]: got %v, want %v", i, got[i], coeffs[i])
		}
	}
	for i, v := range f.History() {
		if v != 0 {
			t.Errorf("history[%d] = %v, want 0", i, v)
		}
	}
	// Verify it's a copy.
	coeffs[0] = 999
	if f.coeffs[0] == 999 {
		t.Error("New did not copy coefficients")
	}
}

func TestNewEmpty(t *testing.T) {
	_, err := New([]int{})
	if !errors.Is(err, ErrEmptyCoefficients) {
		t.Fatalf("expected ErrEmptyCoefficients, got %v", err)
	}
	if !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("expected %v to match core.ErrInvalidArgument", err)
	}
}

func TestProcess_Scenario(t *testing.T) {
	f := mustNew(t, []int{1, 2, 1})

	want := []int{1, 4, 8, 10}
	for i, x := range []int{1, 2, 3, 2} {
		y, err := f.Process(x)
		if err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}
		if y != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, y, want[i])
		}
	}
}

func TestProcess_HistoryShift(t *testing.T) {
	f := mustNew(t, []int{1, 1, 1, 1})

	for _, x := range []int{5, 6, 7} {
		if _, err := f.Process(x); err != nil {
			t.Fatalf("Process: %v", err)
		}
	}

	// Index 0 keeps the last sample until the next call overwrites it.
	testutil.RequireSliceNearlyEqual(t, f.History(), []int{7, 7, 6, 5}, 0)
}

func TestProcess_Impulse(t *testing.T) {
	// Impulse response of FIR should equal the coefficients.
	coeffs := []float64{0.25, 0.5, 0.25, -0.125, 0.0625}
	f := mustNew(t, coeffs)

	for i, want := range coeffs {
		var x float64
		if i == 0 {
			x = 1
		}
		y, _ := f.Process(x)
		if !almostEqual(y, want, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, want)
		}
	}
	// After the impulse response, output should be zero.
	for i := range 5 {
		y, _ := f.Process(0)
		if !almostEqual(y, 0, eps) {
			t.Errorf("post-IR sample %d: got %v, want 0", i, y)
		}
	}
}

func TestProcess_MovingAverage(t *testing.T) {
	// 3-tap moving average: h = [1/3, 1/3, 1/3]
	f := mustNew(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3})
	input := []float64{1, 1, 1, 1, 1}
	// y[0] = 1/3, y[1] = 2/3, y[2..4] = 1
	want := []float64{1.0 / 3, 2.0 / 3, 1, 1, 1}
	for i, x := range input {
		y, _ := f.Process(x)
		if !almostEqual(y, want[i], eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, want[i])
		}
	}
}

func TestProcess_Differentiator(t *testing.T) {
	// Simple differentiator: h = [1, -1]
	f := mustNew(t, []int64{1, -1})
	input := []int64{0, 1, 3, 6, 10}
	// y[n] = x[n] - x[n-1], with x[-1] = 0
	want := []int64{0, 1, 2, 3, 4}
	for i, x := range input {
		y, _ := f.Process(x)
		if y != want[i] {
			t.Errorf("sample %d: got %v, want %v", i, y, want[i])
		}
	}
}

func TestProcess_MatchesLinearConvolutionPrefix(t *testing.T) {
	x := testutil.DeterministicInts(31, 50, 300)
	h := testutil.DeterministicInts(32, 50, 17)
	want := testutil.ReferenceConvolve(x, h)[:len(x)]

	f := mustNew(t, h)
	got := make([]int, 0, len(x))
	for _, v := range x {
		y, err := f.Process(v)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		got = append(got, y)
	}

	if len(got) != len(x) {
		t.Fatalf("%d outputs for %d inputs", len(got), len(x))
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestProcess_Float64MatchesReference(t *testing.T) {
	x := testutil.DeterministicNoise(41, 1, 128)
	h := testutil.DeterministicNoise(42, 1, 24)
	want := testutil.ReferenceConvolve(x, h)[:len(x)]

	f := mustNew(t, h)
	got := make([]float64, len(x))
	if err := f.ProcessBlockTo(got, x); err != nil {
		t.Fatalf("ProcessBlockTo: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestProcess_NonFiniteLeavesHistory(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		f := mustNew(t, []float64{1, 2, 1})
		_, _ = f.Process(1)
		_, _ = f.Process(2)
		before := f.History()

		_, err := f.Process(bad)
		if !errors.Is(err, ErrNonFiniteSample) {
			t.Fatalf("Process(%v): expected ErrNonFiniteSample, got %v", bad, err)
		}
		testutil.RequireSliceNearlyEqual(t, f.History(), before, 0)

		// The stream continues as if the bad sample never arrived.
		y, err := f.Process(3)
		if err != nil || y != 8 {
			t.Fatalf("after %v: got %v, %v; want 8", bad, y, err)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	coeffs := []float64{0.25, 0.5, 0.25}
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}

	f1 := mustNew(t, coeffs)
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i], _ = f1.Process(x)
	}

	f2 := mustNew(t, coeffs)
	block := make([]float64, len(input))
	copy(block, input)
	if err := f2.ProcessBlock(block); err != nil {
		t.Fatalf("ProcessBlock: %v", err)
	}

	for i := range block {
		if !almostEqual(block[i], ref[i], eps) {
			t.Errorf("sample %d: block=%.15f, ref=%.15f", i, block[i], ref[i])
		}
	}
}

func TestProcessBlock_StopsAtNonFinite(t *testing.T) {
	f := mustNew(t, []float64{1, 1})
	buf := []float64{1, 2, math.NaN(), 4}

	err := f.ProcessBlock(buf)
	if !errors.Is(err, ErrNonFiniteSample) {
		t.Fatalf("expected ErrNonFiniteSample, got %v", err)
	}
	if buf[0] != 1 || buf[1] != 3 || !math.IsNaN(buf[2]) || buf[3] != 4 {
		t.Fatalf("buf = %v, want [1 3 NaN 4]", buf)
	}
}

func TestProcessBlockTo_LengthMismatch(t *testing.T) {
	f := mustNew(t, []int{1})
	err := f.ProcessBlockTo(make([]int, 2), []int{1, 2, 3})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestReset(t *testing.T) {
	f := mustNew(t, []float64{0.25, 0.5, 0.25})
	_, _ = f.Process(1)
	_, _ = f.Process(0.5)
	f.Reset()

	// After reset, impulse response should match coefficients again.
	for i, want := range f.coeffs {
		var x float64
		if i == 0 {
			x = 1
		}
		y, _ := f.Process(x)
		if !almostEqual(y, want, eps) {
			t.Errorf("sample %d after reset: got %v, want %v", i, y, want)
		}
	}
}

func TestIndependentInstances(t *testing.T) {
	a := mustNew(t, []int{1, 1})
	b := mustNew(t, []int{1, 1})

	_, _ = a.Process(10)
	y, _ := b.Process(1)
	if y != 1 {
		t.Fatalf("instances share state: got %d, want 1", y)
	}
}

func TestResponse_DCGain(t *testing.T) {
	// DC gain of FIR = sum of coefficients.
	coeffs := []float64{0.25, 0.5, 0.25}
	f := mustNew(t, coeffs)
	h := f.Response(0, 48000)
	dcGain := cmplx.Abs(h)
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	if !almostEqual(dcGain, sum, 1e-12) {
		t.Errorf("DC gain: got %v, want %v", dcGain, sum)
	}
}

func TestResponse_Differentiator_DC(t *testing.T) {
	// Differentiator [1, -1] should have DC gain = 0.
	f := mustNew(t, []int{1, -1})
	h := f.Response(0, 48000)
	if !almostEqual(cmplx.Abs(h), 0, 1e-12) {
		t.Errorf("differentiator DC gain: got %v, want 0", cmplx.Abs(h))
	}
}

func TestMagnitudeDB_MatchesResponse(t *testing.T) {
	f := mustNew(t, []float64{0.25, 0.5, 0.25})
	sr := 48000.0
	for _, freq := range []float64{100, 1000, 10000} {
		h := f.Response(freq, sr)
		fromResponse := 20 * math.Log10(cmplx.Abs(h))
		fromMethod := f.MagnitudeDB(freq, sr)
		if !almostEqual(fromMethod, fromResponse, 1e-10) {
			t.Errorf("freq=%v: MagnitudeDB=%.15f, ref=%.15f", freq, fromMethod, fromResponse)
		}
	}
}

func TestCoefficients_IsCopy(t *testing.T) {
	f := mustNew(t, []float64{0.25, 0.5, 0.25})
	c := f.Coefficients()
	c[0] = 999
	if f.coeffs[0] == 999 {
		t.Error("Coefficients did not return a copy")
	}
}

func TestSingleTap(t *testing.T) {
	// Single-tap FIR (gain only).
	f := mustNew(t, []float64{0.5})
	if f.Order() != 0 {
		t.Fatalf("Order: got %d, want 0", f.Order())
	}
	input := []float64{1, 2, 3}
	for i, x := range input {
		y, _ := f.Process(x)
		if !almostEqual(y, x*0.5, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, x*0.5)
		}
	}
}
