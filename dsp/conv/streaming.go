package conv

import (
	"fmt"

	"github.com/cwbudde/algo-blockconv/dsp/core"
)

// StreamingConvolver performs block-by-block convolution with persistent state.
// Implementations include overlap-add and overlap-save algorithms, which
// produce identical output but carry different state between blocks.
//
// Both algorithms:
//   - Process fixed-length input blocks
//   - Carry M-1 samples of state between blocks
//   - Write into caller-owned buffers via ProcessBlockTo
//
// Feeding a signal through k blocks yields the first k*BlockLength() samples
// of its linear convolution with the kernel. Flush the remaining M-1 samples
// by feeding a zero block.
//
// A StreamingConvolver is owned by one stream and is not safe for concurrent use.
type StreamingConvolver[T core.Sample] interface {
	// ProcessBlock convolves a single input block and returns the output block.
	// Both input and output are BlockLength() samples.
	ProcessBlock(input []T) ([]T, error)

	// ProcessBlockTo convolves an input block into a pre-allocated output.
	// Both slices must be BlockLength() samples.
	ProcessBlockTo(output, input []T) error

	// Reset clears internal state for processing a new signal stream.
	Reset()

	// BlockLength returns the expected input/output block length.
	BlockLength() int

	// KernelLen returns the convolution kernel length.
	KernelLen() int
}

func newStreamingConfig[T core.Sample](kernel []T, blockLength int) ([]T, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockLength <= 0 {
		return nil, fmt.Errorf("%w: blockLength must be positive, got %d", ErrInvalidBlockLength, blockLength)
	}
	return core.Clone(kernel), nil
}

func checkBlock(want, gotIn, gotOut int) error {
	if gotIn != want {
		return fmt.Errorf("%w: expected %d input samples, got %d", ErrLengthMismatch, want, gotIn)
	}
	if gotOut != want {
		return fmt.Errorf("%w: expected %d output samples, got %d", ErrLengthMismatch, want, gotOut)
	}
	return nil
}
