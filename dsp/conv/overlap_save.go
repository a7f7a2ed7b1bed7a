package conv

import (
	"fmt"

	"github.com/cwbudde/algo-blockconv/dsp/buffer"
	"github.com/cwbudde/algo-blockconv/dsp/core"
)

// OverlapSave implements block convolution using the overlap-save method.
// Also known as "overlap-scrap", this method uses overlapping input segments
// and discards the circular convolution wrap-around portion.
//
// The algorithm, with kernel length M and block length L:
//  1. Prepend the M-1 sample overlap buffer (zeros for the first block) to
//     the next L input samples, forming a working block of L+M-1 samples
//  2. Circularly convolve the working block with the kernel
//  3. Discard the first M-1 samples of the result (aliased by wrap-around)
//     and place the remaining L samples at the block's output offset
//  4. Refresh the overlap buffer with the last M-1 samples of the input
//     working block
//
// The signal is zero-padded so that the blocks cover the full
// len(input)+M-1 output; lengths that are not a multiple of L are accepted.
//
// An OverlapSave holds only the kernel and configuration; the overlap buffer
// and working blocks are pooled per Process call, so one instance may be used
// from several goroutines.
type OverlapSave[T core.Sample] struct {
	kernel      []T
	blockLength int

	scratch *buffer.Pool[T]
}

// NewOverlapSave creates an overlap-save convolver for kernel. The kernel is
// copied. blockLength must be greater than len(kernel); if it is 0 or
// negative a default of max(4*len(kernel), 64) is chosen.
func NewOverlapSave[T core.Sample](kernel []T, blockLength int) (*OverlapSave[T], error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockLength <= 0 {
		blockLength = defaultBlockLength(len(kernel))
	}
	if blockLength <= len(kernel) {
		return nil, fmt.Errorf("%w: overlap-save needs more than %d samples per block, got %d",
			ErrInvalidBlockLength, len(kernel), blockLength)
	}

	return &OverlapSave[T]{
		kernel:      core.Clone(kernel),
		blockLength: blockLength,
		scratch:     buffer.NewPool[T](),
	}, nil
}

// BlockLength returns the number of new input samples per block, which is
// also the number of valid output samples each block produces.
func (os *OverlapSave[T]) BlockLength() int {
	return os.blockLength
}

// KernelLen returns the kernel length.
func (os *OverlapSave[T]) KernelLen() int {
	return len(os.kernel)
}

// Process convolves the input signal with the kernel.
// Returns the full linear convolution result of length len(input)+KernelLen()-1.
func (os *OverlapSave[T]) Process(input []T) ([]T, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	output := make([]T, len(input)+len(os.kernel)-1)
	os.process(output, input)
	return output, nil
}

// ProcessTo convolves input and writes to pre-allocated output.
// Output must have length len(input) + KernelLen() - 1.
func (os *OverlapSave[T]) ProcessTo(output, input []T) error {
	if len(input) == 0 {
		return ErrEmptyInput
	}
	if want := len(input) + len(os.kernel) - 1; len(output) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, want, len(output))
	}

	os.process(output, input)
	return nil
}

// process writes every output sample exactly once.
func (os *OverlapSave[T]) process(output, input []T) {
	m := len(os.kernel)
	overlapBuf := os.scratch.Get(m - 1)
	workBuf := os.scratch.Get(os.blockLength + m - 1)
	circBuf := os.scratch.Get(os.blockLength + m - 1)
	defer os.scratch.Put(overlapBuf)
	defer os.scratch.Put(workBuf)
	defer os.scratch.Put(circBuf)

	overlap, work, circ := overlapBuf.Samples(), workBuf.Samples(), circBuf.Samples()

	for _, b := range Partition(len(input), os.blockLength, len(output)) {
		saveBlock(circ, work, overlap, input, os.kernel, b)

		n := min(os.blockLength, len(output)-b.Start)
		copy(output[b.Start:b.Start+n], circ[m-1:m-1+n])
	}
}

// saveBlock builds the working block for b from overlap and x, circularly
// convolves it with h into circ, and refreshes overlap from the working block.
// The valid output samples are circ[len(h)-1:].
func saveBlock[T core.Sample](circ, work, overlap, x, h []T, b Block) {
	copy(work, overlap)
	loadBlock(work[len(overlap):], x, b)

	circularTo(circ, work, h)

	copy(overlap, work[len(work)-len(overlap):])
}

// OverlapSaveFilter filters x with h using overlap-save with the given block
// length. The result equals Linear(x, h) and has length len(x)+len(h)-1.
//
// blockLength must be greater than len(h).
func OverlapSaveFilter[T core.Sample](x, h []T, blockLength int) ([]T, error) {
	if err := validate(x, h); err != nil {
		return nil, err
	}
	if blockLength <= len(h) {
		return nil, fmt.Errorf("%w: overlap-save needs more than %d samples per block, got %d",
			ErrInvalidBlockLength, len(h), blockLength)
	}

	os, err := NewOverlapSave(h, blockLength)
	if err != nil {
		return nil, err
	}
	return os.Process(x)
}
