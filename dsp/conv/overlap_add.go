package conv

import (
	"fmt"

	"github.com/cwbudde/algo-blockconv/dsp/buffer"
	"github.com/cwbudde/algo-blockconv/dsp/core"
)

// OverlapAdd implements block convolution using the overlap-add method.
//
// The algorithm:
//  1. Divide the input signal into disjoint blocks of blockLength samples,
//     zero-padding the last one
//  2. Linearly convolve each block with the kernel (blockLength+M-1 samples)
//  3. Add each result into the output at the block's start offset
//
// Consecutive results overlap by M-1 samples. The overlap is resolved by
// summation, never by overwriting.
//
// An OverlapAdd holds only the kernel and configuration. Each Process call
// takes its own scratch from a pool, so one instance may be used from several
// goroutines.
type OverlapAdd[T core.Sample] struct {
	kernel      []T
	blockLength int

	scratch *buffer.Pool[T]
}

// NewOverlapAdd creates an overlap-add convolver for kernel. The kernel is
// copied. blockLength must be at least len(kernel); if it is 0 or negative a
// default of max(4*len(kernel), 64) is chosen.
func NewOverlapAdd[T core.Sample](kernel []T, blockLength int) (*OverlapAdd[T], error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockLength <= 0 {
		blockLength = defaultBlockLength(len(kernel))
	}
	if blockLength < len(kernel) {
		return nil, fmt.Errorf("%w: overlap-add needs at least %d samples per block, got %d",
			ErrInvalidBlockLength, len(kernel), blockLength)
	}

	return &OverlapAdd[T]{
		kernel:      core.Clone(kernel),
		blockLength: blockLength,
		scratch:     buffer.NewPool[T](),
	}, nil
}

// BlockLength returns the input block length.
func (oa *OverlapAdd[T]) BlockLength() int {
	return oa.blockLength
}

// KernelLen returns the kernel length.
func (oa *OverlapAdd[T]) KernelLen() int {
	return len(oa.kernel)
}

// Process convolves the input signal with the kernel.
// Returns the full linear convolution result of length len(input)+KernelLen()-1.
func (oa *OverlapAdd[T]) Process(input []T) ([]T, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	output := make([]T, len(input)+len(oa.kernel)-1)
	oa.process(output, input)
	return output, nil
}

// ProcessTo convolves input and writes to pre-allocated output.
// Output must have length len(input) + KernelLen() - 1.
func (oa *OverlapAdd[T]) ProcessTo(output, input []T) error {
	if len(input) == 0 {
		return ErrEmptyInput
	}
	if want := len(input) + len(oa.kernel) - 1; len(output) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, want, len(output))
	}

	core.Zero(output)
	oa.process(output, input)
	return nil
}

// process expects a zeroed output of the full convolution length.
func (oa *OverlapAdd[T]) process(output, input []T) {
	blockBuf := oa.scratch.Get(oa.blockLength)
	resultBuf := oa.scratch.Get(oa.blockLength + len(oa.kernel) - 1)
	tempBuf := oa.scratch.Get(len(oa.kernel))
	defer oa.scratch.Put(blockBuf)
	defer oa.scratch.Put(resultBuf)
	defer oa.scratch.Put(tempBuf)

	block, result, temp := blockBuf.Samples(), resultBuf.Samples(), tempBuf.Samples()

	for _, b := range Partition(len(input), oa.blockLength, len(input)) {
		convolveBlock(result, block, temp, input, oa.kernel, b)

		// The padded tail of the last block convolves to zeros past the output.
		dst := output[b.Start:]
		n := min(len(result), len(dst))
		for i := range n {
			dst[i] += result[i]
		}
	}
}

// convolveBlock linearly convolves the block described by b with h.
// block is scratch of the block length; result receives blockLength+len(h)-1
// samples; temp holds len(h) samples of kernel scratch.
func convolveBlock[T core.Sample](result, block, temp, x, h []T, b Block) {
	loadBlock(block, x, b)
	linearTo(result, block, h, temp)
}

// OverlapAddFilter filters x with h using overlap-add with the given block
// length. The result equals Linear(x, h) and has length len(x)+len(h)-1.
//
// blockLength must be at least len(h).
func OverlapAddFilter[T core.Sample](x, h []T, blockLength int) ([]T, error) {
	if err := validate(x, h); err != nil {
		return nil, err
	}
	if blockLength < len(h) {
		return nil, fmt.Errorf("%w: overlap-add needs at least %d samples per block, got %d",
			ErrInvalidBlockLength, len(h), blockLength)
	}

	oa, err := NewOverlapAdd(h, blockLength)
	if err != nil {
		return nil, err
	}
	return oa.Process(x)
}

func defaultBlockLength(kernelLen int) int {
	return max(4*kernelLen, 64)
}
