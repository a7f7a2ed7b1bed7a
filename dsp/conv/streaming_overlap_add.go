package conv

import "github.com/cwbudde/algo-blockconv/dsp/core"

// StreamingOverlapAdd implements streaming block convolution using overlap-add.
// Unlike OverlapAdd which processes entire signals, this keeps the M-1 sample
// tail of the previous block's convolution and adds it to the next block.
type StreamingOverlapAdd[T core.Sample] struct {
	kernel      []T
	blockLength int

	result []T // blockLength + kernelLen - 1
	tail   []T // kernelLen - 1
	temp   []T // kernelLen
}

// NewStreamingOverlapAdd creates a streaming overlap-add convolver.
// blockLength is the fixed size of input and output blocks and must be positive.
func NewStreamingOverlapAdd[T core.Sample](kernel []T, blockLength int) (*StreamingOverlapAdd[T], error) {
	k, err := newStreamingConfig(kernel, blockLength)
	if err != nil {
		return nil, err
	}

	return &StreamingOverlapAdd[T]{
		kernel:      k,
		blockLength: blockLength,
		result:      make([]T, blockLength+len(k)-1),
		tail:        make([]T, len(k)-1),
		temp:        make([]T, len(k)),
	}, nil
}

// ProcessBlock convolves a single block and returns the output block.
func (s *StreamingOverlapAdd[T]) ProcessBlock(input []T) ([]T, error) {
	output := make([]T, s.blockLength)
	if err := s.ProcessBlockTo(output, input); err != nil {
		return nil, err
	}
	return output, nil
}

// ProcessBlockTo convolves an input block into a pre-allocated output.
func (s *StreamingOverlapAdd[T]) ProcessBlockTo(output, input []T) error {
	if err := checkBlock(s.blockLength, len(input), len(output)); err != nil {
		return err
	}

	linearTo(s.result, input, s.kernel, s.temp)
	for i, v := range s.tail {
		s.result[i] += v
	}

	copy(output, s.result[:s.blockLength])
	copy(s.tail, s.result[s.blockLength:])
	return nil
}

// Reset clears the tail carried over from previous blocks.
func (s *StreamingOverlapAdd[T]) Reset() {
	core.Zero(s.tail)
}

// BlockLength returns the block length.
func (s *StreamingOverlapAdd[T]) BlockLength() int {
	return s.blockLength
}

// KernelLen returns the kernel length.
func (s *StreamingOverlapAdd[T]) KernelLen() int {
	return len(s.kernel)
}
