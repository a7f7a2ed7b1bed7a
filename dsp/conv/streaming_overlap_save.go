package conv

import "github.com/cwbudde/algo-blockconv/dsp/core"

// StreamingOverlapSave implements streaming block convolution using overlap-save.
// Unlike OverlapSave which processes entire signals, the M-1 sample overlap
// buffer persists across ProcessBlock calls.
//
// Any positive block length is accepted: the working block is always
// blockLength+M-1 samples, so its last blockLength circular outputs are free
// of wrap-around.
type StreamingOverlapSave[T core.Sample] struct {
	kernel      []T
	blockLength int

	work    []T // overlap + new input, blockLength + kernelLen - 1
	circ    []T // circular convolution of work
	overlap []T // last kernelLen - 1 samples of the previous working block
	block   Block
}

// NewStreamingOverlapSave creates a streaming overlap-save convolver.
// blockLength is the fixed size of input and output blocks and must be positive.
func NewStreamingOverlapSave[T core.Sample](kernel []T, blockLength int) (*StreamingOverlapSave[T], error) {
	k, err := newStreamingConfig(kernel, blockLength)
	if err != nil {
		return nil, err
	}

	return &StreamingOverlapSave[T]{
		kernel:      k,
		blockLength: blockLength,
		work:        make([]T, blockLength+len(k)-1),
		circ:        make([]T, blockLength+len(k)-1),
		overlap:     make([]T, len(k)-1),
		block:       Block{Length: blockLength},
	}, nil
}

// ProcessBlock convolves a single block and returns the output block.
func (s *StreamingOverlapSave[T]) ProcessBlock(input []T) ([]T, error) {
	output := make([]T, s.blockLength)
	if err := s.ProcessBlockTo(output, input); err != nil {
		return nil, err
	}
	return output, nil
}

// ProcessBlockTo convolves an input block into a pre-allocated output.
func (s *StreamingOverlapSave[T]) ProcessBlockTo(output, input []T) error {
	if err := checkBlock(s.blockLength, len(input), len(output)); err != nil {
		return err
	}

	saveBlock(s.circ, s.work, s.overlap, input, s.kernel, s.block)
	copy(output, s.circ[len(s.overlap):])
	return nil
}

// Reset clears the overlap buffer.
func (s *StreamingOverlapSave[T]) Reset() {
	core.Zero(s.overlap)
}

// BlockLength returns the block length.
func (s *StreamingOverlapSave[T]) BlockLength() int {
	return s.blockLength
}

// KernelLen returns the kernel length.
func (s *StreamingOverlapSave[T]) KernelLen() int {
	return len(s.kernel)
}
