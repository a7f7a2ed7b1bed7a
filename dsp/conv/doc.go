// Package conv provides time-domain linear and circular convolution and the
// block-partitioned overlap-add and overlap-save filters built on them.
//
// Every routine is generic over [core.Sample], so the same code convolves
// integer and floating-point signals. Integer arithmetic wraps on overflow.
//
// # Usage
//
// For one-shot convolution, use the functions:
//
//	y, err := conv.Linear(x, h)                   // len(x)+len(h)-1 samples
//	y, err := conv.Circular(x, h)                 // max(len(x), len(h)) samples
//	y, err := conv.OverlapAddFilter(x, h, 256)    // equals conv.Linear(x, h)
//	y, err := conv.OverlapSaveFilter(x, h, 256)   // equals conv.Linear(x, h)
//
// For repeated filtering with the same kernel, create a reusable convolver:
//
//	oa, err := conv.NewOverlapAdd(h, 256)
//	y, err := oa.Process(x)
//
// For block-by-block streams, use [StreamingOverlapAdd] or
// [StreamingOverlapSave]. Both carry M-1 samples of state between calls.
//
// # Block partitioning
//
// The block filters walk a list of [Block] descriptors produced by
// [Partition]. A descriptor names the block's offset, how many genuine signal
// samples it holds, and how many zeros pad it to the block length. The
// per-block transform is a pure function of the descriptor, the signal and
// the kernel.
//
// # Block length constraints
//
//   - Overlap-add: blockLength >= len(h)
//   - Overlap-save: blockLength > len(h)
//
// Violations return [ErrInvalidBlockLength]. Empty signals and kernels return
// [ErrEmptyInput] and [ErrEmptyKernel]. All three match
// core.ErrInvalidArgument under errors.Is.
//
// Overlap-save zero-pads the signal to cover the full output, so signal
// lengths that are not a multiple of the block length are accepted.
package conv
