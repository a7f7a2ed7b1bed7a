package conv

import "github.com/cwbudde/algo-blockconv/dsp/core"

// Block describes one fixed-length block of a partitioned signal.
//
// The block holds Length genuine samples starting at Start, followed by
// Padding zeros, so Length+Padding always equals the partition's block length.
type Block struct {
	Index   int // position within the partition
	Start   int // offset of the block in the signal and in the output
	Length  int // genuine signal samples in the block
	Padding int // zeros appended to reach the block length
}

// End returns the signal offset one past the block's last genuine sample.
func (b Block) End() int {
	return b.Start + b.Length
}

// Partition splits a signal of n genuine samples into consecutive blocks of
// blockLength samples, producing enough blocks to cover total samples.
// Blocks past the end of the signal are all padding.
//
// Returns nil if blockLength <= 0 or total <= 0.
func Partition(n, blockLength, total int) []Block {
	if blockLength <= 0 || total <= 0 {
		return nil
	}

	count := (total + blockLength - 1) / blockLength
	blocks := make([]Block, count)
	for i := range blocks {
		start := i * blockLength
		length := min(max(n-start, 0), blockLength)
		blocks[i] = Block{
			Index:   i,
			Start:   start,
			Length:  length,
			Padding: blockLength - length,
		}
	}
	return blocks
}

// loadBlock copies b's genuine samples from x into dst and zeroes the rest
// of dst.
func loadBlock[T core.Sample](dst, x []T, b Block) {
	n := 0
	if b.Length > 0 {
		n = copy(dst, x[b.Start:b.End()])
	}
	core.Zero(dst[n:])
}
