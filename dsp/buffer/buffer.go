package buffer

import "github.com/cwbudde/algo-blockconv/dsp/core"

// Buffer wraps a sample slice with reuse-friendly semantics.
// Convolution functions accept raw slices; use Samples() to bridge.
type Buffer[T core.Sample] struct {
	samples []T
}

// New returns a zero-filled Buffer of the given length.
func New[T core.Sample](length int) *Buffer[T] {
	return &Buffer[T]{samples: make([]T, max(length, 0))}
}

// Samples returns the underlying slice.
func (b *Buffer[T]) Samples() []T {
	return b.samples
}

// Resize sets the length to n, reusing existing capacity when possible.
// The contents after Resize are unspecified; call Zero if needed.
func (b *Buffer[T]) Resize(n int) {
	b.samples = core.EnsureLen(b.samples, max(n, 0))
}

// Zero sets all samples to 0.
func (b *Buffer[T]) Zero() {
	core.Zero(b.samples)
}
