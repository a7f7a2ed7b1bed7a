package buffer

import (
	"sync"

	"github.com/cwbudde/algo-blockconv/dsp/core"
)

// Pool provides sync.Pool-based Buffer reuse to reduce GC pressure
// in repeated block processing. A Pool is safe for concurrent use.
type Pool[T core.Sample] struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool[T core.Sample]() *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return &Buffer[T]{}
			},
		},
	}
}

// Get returns a zeroed Buffer with the requested length.
// Callers must return it via Put when done.
func (p *Pool[T]) Get(length int) *Buffer[T] {
	b := p.pool.Get().(*Buffer[T])
	b.Resize(length)
	b.Zero()
	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool[T]) Put(b *Buffer[T]) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
