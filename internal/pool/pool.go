// Package pool wraps sync.Pool with type safety via generics.
package pool

import "sync"

// Pool is a typed free list. The zero value is not usable; construct with
// New.
type Pool[T any] struct {
	internal sync.Pool
}

// New creates a Pool whose Get falls back to newFn when the pool is empty.
func New[T any](newFn func() T) *Pool[T] {
	return &Pool[T]{
		internal: sync.Pool{
			New: func() any {
				return newFn()
			},
		},
	}
}

// Get retrieves an item from the pool.
func (p *Pool[T]) Get() T {
	return p.internal.Get().(T)
}

// Put returns an item to the pool.
func (p *Pool[T]) Put(item T) {
	p.internal.Put(item)
}
