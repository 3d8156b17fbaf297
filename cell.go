package keywell

import "sync"

// onceCell is an at-most-once compute cell. Configuration is immutable
// for the life of a Generator, so cached products are never invalidated;
// concurrent callers all observe the first computation.
type onceCell[T any] struct {
	once sync.Once
	v    T
	err  error
}

func (c *onceCell[T]) get(compute func() (T, error)) (T, error) {
	c.once.Do(func() { c.v, c.err = compute() })
	return c.v, c.err
}
