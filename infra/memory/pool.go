package memory

import "sync"

// Pool is a typed sync.Pool. Values are passed through reset before they
// are handed back to callers.
type Pool[T any] struct {
	p     *sync.Pool
	reset func(*T)
}

func NewPool[T any](ctor func() *T, reset func(*T)) *Pool[T] {
	return &Pool[T]{
		p: &sync.Pool{
			New: func() any { return ctor() },
		},
		reset: reset,
	}
}

func (p *Pool[T]) Get() *T {
	v := p.p.Get().(*T)
	if p.reset != nil {
		p.reset(v)
	}
	return v
}

func (p *Pool[T]) Put(v *T) {
	p.p.Put(v)
}
