package meshbuild

import "sync"

// Pool recycles builders so concurrent producers can each take one without
// reallocating vertex and triangle storage for every mesh.
type Pool struct {
	capacity int
	pool     sync.Pool
}

// NewPool returns a pool whose builders hold at most capacity vertices.
func NewPool(capacity int) *Pool {
	p := &Pool{capacity: capacity}
	p.pool.New = func() any {
		return NewWithCapacity(p.capacity)
	}
	return p
}

// Get returns an empty builder owned by the caller until Put.
func (p *Pool) Get() *Builder {
	mb := p.pool.Get().(*Builder)
	mb.Reset()
	return mb
}

// Put resets mb and returns it to the pool. MeshData produced by mb stays valid.
func (p *Pool) Put(mb *Builder) {
	if mb == nil {
		return
	}
	mb.Reset()
	p.pool.Put(mb)
}
