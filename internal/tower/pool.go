package tower

import "github.com/go-gl/mathgl/mgl64"

// Pool recycles Blocks across placements and restarts.
// It is unbounded and not safe for concurrent use.
type Pool struct {
	factory func() *Block
	free    []*Block
	created int
	nextID  uint64
}

// NewPool creates a pool. A nil factory allocates zero Blocks.
func NewPool(factory func() *Block) *Pool {
	if factory == nil {
		factory = func() *Block { return &Block{} }
	}
	return &Pool{factory: factory}
}

// Acquire returns a recycled block if one is idle, otherwise a new one.
// Every acquired block gets a fresh ID and zeroed mutable fields.
func (p *Pool) Acquire() *Block {
	var b *Block
	if n := len(p.free); n > 0 {
		b = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		b = p.factory()
		p.created++
	}

	p.nextID++
	b.ID = p.nextID
	b.Position = mgl64.Vec3{}
	b.Scale = mgl64.Vec3{1, 1, 1}
	b.Direction = mgl64.Vec3{}
	b.Rotation = mgl64.Vec3{}
	b.Color = 0
	b.inPool = false
	return b
}

// Release returns a block to the pool. Releasing a block twice is ignored.
func (p *Pool) Release(b *Block) {
	if b == nil || b.inPool {
		return
	}
	b.inPool = true
	p.free = append(p.free, b)
}

// Created reports how many blocks the factory has constructed.
func (p *Pool) Created() int { return p.created }

// Idle reports how many blocks are waiting to be reused.
func (p *Pool) Idle() int { return len(p.free) }
