package tower

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Stack is the ordered tower of placed blocks plus the active block.
// Index 0 is the immovable base.
type Stack struct {
	blocks []*Block
	active *Block

	pool        *Pool
	rng         *rand.Rand
	travel      float64
	colorOffset int
}

// NewStack creates a stack holding only the base block.
func NewStack(pool *Pool, rng *rand.Rand, base *Block, travel float64) *Stack {
	return &Stack{
		blocks: []*Block{base},
		pool:   pool,
		rng:    rng,
		travel: travel,
	}
}

// Base returns the bottom block.
func (s *Stack) Base() *Block { return s.blocks[0] }

// Top returns the highest placed block.
func (s *Stack) Top() *Block { return s.blocks[len(s.blocks)-1] }

// Active returns the moving block, or nil if none has been spawned.
func (s *Stack) Active() *Block { return s.active }

// Len returns the number of placed blocks including the base.
func (s *Stack) Len() int { return len(s.blocks) }

// Score returns the number of blocks placed on top of the base.
func (s *Stack) Score() int { return len(s.blocks) - 1 }

// Blocks returns the placed blocks, bottom first. The slice must not be modified.
func (s *Stack) Blocks() []*Block { return s.blocks }

// ColorOffset returns the per-game colour offset.
func (s *Stack) ColorOffset() int { return s.colorOffset }

// NewGame picks a fresh colour offset in [0, 100].
func (s *Stack) NewGame() {
	s.colorOffset = s.rng.Intn(101)
}

// Spawn acquires the next active block and positions it one block height
// above the top, mid-oscillation. Blocks travel along X when the resulting
// tower length is even and along Z when it is odd.
func (s *Stack) Spawn() *Block {
	top := s.Top()
	b := s.pool.Acquire()

	length := len(s.blocks) + 1
	b.Scale = top.Scale
	b.Position = mgl64.Vec3{top.Position[0], float64(len(s.blocks)) * top.Scale[1], top.Position[2]}
	b.Color = BlockColor(len(s.blocks), s.colorOffset)

	sign := 1.0
	if s.rng.Intn(2) == 0 {
		sign = -1.0
	}
	if length%2 == 0 {
		b.Direction = mgl64.Vec3{sign, 0, 0}
	} else {
		b.Direction = mgl64.Vec3{0, 0, sign}
	}
	b.MoveScalar(-sign * s.travel)

	s.active = b
	return b
}

// AttemptPlacement cuts the active block against the top. Perfect and
// chopped blocks are pushed onto the tower. A missed block is detached and
// returned in the result; the caller owns its release.
func (s *Stack) AttemptPlacement(tolerance float64) PlacementResult {
	b := s.active
	if b == nil {
		return PlacementResult{Outcome: OutcomeMissed}
	}
	res := b.Cut(s.Top(), tolerance)
	s.active = nil
	if res.Outcome != OutcomeMissed {
		s.blocks = append(s.blocks, b)
	}
	return res
}

// Truncate drops everything above the base and returns the removed blocks,
// the active block included.
func (s *Stack) Truncate() []*Block {
	removed := make([]*Block, 0, len(s.blocks))
	for i := len(s.blocks) - 1; i > 0; i-- {
		removed = append(removed, s.blocks[i])
		s.blocks[i] = nil
	}
	if s.active != nil {
		removed = append(removed, s.active)
		s.active = nil
	}
	s.blocks = s.blocks[:1]
	return removed
}

// BlockColor returns the packed RGB colour for a block at the given depth.
func BlockColor(depth, offset int) uint32 {
	o := float64(depth + offset)
	r := uint32(math.Sin(0.3*o)*55 + 200)
	g := uint32(math.Sin(0.3*o+2)*55 + 200)
	b := uint32(math.Sin(0.3*o+4)*55 + 200)
	return r<<16 | g<<8 | b
}
