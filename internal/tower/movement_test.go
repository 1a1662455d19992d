package tower

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestMoverAdvance(t *testing.T) {
	m := &Mover{Speed: ConstantSpeed(10), Travel: 12}
	target := baseBlock()
	b := newBlock(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{10, 2, 10}, mgl64.Vec3{0, 0, 1})

	m.Advance(b, target, 2, 0.5)

	assert.Equal(t, 5.0, b.Position[2])
	assert.Equal(t, 0.0, b.Position[0])
	assert.Equal(t, 1.0, b.Direction[2])
}

func TestMoverReversesAwayFromTarget(t *testing.T) {
	m := &Mover{Speed: ConstantSpeed(10), Travel: 12}
	target := baseBlock()
	b := newBlock(mgl64.Vec3{11.5, 2, 0}, mgl64.Vec3{10, 2, 10}, mgl64.Vec3{1, 0, 0})

	m.Advance(b, target, 2, 0.1)
	assert.Equal(t, 12.5, b.Position[0])
	assert.Equal(t, -1.0, b.Direction[0])

	// Already heading back: no second flip while still beyond the threshold
	m.Advance(b, target, 2, 0.01)
	assert.Equal(t, -1.0, b.Direction[0])
}

func TestMoverIgnoresStationary(t *testing.T) {
	m := &Mover{Speed: ConstantSpeed(10), Travel: 12}
	b := baseBlock()
	m.Advance(b, baseBlock(), 2, 1)
	assert.Equal(t, mgl64.Vec3{}, b.Position)
}

func TestMoverBoundedOvershoot(t *testing.T) {
	const (
		speed  = 21.0
		travel = 12.0
		dt     = 1.0 / 60
	)
	m := &Mover{Speed: ConstantSpeed(speed), Travel: travel}
	target := baseBlock()
	b := newBlock(mgl64.Vec3{-travel, 2, 0}, mgl64.Vec3{10, 2, 10}, mgl64.Vec3{1, 0, 0})

	flips := 0
	last := b.Direction[0]
	for i := 0; i < 6000; i++ {
		m.Advance(b, target, 40, dt)
		assert.LessOrEqual(t, math.Abs(b.Position[0]), travel+speed*dt+1e-9)
		if b.Direction[0] != last {
			flips++
			last = b.Direction[0]
		}
	}
	assert.Greater(t, flips, 10, "block should oscillate")
}
