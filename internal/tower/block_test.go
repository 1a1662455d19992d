package tower

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlock(pos, scale, dir mgl64.Vec3) *Block {
	return &Block{Position: pos, Scale: scale, Direction: dir}
}

func baseBlock() *Block {
	return newBlock(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 2, 10}, mgl64.Vec3{})
}

func TestCutPerfectAligned(t *testing.T) {
	target := baseBlock()
	b := newBlock(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{10, 2, 10}, mgl64.Vec3{1, 0, 0})

	res := b.Cut(target, 0.3)

	assert.Equal(t, OutcomePerfect, res.Outcome)
	assert.Equal(t, AxisX, res.Axis)
	assert.Equal(t, 10.0, b.Scale[0])
	assert.Equal(t, 0.0, b.Position[0])
	assert.False(t, b.Moving())
}

func TestCutPerfectWithinTolerance(t *testing.T) {
	target := baseBlock()
	b := newBlock(mgl64.Vec3{0, 2, 0.25}, mgl64.Vec3{10, 2, 10}, mgl64.Vec3{0, 0, -1})

	res := b.Cut(target, 0.3)

	require.Equal(t, OutcomePerfect, res.Outcome)
	assert.Equal(t, AxisZ, res.Axis)
	assert.Equal(t, 0.0, b.Position[2], "perfect snaps to the target center")
	assert.Equal(t, 10.0, b.Scale[2])
}

func TestCutToleranceBoundaryIsInclusive(t *testing.T) {
	target := baseBlock()
	b := newBlock(mgl64.Vec3{0.5, 2, 0}, mgl64.Vec3{10, 2, 10}, mgl64.Vec3{1, 0, 0})

	res := b.Cut(target, 0.5)

	assert.Equal(t, OutcomePerfect, res.Outcome)
}

func TestCutZeroToleranceNeedsExactMatch(t *testing.T) {
	target := baseBlock()
	b := newBlock(mgl64.Vec3{0.01, 2, 0}, mgl64.Vec3{10, 2, 10}, mgl64.Vec3{1, 0, 0})

	res := b.Cut(target, 0)

	assert.Equal(t, OutcomeChopped, res.Outcome)
}

func TestCutChopped(t *testing.T) {
	tests := []struct {
		name       string
		pos        float64
		keptCenter float64
		offcutPos  float64
	}{
		{"positive side", 6, 3, 8},
		{"negative side", -6, -3, -8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := baseBlock()
			b := newBlock(mgl64.Vec3{tt.pos, 2, 1.5}, mgl64.Vec3{10, 2, 7}, mgl64.Vec3{1, 0, 0})

			res := b.Cut(target, 0.3)

			require.Equal(t, OutcomeChopped, res.Outcome)
			assert.Equal(t, 4.0, res.Overlap)
			assert.Equal(t, 4.0, b.Scale[0])
			assert.Equal(t, tt.keptCenter, b.Position[0])
			assert.Equal(t, 6.0, res.OffcutScale[0])
			assert.Equal(t, tt.offcutPos, res.OffcutPosition[0])

			// Non-active axis and height untouched
			assert.Equal(t, 1.5, b.Position[2])
			assert.Equal(t, 7.0, b.Scale[2])
			assert.Equal(t, 2.0, b.Position[1])
			assert.Equal(t, 7.0, res.OffcutScale[2])
			assert.False(t, b.Moving())
		})
	}
}

func TestCutMissed(t *testing.T) {
	tests := []struct {
		name string
		pos  float64
	}{
		{"beyond", 11},
		{"exact edge", 10},
		{"far negative", -25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := baseBlock()
			b := newBlock(mgl64.Vec3{tt.pos, 2, 0}, mgl64.Vec3{10, 2, 10}, mgl64.Vec3{-1, 0, 0})
			before := *b

			res := b.Cut(target, 0.3)

			assert.Equal(t, OutcomeMissed, res.Outcome)
			assert.Equal(t, before.Position, b.Position)
			assert.Equal(t, before.Scale, b.Scale)
			assert.Equal(t, before.Direction, b.Direction, "missed block keeps moving")
		})
	}
}

func TestCutProperties(t *testing.T) {
	target := baseBlock()
	for p := -12.0; p <= 12.0; p += 0.25 {
		b := newBlock(mgl64.Vec3{p, 2, 0}, mgl64.Vec3{10, 2, 10}, mgl64.Vec3{1, 0, 0})
		overlap := 10 - abs(p)

		res := b.Cut(target, 0.3)

		switch {
		case overlap <= 0:
			assert.Equal(t, OutcomeMissed, res.Outcome, "p=%v", p)
		case overlap >= 10-0.3:
			assert.Equal(t, OutcomePerfect, res.Outcome, "p=%v", p)
			assert.Equal(t, 10.0, b.Scale[0])
		default:
			assert.Equal(t, OutcomeChopped, res.Outcome, "p=%v", p)
			assert.InDelta(t, overlap, b.Scale[0], 1e-9)
			assert.InDelta(t, p/2, b.Position[0], 1e-9)
			assert.InDelta(t, 10.0, b.Scale[0]+res.OffcutScale[0], 1e-9)
		}
		assert.Equal(t, 10.0, b.Scale[2], "p=%v", p)
		assert.Equal(t, 0.0, b.Position[2], "p=%v", p)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestBlockColor(t *testing.T) {
	// Sinusoidal channels stay within [145, 255]
	for depth := 0; depth < 200; depth++ {
		c := BlockColor(depth, 37)
		for _, ch := range []uint32{c >> 16 & 0xFF, c >> 8 & 0xFF, c & 0xFF} {
			assert.GreaterOrEqual(t, ch, uint32(145))
			assert.LessOrEqual(t, ch, uint32(255))
		}
	}
	assert.Equal(t, BlockColor(3, 10), BlockColor(3, 10))
	assert.NotEqual(t, BlockColor(3, 10), BlockColor(4, 10))
	assert.Equal(t, BlockColor(5, 0), BlockColor(0, 5))
}
