package scene

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taubyte/example-games-tower-blocks/internal/core"
	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

var _ tower.Scene = (*Scene)(nil)

func countFilled(s *core.Screen) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				n++
			}
		}
	}
	return n
}

func baseHandle() tower.Handle {
	return tower.Handle{
		ID:       1,
		Position: mgl64.Vec3{0, 0, 0},
		Scale:    mgl64.Vec3{10, 2, 10},
		Color:    0x333344,
	}
}

func TestRenderDrawsBlock(t *testing.T) {
	s := New(80, 24)
	s.Add(baseHandle())

	s.Render()

	scr := s.Screen()
	require.Greater(t, countFilled(scr), 20)

	cx, cy := s.Project(mgl64.Vec3{0, 1, 0})
	cell := scr.GetCell(int(cx), int(cy))
	assert.Equal(t, runeTop, cell.Rune, "center of the top face")
	assert.True(t, cell.Color.IsRGB())
}

func TestRenderEmptyAfterRemove(t *testing.T) {
	s := New(80, 24)
	s.Add(baseHandle())
	s.Remove(1)

	s.Render()

	assert.Equal(t, 0, countFilled(s.Screen()))
	assert.Equal(t, 0, s.Len())
}

func TestHigherBlockDrawnOnTop(t *testing.T) {
	s := New(80, 24)
	s.Add(baseHandle())
	top := tower.Handle{ID: 2, Position: mgl64.Vec3{0, 2, 0}, Scale: mgl64.Vec3{10, 2, 10}, Color: 0xFF0000}
	s.Add(top)

	s.Render()

	cx, cy := s.Project(mgl64.Vec3{0, 3, 0})
	cell := s.Screen().GetCell(int(cx), int(cy))
	assert.Equal(t, core.RGB(0xFF0000), cell.Color, "top face of the upper block keeps full brightness")
}

func TestCameraGlide(t *testing.T) {
	s := New(80, 24)
	_, before := s.Project(mgl64.Vec3{0, 10, 0})

	s.SetCameraTarget(10, 300*time.Millisecond)
	s.Step(150 * time.Millisecond)
	mid := s.CameraY()
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 10.0)

	s.Step(200 * time.Millisecond)
	assert.Equal(t, 10.0, s.CameraY())

	_, after := s.Project(mgl64.Vec3{0, 10, 0})
	assert.Greater(t, after, before, "raising the camera moves the world down the screen")

	s.ResetCamera(0)
	assert.Equal(t, 0.0, s.CameraY())
}

func TestResize(t *testing.T) {
	s := New(80, 24)
	x, _ := s.Project(mgl64.Vec3{})
	assert.Equal(t, 40.0, x)

	s.Resize(120, 40)
	assert.Equal(t, 120, s.Screen().Width())
	x, _ = s.Project(mgl64.Vec3{})
	assert.Equal(t, 60.0, x)
}

func TestInside(t *testing.T) {
	square := [4][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	assert.True(t, inside(square, 2, 2))
	assert.False(t, inside(square, 5, 2))

	reversed := [4][2]float64{{0, 4}, {4, 4}, {4, 0}, {0, 0}}
	assert.True(t, inside(reversed, 1, 3))

	degenerate := [4][2]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}}
	assert.False(t, inside(degenerate, 1, 1))
}
