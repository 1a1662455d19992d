// Package scene draws the tower as shaded isometric boxes on a character grid.
package scene

import (
	"math"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/taubyte/example-games-tower-blocks/internal/core"
	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

// Face runes, brightest first.
const (
	runeTop   = '█'
	runeSide  = '▓'
	runeShade = '▒'
)

var (
	viewDir  = mgl64.Vec3{1, 1.2, 1}.Normalize()
	lightDir = mgl64.Vec3{1, 0, 0.4}.Normalize()
)

// unit cube faces: outward normal and the four corner signs.
var faces = [6]struct {
	normal  mgl64.Vec3
	corners [4]mgl64.Vec3
}{
	{mgl64.Vec3{0, 1, 0}, [4]mgl64.Vec3{{-1, 1, -1}, {1, 1, -1}, {1, 1, 1}, {-1, 1, 1}}},
	{mgl64.Vec3{0, -1, 0}, [4]mgl64.Vec3{{-1, -1, -1}, {-1, -1, 1}, {1, -1, 1}, {1, -1, -1}}},
	{mgl64.Vec3{1, 0, 0}, [4]mgl64.Vec3{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}},
	{mgl64.Vec3{-1, 0, 0}, [4]mgl64.Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{mgl64.Vec3{0, 0, 1}, [4]mgl64.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{mgl64.Vec3{0, 0, -1}, [4]mgl64.Vec3{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}}},
}

// camera animates the world Y kept at the anchor row.
type camera struct {
	y, from, to float64
	elapsed     time.Duration
	duration    time.Duration
}

func (c *camera) moveTo(y float64, d time.Duration) {
	if d <= 0 {
		c.y, c.from, c.to = y, y, y
		c.elapsed, c.duration = 0, 0
		return
	}
	c.from, c.to = c.y, y
	c.elapsed, c.duration = 0, d
}

func (c *camera) step(dt time.Duration) {
	if c.duration <= 0 {
		return
	}
	c.elapsed += dt
	if c.elapsed >= c.duration {
		c.y = c.to
		c.duration = 0
		return
	}
	t := tower.EaseOutQuad(float64(c.elapsed) / float64(c.duration))
	c.y = core.Lerp(c.from, c.to, t)
}

// Scene is a terminal implementation of tower.Scene.
type Scene struct {
	screen *core.Screen
	blocks map[uint64]tower.Handle
	cam    camera

	unit   float64 // Columns per world unit along the iso X axis
	anchor float64 // Row the camera target projects to
}

// New creates a scene drawing into a width x height grid.
func New(width, height int) *Scene {
	s := &Scene{
		screen: core.NewScreen(width, height),
		blocks: make(map[uint64]tower.Handle),
	}
	s.layout()
	return s
}

func (s *Scene) layout() {
	w := float64(s.screen.Width())
	h := float64(s.screen.Height())
	s.unit = math.Max(0.25, math.Min(w/60, h/16))
	s.anchor = h * 0.45
}

// Add starts drawing a block.
func (s *Scene) Add(h tower.Handle) { s.blocks[h.ID] = h }

// Update replaces the snapshot of a block.
func (s *Scene) Update(h tower.Handle) { s.blocks[h.ID] = h }

// Remove stops drawing a block.
func (s *Scene) Remove(id uint64) { delete(s.blocks, id) }

// Len returns the number of drawn blocks.
func (s *Scene) Len() int { return len(s.blocks) }

// Resize changes the grid size and rescales the projection.
func (s *Scene) Resize(width, height int) {
	if width == s.screen.Width() && height == s.screen.Height() {
		return
	}
	s.screen.Resize(width, height)
	s.layout()
}

// SetCameraTarget glides the camera to world height y over d.
func (s *Scene) SetCameraTarget(y float64, d time.Duration) { s.cam.moveTo(y, d) }

// ResetCamera glides the camera back to the ground over d.
func (s *Scene) ResetCamera(d time.Duration) { s.cam.moveTo(0, d) }

// CameraY returns the current camera height.
func (s *Scene) CameraY() float64 { return s.cam.y }

// Step advances camera motion.
func (s *Scene) Step(dt time.Duration) { s.cam.step(dt) }

// Screen returns the rendered grid.
func (s *Scene) Screen() *core.Screen { return s.screen }

// Project maps a world point to fractional screen coordinates.
func (s *Scene) Project(p mgl64.Vec3) (x, y float64) {
	kx := s.unit
	ky := s.unit / 4
	kh := s.unit / 2
	x = float64(s.screen.Width())/2 + (p[0]-p[2])*kx
	y = s.anchor + (p[0]+p[2])*ky - (p[1]-s.cam.y)*kh
	return x, y
}

// Render redraws every block, far and low blocks first.
func (s *Scene) Render() {
	s.screen.Clear()

	handles := make([]tower.Handle, 0, len(s.blocks))
	for _, h := range s.blocks {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool {
		a, b := handles[i], handles[j]
		if a.Position[1] != b.Position[1] {
			return a.Position[1] < b.Position[1]
		}
		if da, db := a.Position[0]+a.Position[2], b.Position[0]+b.Position[2]; da != db {
			return da < db
		}
		return a.ID < b.ID
	})

	for _, h := range handles {
		s.drawBox(h)
	}
}

func (s *Scene) drawBox(h tower.Handle) {
	rot := mgl64.Rotate3DY(h.Rotation[1]).
		Mul3(mgl64.Rotate3DX(h.Rotation[0])).
		Mul3(mgl64.Rotate3DZ(h.Rotation[2]))
	half := h.Scale.Mul(0.5)
	base := core.RGB(h.Color)

	for _, f := range faces {
		n := rot.Mul3x1(f.normal)
		if n.Dot(viewDir) <= 0 {
			continue
		}
		var poly [4][2]float64
		for i, c := range f.corners {
			local := mgl64.Vec3{c[0] * half[0], c[1] * half[1], c[2] * half[2]}
			world := h.Position.Add(rot.Mul3x1(local))
			poly[i][0], poly[i][1] = s.Project(world)
		}

		// Top faces keep the block colour, sides darken with the light angle.
		r, shade := runeTop, 1.0
		if n[1] <= 0.7 {
			light := math.Max(0, n.Dot(lightDir))
			shade = 0.5 + 0.35*light
			r = runeShade
			if light > 0.5 {
				r = runeSide
			}
		}
		s.fill(poly, r, base.Shade(shade))
	}
}

// fill paints every cell whose center lies inside the convex quad.
func (s *Scene) fill(poly [4][2]float64, r rune, c core.Color) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}

	x0 := core.Clamp(int(math.Floor(minX)), 0, s.screen.Width())
	x1 := core.Clamp(int(math.Ceil(maxX)), 0, s.screen.Width())
	y0 := core.Clamp(int(math.Floor(minY)), 0, s.screen.Height())
	y1 := core.Clamp(int(math.Ceil(maxY)), 0, s.screen.Height())

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if inside(poly, float64(x)+0.5, float64(y)+0.5) {
				s.screen.SetColored(x, y, r, c)
			}
		}
	}
}

// inside reports whether (px, py) lies in the convex polygon, either winding.
func inside(poly [4][2]float64, px, py float64) bool {
	var pos, neg bool
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		cross := (b[0]-a[0])*(py-a[1]) - (b[1]-a[1])*(px-a[0])
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return pos || neg
}
