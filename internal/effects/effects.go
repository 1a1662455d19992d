// Package effects implements decorative particles for placements.
package effects

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/taubyte/example-games-tower-blocks/internal/core"
)

// Particle tuning, in world units and seconds.
const (
	ExplosionCount    = 8
	ExplosionMinSpeed = 2.0
	ExplosionMaxSpeed = 5.0
	ExplosionMinLift  = 1.0
	ExplosionMaxLift  = 3.0
	SparkleSpread     = 2.0
	SparkleMinLift    = 2.0
	SparkleMaxLift    = 5.0
	Gravity           = 9.8
	Life              = 1.0
)

// Projector maps a world point to screen coordinates.
type Projector func(p mgl64.Vec3) (x, y float64)

type particle struct {
	pos   mgl64.Vec3
	vel   mgl64.Vec3
	life  float64
	color uint32
}

// System owns every live particle. It is not safe for concurrent use.
type System struct {
	particles []particle
	rng       *rand.Rand
}

// New creates a particle system seeded for reproducible bursts.
func New(seed int64) *System {
	return &System{rng: rand.New(rand.NewSource(seed))}
}

// SpawnExplosion emits a radial burst of particles at pos.
func (s *System) SpawnExplosion(pos mgl64.Vec3, color uint32) {
	for i := 0; i < ExplosionCount; i++ {
		angle := 2 * math.Pi * float64(i) / ExplosionCount
		speed := ExplosionMinSpeed + s.rng.Float64()*(ExplosionMaxSpeed-ExplosionMinSpeed)
		lift := ExplosionMinLift + s.rng.Float64()*(ExplosionMaxLift-ExplosionMinLift)
		s.particles = append(s.particles, particle{
			pos:   pos,
			vel:   mgl64.Vec3{math.Cos(angle) * speed, lift, math.Sin(angle) * speed},
			life:  Life,
			color: color,
		})
	}
}

// SpawnSparkle emits a single rising particle at pos.
func (s *System) SpawnSparkle(pos mgl64.Vec3, color uint32) {
	s.particles = append(s.particles, particle{
		pos: pos,
		vel: mgl64.Vec3{
			(s.rng.Float64() - 0.5) * SparkleSpread,
			SparkleMinLift + s.rng.Float64()*(SparkleMaxLift-SparkleMinLift),
			(s.rng.Float64() - 0.5) * SparkleSpread,
		},
		life:  Life,
		color: color,
	})
}

// Update integrates gravity and drops expired particles.
func (s *System) Update(dt float64) {
	alive := s.particles[:0]
	for _, p := range s.particles {
		p.vel[1] -= Gravity * dt
		p.pos = p.pos.Add(p.vel.Mul(dt))
		p.life -= dt
		if p.life > 0 {
			alive = append(alive, p)
		}
	}
	s.particles = alive
}

// Len returns the number of live particles.
func (s *System) Len() int { return len(s.particles) }

// Clear removes every particle.
func (s *System) Clear() { s.particles = s.particles[:0] }

// Draw paints particles over screen, fading them as they age.
func (s *System) Draw(screen *core.Screen, project Projector) {
	for _, p := range s.particles {
		x, y := project(p.pos)
		fade := p.life / Life
		r := '·'
		switch {
		case fade > 0.66:
			r = '*'
		case fade > 0.33:
			r = '+'
		}
		screen.SetColored(int(math.Floor(x)), int(math.Floor(y)), r, core.RGB(p.color).Shade(0.4+0.6*fade))
	}
}
