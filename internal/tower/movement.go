package tower

import "math"

// SpeedFunc returns the active block speed in units per second for a tower
// of stackLen blocks.
type SpeedFunc func(stackLen int) float64

// ConstantSpeed returns a SpeedFunc that ignores the tower height.
func ConstantSpeed(v float64) SpeedFunc {
	return func(int) float64 { return v }
}

// Mover drives the oscillation of the active block.
type Mover struct {
	Speed  SpeedFunc
	Travel float64 // Offset from the target that triggers a reversal
}

// Advance moves active along its axis and reverses it once it is farther
// than Travel from target and still heading away. Overshoot is bounded by
// one tick of movement.
func (m *Mover) Advance(active, target *Block, stackLen int, dt float64) {
	if active == nil || target == nil || !active.Moving() {
		return
	}
	a := int(active.ActiveAxis())
	dir := active.Direction[a]

	active.Position[a] += m.Speed(stackLen) * dir * dt

	offset := active.Position[a] - target.Position[a]
	if math.Abs(offset) > m.Travel && offset*dir > 0 {
		active.Direction[a] = -dir
	}
}
