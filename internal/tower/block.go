// Package tower implements the Tower Blocks simulation: block cutting,
// oscillating movement, the game state machine and block pooling.
//
// The package is pure. Rendering, audio, effects, persistence and the remote
// leaderboard are reached only through the collaborator interfaces in
// collaborators.go, so the whole game can be driven headless by calling
// Machine.Tick and Machine.Action.
package tower

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis identifies the horizontal axis a block travels along.
type Axis int

const (
	AxisX Axis = 0
	AxisZ Axis = 2
)

func (a Axis) String() string {
	if a == AxisZ {
		return "z"
	}
	return "x"
}

// Outcome is the result of cutting the active block against its target.
type Outcome int

const (
	OutcomeMissed Outcome = iota
	OutcomeChopped
	OutcomePerfect
)

func (o Outcome) String() string {
	switch o {
	case OutcomePerfect:
		return "perfect"
	case OutcomeChopped:
		return "chopped"
	default:
		return "missed"
	}
}

// Block is an axis-aligned box. Position is the center of the box.
type Block struct {
	ID        uint64
	Position  mgl64.Vec3
	Scale     mgl64.Vec3
	Direction mgl64.Vec3
	Rotation  mgl64.Vec3
	Color     uint32

	inPool bool
}

// PlacementResult describes what Cut did to the active block.
type PlacementResult struct {
	Outcome Outcome
	Axis    Axis
	Overlap float64

	// Offcut is the severed part of a chopped block.
	OffcutPosition mgl64.Vec3
	OffcutScale    mgl64.Vec3

	// Block is the active block the cut was applied to.
	Block *Block
}

// ActiveAxis returns the axis of travel: X if Direction.X is nonzero, else Z.
func (b *Block) ActiveAxis() Axis {
	if b.Direction[0] != 0 {
		return AxisX
	}
	return AxisZ
}

// Moving reports whether the block still has a direction of travel.
func (b *Block) Moving() bool {
	return b.Direction != (mgl64.Vec3{})
}

// Stop zeroes the direction.
func (b *Block) Stop() {
	b.Direction = mgl64.Vec3{}
}

// MoveScalar translates the block along its travel axis.
func (b *Block) MoveScalar(amount float64) {
	b.Position[b.ActiveAxis()] += amount
}

// Top returns the Y coordinate of the block's upper face.
func (b *Block) Top() float64 {
	return b.Position[1] + b.Scale[1]/2
}

// Handle returns the render snapshot of the block.
func (b *Block) Handle() Handle {
	return Handle{
		ID:       b.ID,
		Position: b.Position,
		Scale:    b.Scale,
		Rotation: b.Rotation,
		Color:    b.Color,
	}
}

// Cut trims b against target along b's travel axis.
//
// A non-positive overlap is a miss and leaves b untouched. An overlap within
// tolerance of b's extent snaps b onto target. Anything in between keeps the
// overlapping part and reports the severed offcut. The non-active axis and Y
// are never modified, and b stops moving unless it missed.
func (b *Block) Cut(target *Block, tolerance float64) PlacementResult {
	axis := b.ActiveAxis()
	a := int(axis)

	delta := b.Position[a] - target.Position[a]
	overlap := target.Scale[a] - math.Abs(delta)

	res := PlacementResult{Axis: axis, Overlap: overlap, Block: b}

	if overlap <= 0 {
		res.Outcome = OutcomeMissed
		return res
	}

	if overlap >= b.Scale[a]-tolerance {
		b.Scale[a] = target.Scale[a]
		b.Position[a] = target.Position[a]
		b.Stop()
		res.Outcome = OutcomePerfect
		return res
	}

	offcutSize := b.Scale[a] - overlap
	keptCenter := (b.Position[a] + target.Position[a]) / 2

	sign := 1.0
	if delta < 0 {
		sign = -1.0
	}

	res.OffcutScale = b.Scale
	res.OffcutScale[a] = offcutSize
	res.OffcutPosition = b.Position
	res.OffcutPosition[a] = keptCenter + sign*(overlap+offcutSize)/2

	b.Scale[a] = overlap
	b.Position[a] = keptCenter
	b.Stop()
	res.Outcome = OutcomeChopped
	return res
}
