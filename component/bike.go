package component

import (
	"fmt"
	"math"
	"strings"

	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/geom"
)

// Slot identifies a player seat in the arena.
type Slot int

const (
	SlotHuman Slot = iota
	SlotAI
)

// Slots lists every seat in tick order.
var Slots = [...]Slot{SlotHuman, SlotAI}

func (s Slot) String() string {
	switch s {
	case SlotHuman:
		return "human"
	case SlotAI:
		return "ai"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Opponent returns the other seat.
func (s Slot) Opponent() Slot {
	if s == SlotHuman {
		return SlotAI
	}
	return SlotHuman
}

type TurnDirection int

const (
	TurnLeft TurnDirection = iota
	TurnRight
)

func (d TurnDirection) String() string {
	if d == TurnLeft {
		return "left"
	}
	return "right"
}

// Angle is the yaw change of a full turn: +90° for left, -90° for right.
func (d TurnDirection) Angle() float64 {
	if d == TurnLeft {
		return math.Pi / 2
	}
	return -math.Pi / 2
}

func ParseTurnDirection(s string) (TurnDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return TurnLeft, true
	case "right", "r":
		return TurnRight, true
	}
	return TurnLeft, false
}

// TurnState tracks a smoothed 90° turn in progress.
type TurnState struct {
	Active          bool
	Progress        int
	Duration        int
	StartDirection  geom.Vec3
	TargetDirection geom.Vec3
	StartRotation   float64
	TargetRotation  float64
}

// Bike is one light cycle. Alive=false is terminal until Reset.
type Bike struct {
	Slot      Slot
	Position  geom.Vec3
	Direction geom.Vec3
	Rotation  float64
	Speed     float64
	Alive     bool
	TurnState TurnState
	Trail     *TrailStore

	lastEmit geom.Vec3
}

// NewBike creates a live bike at pos heading along dir.
func NewBike(slot Slot, pos, dir geom.Vec3, speed float64) *Bike {
	b := &Bike{
		Slot:  slot,
		Speed: speed,
		Trail: NewTrailStore(common.TrailCapacity),
	}
	b.Reset(pos, dir)
	return b
}

// Reset revives the bike at pos, clears its trail and any turn.
func (b *Bike) Reset(pos, dir geom.Vec3) {
	if b == nil {
		return
	}
	if b.Trail == nil {
		b.Trail = NewTrailStore(common.TrailCapacity)
	}
	dir = dir.Normalize()
	b.Position = pos
	b.Direction = dir
	b.Rotation = dir.Heading()
	b.Alive = true
	b.TurnState = TurnState{}
	b.Trail.Clear()
	b.lastEmit = pos
}

func (b *Bike) IsTurning() bool {
	return b != nil && b.TurnState.Active
}

// Kill eliminates the bike for the rest of the round.
func (b *Bike) Kill() {
	if b == nil {
		return
	}
	b.Alive = false
}

// Turn starts a 90° turn. It is ignored while dead or already turning.
func (b *Bike) Turn(dir TurnDirection) bool {
	if b == nil || !b.Alive || b.TurnState.Active {
		return false
	}
	angle := dir.Angle()
	b.TurnState = TurnState{
		Active:          true,
		Duration:        common.TurnDuration,
		StartDirection:  b.Direction,
		TargetDirection: b.Direction.RotateY(angle).Normalize(),
		StartRotation:   b.Rotation,
		TargetRotation:  common.WrapAngle(b.Rotation + angle),
	}
	return true
}

// Steer yaws the heading directly by angle radians. Like Turn, it is ignored
// while dead or mid-turn.
func (b *Bike) Steer(angle float64) bool {
	if b == nil || !b.Alive || b.TurnState.Active || angle == 0 {
		return false
	}
	b.Direction = b.Direction.RotateY(angle).Normalize()
	b.Rotation = common.WrapAngle(b.Rotation + angle)
	return true
}

// Advance runs one tick: turn interpolation first, then movement along the
// resulting heading, then trail emission.
func (b *Bike) Advance(distance float64) {
	if b == nil || !b.Alive {
		return
	}
	if b.TurnState.Active {
		b.stepTurn()
	}

	b.Position = b.Position.Add(b.Direction.Scale(distance))

	if b.lastEmit.Distance(b.Position) >= common.TrailEmitDistance {
		b.Trail.Append(b.lastEmit, b.Position)
		b.lastEmit = b.Position
	}
}

func (b *Bike) stepTurn() {
	ts := &b.TurnState
	if ts.Duration <= 0 {
		ts.Duration = common.TurnDuration
	}
	ts.Progress++

	s := common.SmoothStep(float64(ts.Progress) / float64(ts.Duration))
	delta := common.WrapAngle(ts.TargetRotation - ts.StartRotation)
	b.Rotation = common.WrapAngle(ts.StartRotation + delta*s)
	b.Direction = ts.StartDirection.Lerp(ts.TargetDirection, s).Normalize()

	if ts.Progress >= ts.Duration {
		b.Direction = ts.TargetDirection
		b.Rotation = ts.TargetRotation
		ts.Active = false
	}
}

// Bounds is the axis-aligned box around the bike body.
func (b *Bike) Bounds() geom.Box {
	if b == nil {
		return geom.Box{}
	}
	half := geom.Vec3{X: common.BikeWidth / 2, Y: common.BikeHeight / 2, Z: common.BikeLength / 2}
	return geom.OrientedBounds(b.Position, half, b.Direction.Heading())
}

// LastEmit is the point the next trail segment will start from.
func (b *Bike) LastEmit() geom.Vec3 {
	if b == nil {
		return geom.Vec3{}
	}
	return b.lastEmit
}
