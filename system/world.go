package system

import (
	"errors"
	"fmt"

	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/geom"
)

var (
	ErrNoArena      = errors.New("world: arena is not initialized")
	ErrInvalidArena = errors.New("world: arena is too small for a bike")
)

// Arena is the square play field centred on the origin.
type Arena struct {
	HalfExtent float64
}

// NewArena creates an arena. Non-positive sizes use ArenaHalfExtent.
func NewArena(halfExtent float64) *Arena {
	if halfExtent <= 0 {
		halfExtent = common.ArenaHalfExtent
	}
	return &Arena{HalfExtent: halfExtent}
}

// Validate reports whether a bike can exist inside the arena at all.
func (a *Arena) Validate() error {
	if a == nil {
		return ErrNoArena
	}
	if a.HalfExtent <= common.BikeRadius {
		return fmt.Errorf("%w: half extent %.2f <= bike radius %.2f", ErrInvalidArena, a.HalfExtent, common.BikeRadius)
	}
	return nil
}

// Limit is the largest coordinate magnitude a bike centre may reach.
func (a *Arena) Limit() float64 {
	if a == nil {
		return common.ArenaHalfExtent - common.BikeRadius
	}
	return a.HalfExtent - common.BikeRadius
}

// World owns the bikes, the arena and the event queue for one match.
type World struct {
	Arena *Arena
	Tick  uint64

	bikes  [len(component.Slots)]*component.Bike
	events EventQueue
}

// NewWorld creates an empty world inside arena.
func NewWorld(arena *Arena) *World {
	return &World{Arena: arena}
}

// SetBike places b in its slot, replacing any previous bike.
func (w *World) SetBike(b *component.Bike) {
	if w == nil || b == nil || !validSlot(b.Slot) {
		return
	}
	w.bikes[b.Slot] = b
}

// Bike returns the bike in slot, or nil.
func (w *World) Bike(slot component.Slot) *component.Bike {
	if w == nil || !validSlot(slot) {
		return nil
	}
	return w.bikes[slot]
}

// Opponent returns the bike facing the one in slot.
func (w *World) Opponent(slot component.Slot) *component.Bike {
	return w.Bike(slot.Opponent())
}

// AliveCount counts live bikes.
func (w *World) AliveCount() int {
	if w == nil {
		return 0
	}
	n := 0
	for _, b := range w.bikes {
		if b != nil && b.Alive {
			n++
		}
	}
	return n
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// BikeSnapshot is a read-only copy of one bike for renderers.
type BikeSnapshot struct {
	Slot      component.Slot
	Position  geom.Vec3
	Direction geom.Vec3
	Rotation  float64
	Alive     bool
	Turning   bool
	Trail     []component.TrailSegment
}

// Snapshot is the per-tick view handed to presentation code.
type Snapshot struct {
	Tick       uint64
	HalfExtent float64
	Bikes      []BikeSnapshot
}

// Snapshot copies the current world state.
func (w *World) Snapshot() Snapshot {
	if w == nil {
		return Snapshot{}
	}
	snap := Snapshot{Tick: w.Tick, HalfExtent: common.ArenaHalfExtent}
	if w.Arena != nil {
		snap.HalfExtent = w.Arena.HalfExtent
	}
	for _, b := range w.bikes {
		if b == nil {
			continue
		}
		snap.Bikes = append(snap.Bikes, BikeSnapshot{
			Slot:      b.Slot,
			Position:  b.Position,
			Direction: b.Direction,
			Rotation:  b.Rotation,
			Alive:     b.Alive,
			Turning:   b.IsTurning(),
			Trail:     b.Trail.Live(),
		})
	}
	return snap
}

func validSlot(s component.Slot) bool {
	return s >= 0 && int(s) < len(component.Slots)
}
