package system

import "github.com/milk9111/lightcycle/component"

// MovementSystem advances every live bike by its speed.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) Update(w *World) {
	if w == nil {
		return
	}
	for _, slot := range component.Slots {
		b := w.Bike(slot)
		if b == nil || !b.Alive {
			continue
		}
		b.Advance(b.Speed)
	}
}
