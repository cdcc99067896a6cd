package system

import (
	"errors"
	"testing"

	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/geom"
)

func TestArenaValidate(t *testing.T) {
	var nilArena *Arena
	if err := nilArena.Validate(); !errors.Is(err, ErrNoArena) {
		t.Fatalf("nil arena: got %v", err)
	}
	if err := (&Arena{HalfExtent: 1}).Validate(); !errors.Is(err, ErrInvalidArena) {
		t.Fatalf("tiny arena: got %v", err)
	}
	if err := NewArena(0).Validate(); err != nil {
		t.Fatalf("default arena: %v", err)
	}
	if got := NewArena(0).Limit(); got != 99 {
		t.Fatalf("default limit = %v, want 99", got)
	}
}

func TestWorldSlotsAndSnapshot(t *testing.T) {
	w := NewWorld(NewArena(50))
	h := newTestBike(component.SlotHuman, geom.Vec3{X: 10, Y: 0.5}, geom.Vec3{X: -1})
	w.SetBike(h)

	if w.Bike(component.SlotHuman) != h {
		t.Fatalf("human slot not set")
	}
	if w.Opponent(component.SlotHuman) != nil {
		t.Fatalf("ai slot should be empty")
	}
	if w.AliveCount() != 1 {
		t.Fatalf("alive = %d", w.AliveCount())
	}

	h.Advance(1)
	w.Tick = 7
	snap := w.Snapshot()
	if snap.Tick != 7 || snap.HalfExtent != 50 || len(snap.Bikes) != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if len(snap.Bikes[0].Trail) != 1 {
		t.Fatalf("expected one trail segment, got %d", len(snap.Bikes[0].Trail))
	}

	// Snapshot data is a copy.
	snap.Bikes[0].Trail[0].Center.X = 1000
	if seg, _ := h.Trail.Segment(0); seg.Center.X == 1000 {
		t.Fatalf("snapshot aliases the trail store")
	}
}

func TestSchedulerOrder(t *testing.T) {
	var order []string
	s := NewScheduler(
		recordSystem{name: "a", out: &order},
		nil,
		recordSystem{name: "b", out: &order},
	)
	s.Update(NewWorld(NewArena(0)))
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order = %v", order)
	}
	if len(s.Systems()) != 2 {
		t.Fatalf("systems = %d", len(s.Systems()))
	}
}

type recordSystem struct {
	name string
	out  *[]string
}

func (r recordSystem) Update(*World) { *r.out = append(*r.out, r.name) }

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: EventRoundStarted})
	q.Push(Event{Type: EventRoundEnded})
	if q.Len() != 2 {
		t.Fatalf("len = %d", q.Len())
	}
	got := q.Drain()
	if len(got) != 2 || got[0].Type != EventRoundStarted {
		t.Fatalf("drain = %+v", got)
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatalf("queue not empty after drain")
	}
}

func TestMovementSkipsDeadBikes(t *testing.T) {
	w := NewWorld(NewArena(0))
	h := newTestBike(component.SlotHuman, geom.Vec3{Y: 0.5}, geom.Vec3{X: 1})
	a := newTestBike(component.SlotAI, geom.Vec3{Y: 0.5}, geom.Vec3{Z: 1})
	a.Kill()
	w.SetBike(h)
	w.SetBike(a)

	NewMovementSystem().Update(w)

	if h.Position.X != 0.5 {
		t.Fatalf("human x = %v, want 0.5", h.Position.X)
	}
	if a.Position.Z != 0 {
		t.Fatalf("dead bike moved to %v", a.Position)
	}
}
