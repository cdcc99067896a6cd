package system

import (
	"testing"

	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/geom"
)

func newTestBike(slot component.Slot, pos geom.Vec3, dir geom.Vec3) *component.Bike {
	return component.NewBike(slot, pos, dir, 0.5)
}

func TestWallCollision(t *testing.T) {
	arena := NewArena(100)
	cases := []struct {
		name string
		pos  geom.Vec3
		want bool
	}{
		{"centre", geom.Vec3{}, false},
		{"on_limit_x", geom.Vec3{X: 99}, false},
		{"just_past_limit_x", geom.Vec3{X: 99.0001}, true},
		{"negative_z", geom.Vec3{Z: -99.5}, true},
		{"height_ignored", geom.Vec3{Y: 500}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WallCollision(arena, c.pos); got != c.want {
				t.Fatalf("WallCollision(%v) = %v, want %v", c.pos, got, c.want)
			}
		})
	}
}

func TestTrailSelfExclusion(t *testing.T) {
	cases := []struct {
		name        string
		laterWrites int
		want        HitKind
	}{
		{"overlap_is_most_recent", 0, HitNone},
		{"overlap_is_fifth_most_recent", 4, HitNone},
		{"overlap_is_sixth_most_recent", 5, HitOwnTrail},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := newTestBike(component.SlotHuman, geom.Vec3{Y: 0.5}, geom.Vec3{X: 1})
			b.Trail.Append(geom.Vec3{X: -0.5}, geom.Vec3{X: 0.5})
			for i := 0; i < c.laterWrites; i++ {
				x := 50 + float64(i)
				b.Trail.Append(geom.Vec3{X: x, Z: 50}, geom.Vec3{X: x + 1, Z: 50})
			}
			if got := CheckBike(NewArena(100), b, nil); got != c.want {
				t.Fatalf("CheckBike = %v, want %v", got, c.want)
			}
		})
	}
}

func TestOpponentTrailIgnoresExclusion(t *testing.T) {
	b := newTestBike(component.SlotHuman, geom.Vec3{Y: 0.5}, geom.Vec3{X: 1})
	opp := newTestBike(component.SlotAI, geom.Vec3{X: 40, Y: 0.5}, geom.Vec3{X: -1})
	opp.Trail.Append(geom.Vec3{Z: -0.5}, geom.Vec3{Z: 0.5})

	if got := CheckBike(NewArena(100), b, opp); got != HitOpponentTrail {
		t.Fatalf("CheckBike = %v, want %v", got, HitOpponentTrail)
	}
	if !TrailCollision(b, opp) {
		t.Fatalf("TrailCollision should report the opponent hit")
	}
}

func TestWallTakesPriorityOverTrail(t *testing.T) {
	b := newTestBike(component.SlotHuman, geom.Vec3{X: 99.5, Y: 0.5}, geom.Vec3{X: 1})
	opp := newTestBike(component.SlotAI, geom.Vec3{Y: 0.5}, geom.Vec3{X: -1})
	opp.Trail.Append(geom.Vec3{X: 99, Z: -0.5}, geom.Vec3{X: 99, Z: 0.5})

	if got := CheckBike(NewArena(100), b, opp); got != HitWall {
		t.Fatalf("CheckBike = %v, want %v", got, HitWall)
	}
}

func TestDeadBikeNeverCollides(t *testing.T) {
	b := newTestBike(component.SlotHuman, geom.Vec3{X: 150, Y: 0.5}, geom.Vec3{X: 1})
	b.Kill()
	if got := CheckBike(NewArena(100), b, nil); got != HitNone {
		t.Fatalf("dead bike collided: %v", got)
	}
}

func TestCollisionSystemSimultaneousElimination(t *testing.T) {
	w := NewWorld(NewArena(100))
	w.SetBike(newTestBike(component.SlotHuman, geom.Vec3{X: 99.6, Y: 0.5}, geom.Vec3{X: 1}))
	w.SetBike(newTestBike(component.SlotAI, geom.Vec3{X: -99.6, Y: 0.5}, geom.Vec3{X: -1}))

	NewCollisionSystem().Update(w)

	if w.AliveCount() != 0 {
		t.Fatalf("expected both bikes eliminated, %d alive", w.AliveCount())
	}
	events := w.Events().Drain()
	if len(events) != 2 {
		t.Fatalf("expected 2 elimination events, got %d", len(events))
	}
	for i, slot := range component.Slots {
		if events[i].Type != EventBikeEliminated || events[i].Slot != slot {
			t.Fatalf("event %d = %+v", i, events[i])
		}
		elim, ok := events[i].Data.(Elimination)
		if !ok || elim.Hit != HitWall {
			t.Fatalf("event %d payload = %#v", i, events[i].Data)
		}
	}
}

func TestCollisionSystemUsesPreKillState(t *testing.T) {
	// Each bike sits on the other's trail; both must die even though the
	// first one is killed before the second is written.
	w := NewWorld(NewArena(100))
	h := newTestBike(component.SlotHuman, geom.Vec3{Y: 0.5}, geom.Vec3{X: 1})
	a := newTestBike(component.SlotAI, geom.Vec3{X: 20, Y: 0.5}, geom.Vec3{X: -1})
	h.Trail.Append(geom.Vec3{X: 20, Z: -0.5}, geom.Vec3{X: 20, Z: 0.5})
	a.Trail.Append(geom.Vec3{Z: -0.5}, geom.Vec3{Z: 0.5})
	w.SetBike(h)
	w.SetBike(a)

	NewCollisionSystem().Update(w)

	if h.Alive || a.Alive {
		t.Fatalf("expected both eliminated, human=%v ai=%v", h.Alive, a.Alive)
	}
}
