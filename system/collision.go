package system

import (
	"math"

	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/geom"
)

// HitKind describes what eliminated a bike.
type HitKind int

const (
	HitNone HitKind = iota
	HitWall
	HitOpponentTrail
	HitOwnTrail
)

func (h HitKind) String() string {
	switch h {
	case HitWall:
		return "wall"
	case HitOpponentTrail:
		return "opponent_trail"
	case HitOwnTrail:
		return "own_trail"
	default:
		return "none"
	}
}

// WallCollision reports whether pos lies outside the arena once the bike
// radius is accounted for. Only the current position is tested; a bike fast
// enough to jump the boundary band in one tick is not caught.
func WallCollision(arena *Arena, pos geom.Vec3) bool {
	limit := arena.Limit()
	return math.Abs(pos.X) > limit || math.Abs(pos.Z) > limit
}

// TrailCollision reports whether bike touches any opponent segment or any of
// its own segments outside the self-exclusion window.
func TrailCollision(bike, opponent *component.Bike) bool {
	return trailHit(bike, opponent) != HitNone
}

// CheckBike runs the wall then trail tests for bike. Dead bikes never collide.
func CheckBike(arena *Arena, bike, opponent *component.Bike) HitKind {
	if bike == nil || !bike.Alive {
		return HitNone
	}
	if WallCollision(arena, bike.Position) {
		return HitWall
	}
	return trailHit(bike, opponent)
}

func trailHit(bike, opponent *component.Bike) HitKind {
	if bike == nil || !bike.Alive {
		return HitNone
	}
	box := bike.Bounds()

	if opponent != nil {
		for _, seg := range opponent.Trail.Segments() {
			if seg != nil && box.Intersects(seg.Bounds()) {
				return HitOpponentTrail
			}
		}
	}

	skip := bike.Trail.MostRecentIndices(common.SelfExclusionSegments)
	for i, seg := range bike.Trail.Segments() {
		if seg == nil {
			continue
		}
		if _, ok := skip[i]; ok {
			continue
		}
		if box.Intersects(seg.Bounds()) {
			return HitOwnTrail
		}
	}
	return HitNone
}

// Elimination is the payload of EventBikeEliminated.
type Elimination struct {
	Slot     component.Slot
	Hit      HitKind
	Position geom.Vec3
}

// CollisionSystem judges every live bike against the same pre-kill state,
// then eliminates the ones that hit something.
type CollisionSystem struct {
	// Eliminations holds the bikes killed by the latest Update.
	Eliminations []Elimination
}

func NewCollisionSystem() *CollisionSystem { return &CollisionSystem{} }

func (s *CollisionSystem) Update(w *World) {
	if w == nil {
		return
	}
	s.Eliminations = s.Eliminations[:0]
	var hits [len(component.Slots)]HitKind
	for _, slot := range component.Slots {
		hits[slot] = CheckBike(w.Arena, w.Bike(slot), w.Opponent(slot))
	}
	for _, slot := range component.Slots {
		if hits[slot] == HitNone {
			continue
		}
		b := w.Bike(slot)
		b.Kill()
		elim := Elimination{Slot: slot, Hit: hits[slot], Position: b.Position}
		s.Eliminations = append(s.Eliminations, elim)
		w.Events().Push(Event{
			Type: EventBikeEliminated,
			Tick: w.Tick,
			Slot: slot,
			Data: elim,
		})
	}
}
