package component

import (
	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/geom"
)

// TrailSegment is one stretch of wall left behind a bike.
type TrailSegment struct {
	Center      geom.Vec3
	HalfExtents geom.Vec3 // X across, Y up, Z along the segment
	Angle       float64
	// Serial increases with every write to a store and identifies the
	// segment for renderers that keep their own visual objects.
	Serial uint64
}

// Bounds returns the axis-aligned box enclosing the segment.
func (s *TrailSegment) Bounds() geom.Box {
	if s == nil {
		return geom.Box{}
	}
	return geom.OrientedBounds(s.Center, s.HalfExtents, s.Angle)
}

// Endpoints returns the floor-level start and end of the segment.
func (s *TrailSegment) Endpoints() (geom.Vec3, geom.Vec3) {
	if s == nil {
		return geom.Vec3{}, geom.Vec3{}
	}
	along := geom.HeadingVec(s.Angle).Scale(s.HalfExtents.Z)
	c := geom.Vec3{X: s.Center.X, Z: s.Center.Z}
	return c.Sub(along), c.Add(along)
}

// TrailStore is a fixed-capacity ring of trail segments. Once full, new
// segments overwrite the oldest slot.
type TrailStore struct {
	slots  []*TrailSegment
	cursor int
	serial uint64
}

// NewTrailStore creates a store. Non-positive capacities use TrailCapacity.
func NewTrailStore(capacity int) *TrailStore {
	if capacity <= 0 {
		capacity = common.TrailCapacity
	}
	return &TrailStore{slots: make([]*TrailSegment, capacity)}
}

func (t *TrailStore) Capacity() int {
	if t == nil {
		return 0
	}
	return len(t.slots)
}

// WriteIndex is the slot the next segment will be written to.
func (t *TrailStore) WriteIndex() int {
	if t == nil {
		return 0
	}
	return t.cursor
}

// LastSerial is the serial of the most recent write. Serials keep growing
// across Clear.
func (t *TrailStore) LastSerial() uint64 {
	if t == nil {
		return 0
	}
	return t.serial
}

// Len counts occupied slots.
func (t *TrailStore) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, s := range t.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// Append stores the straight segment from start to end and reports whether
// it was kept. Zero-length segments are dropped.
func (t *TrailStore) Append(start, end geom.Vec3) bool {
	if t == nil || len(t.slots) == 0 {
		return false
	}
	d := end.Sub(start)
	d.Y = 0
	length := d.Length()
	if length == 0 {
		return false
	}
	mid := start.Add(end).Scale(0.5)
	t.serial++
	t.slots[t.cursor] = &TrailSegment{
		Center: geom.Vec3{X: mid.X, Y: common.TrailHeight / 2, Z: mid.Z},
		HalfExtents: geom.Vec3{
			X: common.TrailThickness / 2,
			Y: common.TrailHeight / 2,
			Z: length / 2,
		},
		Angle:  d.Heading(),
		Serial: t.serial,
	}
	t.cursor = (t.cursor + 1) % len(t.slots)
	return true
}

// Segments returns every slot in index order; unset slots are nil.
func (t *TrailStore) Segments() []*TrailSegment {
	if t == nil {
		return nil
	}
	return t.slots
}

// Live returns copies of the occupied slots.
func (t *TrailStore) Live() []TrailSegment {
	if t == nil {
		return nil
	}
	out := make([]TrailSegment, 0, len(t.slots))
	for _, s := range t.slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// Segment returns the segment at a ring index, if set.
func (t *TrailStore) Segment(i int) (*TrailSegment, bool) {
	if t == nil || i < 0 || i >= len(t.slots) || t.slots[i] == nil {
		return nil, false
	}
	return t.slots[i], true
}

// MostRecentIndices returns the ring indices of the last n writes.
func (t *TrailStore) MostRecentIndices(n int) map[int]struct{} {
	if t == nil {
		return nil
	}
	return RecentIndices(t.cursor, n, len(t.slots))
}

// RecentIndices computes {(cursor-1-k) mod capacity | 0 <= k < n}.
func RecentIndices(cursor, n, capacity int) map[int]struct{} {
	if capacity <= 0 || n <= 0 {
		return map[int]struct{}{}
	}
	if n > capacity {
		n = capacity
	}
	out := make(map[int]struct{}, n)
	for k := 0; k < n; k++ {
		out[common.EuclideanMod(cursor-1-k, capacity)] = struct{}{}
	}
	return out
}

// Clear empties the store and rewinds the cursor.
func (t *TrailStore) Clear() {
	if t == nil {
		return
	}
	for i := range t.slots {
		t.slots[i] = nil
	}
	t.cursor = 0
}
