// Package render draws a top-down view of a world snapshot with ebiten's
// vector package.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/geom"
	"github.com/milk9111/lightcycle/prefabs"
	"github.com/milk9111/lightcycle/system"
	"golang.org/x/image/colornames"
)

const (
	viewMargin  = 24.0
	gridSpacing = 10.0
)

type Theme struct {
	Background color.Color
	Grid       color.Color
	Wall       color.Color
	Human      color.Color
	AI         color.Color
}

func ThemeFromSpec(spec prefabs.ThemeSpec) Theme {
	return Theme{
		Background: spec.Background.Or(colornames.Black),
		Grid:       spec.Grid.Or(colornames.Midnightblue),
		Wall:       spec.Wall.Or(colornames.Deepskyblue),
		Human:      spec.Human.Or(colornames.Cyan),
		AI:         spec.AI.Or(colornames.Orangered),
	}
}

func (t Theme) bikeColor(slot component.Slot) color.Color {
	if slot == component.SlotAI {
		return t.AI
	}
	return t.Human
}

// trailLine is the screen-space form of one trail segment.
type trailLine struct {
	x0, y0, x1, y1 float32
}

// Renderer draws a top-down view of the arena. It keeps its own table of
// trail lines keyed by segment serial and syncs it from each snapshot, so
// unchanged segments are not re-projected.
type Renderer struct {
	Theme Theme

	scale      float64
	halfExtent float64
	trails     map[component.Slot]map[uint64]trailLine
}

func NewRenderer(theme Theme) *Renderer {
	return &Renderer{
		Theme:  theme,
		trails: map[component.Slot]map[uint64]trailLine{},
	}
}

func (r *Renderer) project(p geom.Vec3) (float32, float32) {
	cx, cy := float64(common.BaseWidth)/2, float64(common.BaseHeight)/2
	return float32(cx + p.X*r.scale), float32(cy + p.Z*r.scale)
}

func (r *Renderer) setExtent(halfExtent float64) {
	if halfExtent <= 0 {
		halfExtent = common.ArenaHalfExtent
	}
	if halfExtent == r.halfExtent {
		return
	}
	side := math.Min(common.BaseWidth, common.BaseHeight) - 2*viewMargin
	r.halfExtent = halfExtent
	r.scale = side / (2 * halfExtent)
	// Projection changed; every cached line is stale.
	r.trails = map[component.Slot]map[uint64]trailLine{}
}

func (r *Renderer) syncTrails(b system.BikeSnapshot) map[uint64]trailLine {
	lines := r.trails[b.Slot]
	if lines == nil {
		lines = map[uint64]trailLine{}
		r.trails[b.Slot] = lines
	}
	live := make(map[uint64]struct{}, len(b.Trail))
	for i := range b.Trail {
		seg := &b.Trail[i]
		live[seg.Serial] = struct{}{}
		if _, ok := lines[seg.Serial]; ok {
			continue
		}
		a, c := seg.Endpoints()
		x0, y0 := r.project(a)
		x1, y1 := r.project(c)
		lines[seg.Serial] = trailLine{x0: x0, y0: y0, x1: x1, y1: y1}
	}
	for serial := range lines {
		if _, ok := live[serial]; !ok {
			delete(lines, serial)
		}
	}
	return lines
}

func (r *Renderer) Draw(screen *ebiten.Image, snap system.Snapshot) {
	if r == nil || screen == nil {
		return
	}
	r.setExtent(snap.HalfExtent)
	screen.Fill(r.Theme.Background)

	half := r.halfExtent
	for v := -half + gridSpacing; v < half; v += gridSpacing {
		x0, y0 := r.project(geom.Vec3{X: v, Z: -half})
		x1, y1 := r.project(geom.Vec3{X: v, Z: half})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, r.Theme.Grid, false)
		x0, y0 = r.project(geom.Vec3{X: -half, Z: v})
		x1, y1 = r.project(geom.Vec3{X: half, Z: v})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, r.Theme.Grid, false)
	}
	minX, minY := r.project(geom.Vec3{X: -half, Z: -half})
	side := float32(2 * half * r.scale)
	vector.StrokeRect(screen, minX, minY, side, side, 3, r.Theme.Wall, false)

	trailWidth := float32(math.Max(common.TrailThickness*r.scale, 1.5))
	for _, b := range snap.Bikes {
		clr := r.Theme.bikeColor(b.Slot)
		for _, l := range r.syncTrails(b) {
			vector.StrokeLine(screen, l.x0, l.y0, l.x1, l.y1, trailWidth, clr, true)
		}
	}

	for _, b := range snap.Bikes {
		r.drawBike(screen, b)
	}
}

func (r *Renderer) drawBike(screen *ebiten.Image, b system.BikeSnapshot) {
	clr := r.Theme.bikeColor(b.Slot)
	if !b.Alive {
		clr = dim(clr)
	}
	along := b.Direction.Scale(common.BikeLength / 2)
	x0, y0 := r.project(b.Position.Sub(along))
	x1, y1 := r.project(b.Position.Add(along))
	width := float32(math.Max(common.BikeWidth*r.scale, 3))
	vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	vector.FillRect(screen, x1-width/2, y1-width/2, width, width, colornames.White, false)
}

func dim(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	return color.NRGBA{R: uint8(r >> 10), G: uint8(g >> 10), B: uint8(b >> 10), A: uint8(a >> 8)}
}
