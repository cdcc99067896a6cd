package system

import (
	"math"
	"math/rand"
	"testing"

	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/geom"
	"github.com/rs/zerolog"
)

func TestParseDifficulty(t *testing.T) {
	cases := []struct {
		in   string
		want Difficulty
		ok   bool
	}{
		{"easy", DifficultyEasy, true},
		{" Hard ", DifficultyHard, true},
		{"normal", DifficultyNormal, true},
		{"brutal", DifficultyNormal, false},
	}
	for _, c := range cases {
		got, ok := ParseDifficulty(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseDifficulty(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy(""); err != nil || s != StrategyRandom {
		t.Fatalf("empty strategy = %v, %v", s, err)
	}
	if s, err := ParseStrategy("Steering"); err != nil || s != StrategySteering {
		t.Fatalf("steering = %v, %v", s, err)
	}
	if _, err := ParseStrategy("psychic"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestDefaultProfiles(t *testing.T) {
	cases := []struct {
		d    Difficulty
		prob float64
	}{
		{DifficultyEasy, 0.05},
		{DifficultyNormal, 0.02},
		{DifficultyHard, 0.01},
		{Difficulty(42), 0.02},
	}
	for _, c := range cases {
		if got := DefaultProfile(c.d).TurnProbability; got != c.prob {
			t.Fatalf("%v turn probability = %v, want %v", c.d, got, c.prob)
		}
	}
}

func TestRandomTurnController(t *testing.T) {
	cases := []struct {
		name        string
		probability float64
		turning     bool
		wantTurn    bool
	}{
		{"always", 1, false, true},
		{"never", 0, false, false},
		{"already_turning", 1, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := newTestBike(component.SlotAI, geom.Vec3{Y: 0.5}, geom.Vec3{X: 1})
			if c.turning {
				b.Turn(component.TurnLeft)
			}
			before := b.TurnState
			ctx := &AIContext{Bike: b, Profile: AIProfile{TurnProbability: c.probability}, Rand: rand.New(rand.NewSource(1))}
			RandomTurnController{}.Decide(ctx)

			started := b.TurnState != before
			if started != c.wantTurn {
				t.Fatalf("turn started = %v, want %v", started, c.wantTurn)
			}
		})
	}
}

func TestRandomTurnControllerPicksBothDirections(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := map[float64]bool{}
	for i := 0; i < 64; i++ {
		b := newTestBike(component.SlotAI, geom.Vec3{Y: 0.5}, geom.Vec3{X: 1})
		RandomTurnController{}.Decide(&AIContext{Bike: b, Profile: AIProfile{TurnProbability: 1}, Rand: rng})
		seen[math.Round(b.TurnState.TargetDirection.Z)] = true
	}
	if !seen[-1] || !seen[1] {
		t.Fatalf("expected both left and right turns, saw %v", seen)
	}
}

func TestWallAvoidance(t *testing.T) {
	arena := NewArena(100)
	cases := []struct {
		name string
		pos  geom.Vec3
		want geom.Vec3
	}{
		{"centre", geom.Vec3{}, geom.Vec3{}},
		{"near_east", geom.Vec3{X: 90}, geom.Vec3{X: -1}},
		{"near_south", geom.Vec3{Z: -95}, geom.Vec3{Z: 1}},
		{"corner", geom.Vec3{X: 90, Z: 90}, geom.Vec3{X: -math.Sqrt2 / 2, Z: -math.Sqrt2 / 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WallAvoidance(arena, c.pos, 25)
			if !got.ApproxEqual(c.want, 1e-9) {
				t.Fatalf("WallAvoidance = %v, want %v", got, c.want)
			}
		})
	}
}

func TestBlendSteeringOverride(t *testing.T) {
	p := AIProfile{WallAvoidanceWeight: 0.5, PlayerChaseWeight: 0.5}

	got := BlendSteering(geom.Vec3{X: 1}, geom.Vec3{Z: 1}, p)
	want := geom.Vec3{X: 0.9, Z: 0.1}.Normalize()
	if !got.ApproxEqual(want, 1e-9) {
		t.Fatalf("override blend = %v, want %v", got, want)
	}

	got = BlendSteering(geom.Vec3{}, geom.Vec3{Z: 1}, p)
	if !got.ApproxEqual(geom.Vec3{Z: 1}, 1e-9) {
		t.Fatalf("pursuit only = %v", got)
	}
}

func TestSteeringAngle(t *testing.T) {
	got := SteeringAngle(geom.Vec3{X: 1}, geom.Vec3{Z: 1}, 0.1)
	if math.Abs(got-(-math.Pi/20)) > 1e-9 {
		t.Fatalf("SteeringAngle = %v, want %v", got, -math.Pi/20)
	}
	if SteeringAngle(geom.Vec3{X: 1}, geom.Vec3{}, 0.1) != 0 {
		t.Fatalf("zero target should not steer")
	}
}

func TestSteeringControllerTurnsAwayFromWall(t *testing.T) {
	w := NewWorld(NewArena(100))
	b := newTestBike(component.SlotAI, geom.Vec3{X: 90, Y: 0.5}, geom.Vec3{X: 1})
	w.SetBike(b)
	w.SetBike(newTestBike(component.SlotHuman, geom.Vec3{X: -90, Y: 0.5}, geom.Vec3{X: 1}))

	sys := NewAISystem(component.SlotAI, SteeringController{}, DefaultProfile(DifficultyHard), rand.New(rand.NewSource(1)), zerolog.Nop())
	for i := 0; i < 20; i++ {
		sys.Update(w)
	}
	if b.Direction.X >= 1 {
		t.Fatalf("bike still heading into the wall: %v", b.Direction)
	}
	if math.Abs(b.Direction.Length()-1) > 1e-9 {
		t.Fatalf("direction not unit: %v", b.Direction)
	}
}

func TestAISystemSkipsDeadBike(t *testing.T) {
	w := NewWorld(NewArena(100))
	b := newTestBike(component.SlotAI, geom.Vec3{Y: 0.5}, geom.Vec3{X: 1})
	b.Kill()
	w.SetBike(b)

	sys := NewAISystem(component.SlotAI, nil, AIProfile{TurnProbability: 1}, rand.New(rand.NewSource(1)), zerolog.Nop())
	sys.Update(w)
	if b.IsTurning() {
		t.Fatalf("dead bike started a turn")
	}
}
