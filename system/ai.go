package system

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/geom"
	"github.com/rs/zerolog"
)

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyHard:
		return "hard"
	default:
		return "normal"
	}
}

// ParseDifficulty maps a name to a difficulty. Unknown names fall back to
// Normal and report ok=false.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, true
	case "normal":
		return DifficultyNormal, true
	case "hard":
		return DifficultyHard, true
	}
	return DifficultyNormal, false
}

// AIProfile holds the per-difficulty tuning used by every AI strategy.
type AIProfile struct {
	TurnProbability       float64
	TurnSpeed             float64
	WallAvoidanceDistance float64
	WallAvoidanceWeight   float64
	PlayerChaseWeight     float64
}

var defaultProfiles = map[Difficulty]AIProfile{
	DifficultyEasy:   {TurnProbability: 0.05, TurnSpeed: 0.02, WallAvoidanceDistance: 20, WallAvoidanceWeight: 0.9, PlayerChaseWeight: 0.1},
	DifficultyNormal: {TurnProbability: 0.02, TurnSpeed: 0.1, WallAvoidanceDistance: 25, WallAvoidanceWeight: 0.8, PlayerChaseWeight: 0.2},
	DifficultyHard:   {TurnProbability: 0.01, TurnSpeed: 0.2, WallAvoidanceDistance: 30, WallAvoidanceWeight: 0.7, PlayerChaseWeight: 0.3},
}

// DefaultProfile returns the built-in tuning for d.
func DefaultProfile(d Difficulty) AIProfile {
	if p, ok := defaultProfiles[d]; ok {
		return p
	}
	return defaultProfiles[DifficultyNormal]
}

// Strategy selects how the AI steers.
type Strategy string

const (
	// StrategyRandom issues discrete turns at random.
	StrategyRandom Strategy = "random"
	// StrategySteering rotates the heading continuously toward a blend of
	// wall avoidance and pursuit.
	StrategySteering Strategy = "steering"
	// StrategyScript delegates decisions to a tengo script.
	StrategyScript Strategy = "script"
)

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategyRandom, StrategySteering, StrategyScript:
		return st, nil
	case "":
		return StrategyRandom, nil
	default:
		return StrategyRandom, fmt.Errorf("ai: unknown strategy %q", s)
	}
}

// AIContext is what a controller sees on one tick.
type AIContext struct {
	World    *World
	Bike     *component.Bike
	Opponent *component.Bike
	Profile  AIProfile
	Rand     *rand.Rand
}

func (ctx *AIContext) arena() *Arena {
	if ctx == nil || ctx.World == nil {
		return nil
	}
	return ctx.World.Arena
}

// Controller decides what the bike in its context does this tick. It is only
// called for live bikes.
type Controller interface {
	Decide(ctx *AIContext)
}

// RandomTurnController turns left or right with the profile's probability
// whenever the bike is not already turning.
type RandomTurnController struct{}

func (RandomTurnController) Decide(ctx *AIContext) {
	if ctx == nil || ctx.Bike == nil || ctx.Rand == nil || ctx.Bike.IsTurning() {
		return
	}
	if ctx.Rand.Float64() >= ctx.Profile.TurnProbability {
		return
	}
	dir := component.TurnLeft
	if ctx.Rand.Float64() >= 0.5 {
		dir = component.TurnRight
	}
	ctx.Bike.Turn(dir)
}

// SteeringController yaws the heading toward the blended steering vector at
// the profile's turn speed.
type SteeringController struct{}

func (SteeringController) Decide(ctx *AIContext) {
	if ctx == nil || ctx.Bike == nil {
		return
	}
	b := ctx.Bike
	avoid := WallAvoidance(ctx.arena(), b.Position, ctx.Profile.WallAvoidanceDistance)
	var chase geom.Vec3
	if ctx.Opponent != nil {
		chase = Pursuit(b.Position, ctx.Opponent.Position)
	}
	target := BlendSteering(avoid, chase, ctx.Profile)
	b.Steer(SteeringAngle(b.Direction, target, ctx.Profile.TurnSpeed))
}

// AISystem runs a controller for one slot each tick.
type AISystem struct {
	Slot       component.Slot
	Controller Controller
	Profile    AIProfile
	Rand       *rand.Rand
	Logger     zerolog.Logger
}

func NewAISystem(slot component.Slot, controller Controller, profile AIProfile, rng *rand.Rand, logger zerolog.Logger) *AISystem {
	if controller == nil {
		controller = RandomTurnController{}
	}
	return &AISystem{
		Slot:       slot,
		Controller: controller,
		Profile:    profile,
		Rand:       rng,
		Logger:     logger,
	}
}

func (s *AISystem) Update(w *World) {
	if s == nil || w == nil || s.Controller == nil {
		return
	}
	b := w.Bike(s.Slot)
	if b == nil || !b.Alive {
		return
	}
	s.Controller.Decide(&AIContext{
		World:    w,
		Bike:     b,
		Opponent: w.Opponent(s.Slot),
		Profile:  s.Profile,
		Rand:     s.Rand,
	})
}
