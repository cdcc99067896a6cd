package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/geom"
	"github.com/rs/zerolog"
)

// Scripts define `decide := func(engine) { ... }`; this line is appended so
// every run calls it once.
const aiDecideDispatchScript = `
decide(__engine)
`

// ScriptController runs a tengo script once per tick. A script that fails
// to run is disabled and the controller falls back to Fallback.
type ScriptController struct {
	Name     string
	Fallback Controller

	compiled *tengo.Compiled
	memory   *tengo.Map
	logger   zerolog.Logger
	failed   bool
}

// NewScriptController compiles src. The script may keep values across ticks
// in the `memory` map exposed on the engine.
func NewScriptController(name string, src []byte, logger zerolog.Logger) (*ScriptController, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, fmt.Errorf("ai: script %s is empty", name)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + aiDecideDispatchScript))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile %s: %w", name, err)
	}

	return &ScriptController{
		Name:     name,
		Fallback: RandomTurnController{},
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
		logger:   logger,
	}, nil
}

func (c *ScriptController) Decide(ctx *AIContext) {
	if c == nil || ctx == nil || ctx.Bike == nil {
		return
	}
	if c.failed || c.compiled == nil {
		if c.Fallback != nil {
			c.Fallback.Decide(ctx)
		}
		return
	}

	if err := c.compiled.Set("__engine", c.buildEngine(ctx)); err != nil {
		c.fail(err)
		return
	}
	if err := c.compiled.Run(); err != nil {
		c.fail(err)
	}
}

func (c *ScriptController) fail(err error) {
	c.failed = true
	c.logger.Warn().Err(err).Str("script", c.Name).Msg("ai script disabled, falling back")
}

// Failed reports whether the script has been disabled.
func (c *ScriptController) Failed() bool {
	return c != nil && c.failed
}

func (c *ScriptController) buildEngine(ctx *AIContext) *tengo.ImmutableMap {
	b := ctx.Bike
	values := map[string]tengo.Object{}

	values["memory"] = c.memory
	values["profile"] = &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"turn_probability":        &tengo.Float{Value: ctx.Profile.TurnProbability},
		"turn_speed":              &tengo.Float{Value: ctx.Profile.TurnSpeed},
		"wall_avoidance_distance": &tengo.Float{Value: ctx.Profile.WallAvoidanceDistance},
		"wall_avoidance_weight":   &tengo.Float{Value: ctx.Profile.WallAvoidanceWeight},
		"player_chase_weight":     &tengo.Float{Value: ctx.Profile.PlayerChaseWeight},
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return floorArray(b.Position), nil
	}}

	values["heading"] = &tengo.UserFunction{Name: "heading", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: b.Direction.Heading()}, nil
	}}

	values["opponent_position"] = &tengo.UserFunction{Name: "opponent_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Opponent == nil {
			return floorArray(b.Position), nil
		}
		return floorArray(ctx.Opponent.Position), nil
	}}

	values["wall_avoidance"] = &tengo.UserFunction{Name: "wall_avoidance", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return floorArray(WallAvoidance(ctx.arena(), b.Position, ctx.Profile.WallAvoidanceDistance)), nil
	}}

	values["pursuit"] = &tengo.UserFunction{Name: "pursuit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Opponent == nil {
			return floorArray(geom.Vec3{}), nil
		}
		return floorArray(Pursuit(b.Position, ctx.Opponent.Position)), nil
	}}

	values["is_turning"] = &tengo.UserFunction{Name: "is_turning", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(b.IsTurning()), nil
	}}

	values["random"] = &tengo.UserFunction{Name: "random", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Rand == nil {
			return &tengo.Float{Value: 0.5}, nil
		}
		return &tengo.Float{Value: ctx.Rand.Float64()}, nil
	}}

	values["turn"] = &tengo.UserFunction{Name: "turn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		dir, ok := component.ParseTurnDirection(objectAsString(args[0]))
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolObject(b.Turn(dir)), nil
	}}

	values["steer"] = &tengo.UserFunction{Name: "steer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		angle, ok := objectAsFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolObject(b.Steer(angle)), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func floorArray(v geom.Vec3) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Z}}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}
