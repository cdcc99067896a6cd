package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the match configuration read from game.yaml.
type GameSpec struct {
	Name            string        `yaml:"name"`
	SpeedMultiplier float64       `yaml:"speed_multiplier"`
	Difficulty      string        `yaml:"difficulty"`
	AIStrategy      string        `yaml:"ai_strategy"`
	AIScript        string        `yaml:"ai_script"`
	TotalRounds     int           `yaml:"total_rounds"`
	RestartDelay    time.Duration `yaml:"restart_delay"`
	Seed            int64         `yaml:"seed"`
	ArenaHalfExtent float64       `yaml:"arena_half_extent"`
	Theme           ThemeSpec     `yaml:"theme"`
}

func LoadGameSpec() (*GameSpec, error) {
	data, err := Load("game.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load game.yaml: %w", err)
	}
	var spec GameSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal game.yaml: %w", err)
	}
	return &spec, nil
}

// ThemeSpec colours the top-down view.
type ThemeSpec struct {
	Background *YAMLColor `yaml:"background"`
	Grid       *YAMLColor `yaml:"grid"`
	Wall       *YAMLColor `yaml:"wall"`
	Human      *YAMLColor `yaml:"human"`
	AI         *YAMLColor `yaml:"ai"`
}

// AISpec holds per-difficulty AI tuning keyed by difficulty name.
type AISpec struct {
	Profiles map[string]AIProfileSpec `yaml:"profiles"`
}

type AIProfileSpec struct {
	TurnProbability       float64 `yaml:"turn_probability"`
	TurnSpeed             float64 `yaml:"turn_speed"`
	WallAvoidanceDistance float64 `yaml:"wall_avoidance_distance"`
	WallAvoidanceWeight   float64 `yaml:"wall_avoidance_weight"`
	PlayerChaseWeight     float64 `yaml:"player_chase_weight"`
}

func LoadAISpec() (*AISpec, error) {
	spec, err := LoadSpec[AISpec]("ai.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed colour, or fallback when the field was omitted.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
