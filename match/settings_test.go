package match

import (
	"math/rand"
	"testing"
	"time"

	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/prefabs"
	"github.com/milk9111/lightcycle/system"
	"github.com/rs/zerolog"
)

func TestSettingsFromSpec(t *testing.T) {
	game := &prefabs.GameSpec{
		SpeedMultiplier: 1.5,
		Difficulty:      "nightmare",
		AIStrategy:      "steering",
		TotalRounds:     7,
		RestartDelay:    time.Second,
		Seed:            42,
	}
	ai := &prefabs.AISpec{Profiles: map[string]prefabs.AIProfileSpec{
		"normal": {TurnProbability: 0.5, TurnSpeed: 0.3},
		"bogus":  {TurnProbability: 1},
	}}

	s, err := SettingsFromSpec(game, ai, zerolog.Nop())
	if err != nil {
		t.Fatalf("SettingsFromSpec: %v", err)
	}
	if s.SpeedMultiplier != 1.5 || s.BikeSpeed() != 0.75 {
		t.Fatalf("speed = %v / %v", s.SpeedMultiplier, s.BikeSpeed())
	}
	if s.Difficulty != system.DifficultyNormal {
		t.Fatalf("unknown difficulty should fall back to normal, got %v", s.Difficulty)
	}
	if s.Strategy != system.StrategySteering || s.RestartDelay != time.Second || s.Seed != 42 {
		t.Fatalf("settings = %+v", s)
	}
	if s.ArenaHalfExtent != common.ArenaHalfExtent {
		t.Fatalf("arena = %v", s.ArenaHalfExtent)
	}
	if got := s.Profile().TurnProbability; got != 0.5 {
		t.Fatalf("profile override not applied: %v", got)
	}
	if len(s.Profiles) != 1 {
		t.Fatalf("unknown profiles should be dropped: %v", s.Profiles)
	}
}

func TestSettingsFromSpecErrors(t *testing.T) {
	cases := []struct {
		name string
		game prefabs.GameSpec
	}{
		{"bad_strategy", prefabs.GameSpec{AIStrategy: "telepathy"}},
		{"script_without_name", prefabs.GameSpec{AIStrategy: "script"}},
		{"missing_script", prefabs.GameSpec{AIStrategy: "script", AIScript: "nope"}},
		{"negative_speed", prefabs.GameSpec{SpeedMultiplier: -2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			game := c.game
			if _, err := SettingsFromSpec(&game, nil, zerolog.Nop()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.SpeedMultiplier != 1 || s.Difficulty != system.DifficultyNormal || s.RestartDelay != common.RoundRestartDelay {
		t.Fatalf("settings = %+v", s)
	}
	if s.Profile() != system.DefaultProfile(system.DifficultyNormal) {
		t.Fatalf("ai.yaml profile differs from the built-in table: %+v", s.Profile())
	}
}

func TestScriptStrategyPlaysMatch(t *testing.T) {
	game := &prefabs.GameSpec{AIStrategy: "script", AIScript: "hunter", Difficulty: "hard"}
	s, err := SettingsFromSpec(game, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("SettingsFromSpec: %v", err)
	}
	clock := NewManualClock(time.Unix(0, 0))
	m, err := NewMatch(s, WithClock(clock), WithRand(rand.New(rand.NewSource(9))))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	if err := m.StartMatch(); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	for i := 0; i < 600 && m.State() == StateRoundActive; i++ {
		m.Tick()
	}

	var script *system.ScriptController
	for _, sys := range m.scheduler.Systems() {
		if ai, ok := sys.(*system.AISystem); ok {
			script, _ = ai.Controller.(*system.ScriptController)
		}
	}
	if script == nil {
		t.Fatalf("script controller not installed")
	}
	if script.Failed() {
		t.Fatalf("hunter script failed at runtime")
	}
}
