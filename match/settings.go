package match

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/prefabs"
	"github.com/milk9111/lightcycle/system"
	"github.com/rs/zerolog"
)

var ErrInvalidSpeed = errors.New("match: speed multiplier must be a positive number")

// Settings are fixed for the duration of a round. Configure replaces them
// between rounds; they are applied at the next round start.
type Settings struct {
	SpeedMultiplier float64
	Difficulty      system.Difficulty
	Strategy        system.Strategy
	ScriptName      string
	Script          []byte

	// Profiles overrides the built-in tuning per difficulty.
	Profiles map[system.Difficulty]system.AIProfile

	RestartDelay    time.Duration
	Seed            int64
	ArenaHalfExtent float64
}

func DefaultSettings() Settings {
	return Settings{
		SpeedMultiplier: 1,
		Difficulty:      system.DifficultyNormal,
		Strategy:        system.StrategyRandom,
		RestartDelay:    common.RoundRestartDelay,
		ArenaHalfExtent: common.ArenaHalfExtent,
	}
}

func (s Settings) Validate() error {
	if s.SpeedMultiplier <= 0 || math.IsNaN(s.SpeedMultiplier) || math.IsInf(s.SpeedMultiplier, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidSpeed, s.SpeedMultiplier)
	}
	if s.RestartDelay < 0 {
		return fmt.Errorf("match: restart delay %v is negative", s.RestartDelay)
	}
	if s.Strategy == system.StrategyScript && len(s.Script) == 0 {
		return fmt.Errorf("match: script strategy selected without a script")
	}
	return nil
}

// Profile returns the tuning for the configured difficulty.
func (s Settings) Profile() system.AIProfile {
	if p, ok := s.Profiles[s.Difficulty]; ok {
		return p
	}
	return system.DefaultProfile(s.Difficulty)
}

// BikeSpeed is the per-tick distance travelled by every bike.
func (s Settings) BikeSpeed() float64 {
	return common.BaseSpeed * s.SpeedMultiplier
}

// SettingsFromSpec converts loaded prefabs. Unknown difficulties fall back
// to normal with a warning; a total_rounds other than the fixed count is
// ignored with a warning.
func SettingsFromSpec(game *prefabs.GameSpec, ai *prefabs.AISpec, logger zerolog.Logger) (Settings, error) {
	s := DefaultSettings()
	if game == nil {
		return s, nil
	}

	if game.SpeedMultiplier != 0 {
		s.SpeedMultiplier = game.SpeedMultiplier
	}
	if game.Difficulty != "" {
		d, ok := system.ParseDifficulty(game.Difficulty)
		if !ok {
			logger.Warn().Str("difficulty", game.Difficulty).Msg("unknown difficulty, using normal")
		}
		s.Difficulty = d
	}
	strategy, err := system.ParseStrategy(game.AIStrategy)
	if err != nil {
		return s, fmt.Errorf("match: settings: %w", err)
	}
	s.Strategy = strategy

	if game.TotalRounds != 0 && game.TotalRounds != common.TotalRounds {
		logger.Warn().Int("total_rounds", game.TotalRounds).Int("using", common.TotalRounds).Msg("total rounds is fixed")
	}
	if game.RestartDelay > 0 {
		s.RestartDelay = game.RestartDelay
	}
	if game.ArenaHalfExtent != 0 {
		s.ArenaHalfExtent = game.ArenaHalfExtent
	}
	s.Seed = game.Seed

	// The named script is loaded whatever the strategy; a load failure is
	// only an error for the script strategy.
	if name := strings.TrimSpace(game.AIScript); name != "" {
		src, err := prefabs.LoadScript(name)
		switch {
		case err == nil:
			s.ScriptName = name
			s.Script = src
		case s.Strategy == system.StrategyScript:
			return s, fmt.Errorf("match: settings: load script %s: %w", name, err)
		default:
			logger.Warn().Err(err).Str("script", name).Msg("ai script not loaded")
		}
	} else if s.Strategy == system.StrategyScript {
		return s, fmt.Errorf("match: settings: ai_script is required for the script strategy")
	}

	if ai != nil && len(ai.Profiles) > 0 {
		s.Profiles = make(map[system.Difficulty]system.AIProfile, len(ai.Profiles))
		for name, p := range ai.Profiles {
			d, ok := system.ParseDifficulty(name)
			if !ok {
				logger.Warn().Str("profile", name).Msg("ignoring unknown ai profile")
				continue
			}
			s.Profiles[d] = system.AIProfile{
				TurnProbability:       p.TurnProbability,
				TurnSpeed:             p.TurnSpeed,
				WallAvoidanceDistance: p.WallAvoidanceDistance,
				WallAvoidanceWeight:   p.WallAvoidanceWeight,
				PlayerChaseWeight:     p.PlayerChaseWeight,
			}
		}
	}

	return s, s.Validate()
}

// LoadSettings reads game.yaml and ai.yaml through prefabs.
func LoadSettings(logger zerolog.Logger) (Settings, error) {
	game, err := prefabs.LoadGameSpec()
	if err != nil {
		return DefaultSettings(), err
	}
	ai, err := prefabs.LoadAISpec()
	if err != nil {
		return DefaultSettings(), err
	}
	return SettingsFromSpec(game, ai, logger)
}
