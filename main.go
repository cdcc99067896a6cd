package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/logging"
	"github.com/milk9111/lightcycle/match"
	"github.com/milk9111/lightcycle/prefabs"
	"github.com/milk9111/lightcycle/system"
	"github.com/rs/zerolog"
)

// overrides holds command line values that win over game.yaml, including
// after a hot reload.
type overrides struct {
	difficulty string
	speed      float64
	strategy   string
	seed       int64
}

func (o overrides) apply(s match.Settings, logger zerolog.Logger) match.Settings {
	if o.difficulty != "" {
		d, ok := system.ParseDifficulty(o.difficulty)
		if !ok {
			logger.Warn().Str("difficulty", o.difficulty).Msg("unknown difficulty, using normal")
		}
		s.Difficulty = d
	}
	if o.speed > 0 {
		s.SpeedMultiplier = o.speed
	}
	if o.strategy != "" {
		st, err := system.ParseStrategy(o.strategy)
		if err != nil {
			logger.Warn().Err(err).Msg("ignoring -ai flag")
		} else {
			s.Strategy = st
		}
	}
	if o.seed != 0 {
		s.Seed = o.seed
	}
	return s
}

// loadConfig reads game.yaml and ai.yaml and applies the command line.
func loadConfig(o overrides, logger zerolog.Logger) (match.Settings, prefabs.ThemeSpec, error) {
	game, err := prefabs.LoadGameSpec()
	if err != nil {
		return match.DefaultSettings(), prefabs.ThemeSpec{}, err
	}
	ai, err := prefabs.LoadAISpec()
	if err != nil {
		return match.DefaultSettings(), game.Theme, err
	}
	s, err := match.SettingsFromSpec(game, ai, logger)
	if err != nil {
		return s, game.Theme, err
	}
	s = o.apply(s, logger)
	return s, game.Theme, s.Validate()
}

func main() {
	difficulty := flag.String("difficulty", "", "ai difficulty: easy, normal or hard (overrides game.yaml)")
	speed := flag.Float64("speed", 0, "game speed multiplier (overrides game.yaml)")
	strategy := flag.String("ai", "", "ai strategy: random, steering or script")
	seed := flag.Int64("seed", 0, "random seed, 0 seeds from the clock")
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	logPath := flag.String("log", "", "also write logs to this file")
	watch := flag.Bool("watch", true, "reload prefabs/ on change")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	var logFile *os.File
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			errLogger := logging.New(os.Stderr, nil, level)
			errLogger.Fatal().Err(err).Str("path", *logPath).Msg("open log file")
		}
		defer f.Close()
		logFile = f
	}
	var logger zerolog.Logger
	if logFile != nil {
		logger = logging.New(os.Stderr, logFile, level)
	} else {
		logger = logging.New(os.Stderr, nil, level)
	}

	o := overrides{difficulty: *difficulty, speed: *speed, strategy: *strategy, seed: *seed}
	settings, theme, err := loadConfig(o, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("load settings")
	}

	var watcher *prefabs.Watcher
	if *watch {
		var dirs []string
		for _, dir := range []string{prefabs.Dir(), filepath.Join(prefabs.Dir(), "scripts")} {
			if _, err := os.Stat(dir); err == nil {
				dirs = append(dirs, dir)
			}
		}
		if len(dirs) > 0 {
			watcher, err = prefabs.NewWatcher(dirs...)
			if err != nil {
				logger.Warn().Err(err).Msg("prefab hot reload disabled")
			}
		}
	}
	defer watcher.Close()

	game, err := NewGame(settings, theme, o, watcher, *debug, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("create game")
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("light cycles")
	// Keep updating while unfocused so losing focus suspends the match.
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal().Err(err).Msg("run game")
	}
}
