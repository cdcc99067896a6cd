// Command headless plays seeded AI-vs-AI matches without a window and prints
// per-match and aggregate results. It is used to compare difficulty
// profiles and AI strategies.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/logging"
	"github.com/milk9111/lightcycle/match"
	"github.com/milk9111/lightcycle/system"
	"github.com/rs/zerolog"
)

// maxTicksPerRound stops rounds where both bikes survive indefinitely.
const maxTicksPerRound = 20000

type matchStats struct {
	index   int
	seed    int64
	outcome match.MatchOutcome
	player  int
	ai      int
	rounds  []match.RoundResult
	stalled int
}

func main() {
	var (
		matches    int
		seedBase   int64
		seedStep   int64
		difficulty string
		humanAI    string
		opponentAI string
		speed      float64
		logLevel   string
	)
	flag.IntVar(&matches, "matches", 10, "number of matches to play")
	flag.Int64Var(&seedBase, "seed-base", 42, "seed for match 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between matches")
	flag.StringVar(&difficulty, "difficulty", "", "difficulty for both seats (default from game.yaml)")
	flag.StringVar(&humanAI, "human", "steering", "strategy driving the human seat: random, steering or script")
	flag.StringVar(&opponentAI, "ai", "", "strategy driving the ai seat (default from game.yaml)")
	flag.Float64Var(&speed, "speed", 0, "speed multiplier (default from game.yaml)")
	flag.StringVar(&logLevel, "log-level", "warn", "log level")
	flag.Parse()

	logger := logging.New(os.Stderr, nil, logging.ParseLevel(logLevel))

	if matches <= 0 {
		fmt.Println("error: -matches must be > 0")
		os.Exit(2)
	}

	settings, err := match.LoadSettings(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("load settings")
	}
	if difficulty != "" {
		d, ok := system.ParseDifficulty(difficulty)
		if !ok {
			logger.Warn().Str("difficulty", difficulty).Msg("unknown difficulty, using normal")
		}
		settings.Difficulty = d
	}
	if opponentAI != "" {
		st, err := system.ParseStrategy(opponentAI)
		if err != nil {
			logger.Fatal().Err(err).Msg("-ai")
		}
		settings.Strategy = st
	}
	if speed > 0 {
		settings.SpeedMultiplier = speed
	}
	humanStrategy, err := system.ParseStrategy(humanAI)
	if err != nil {
		logger.Fatal().Err(err).Msg("-human")
	}
	if err := settings.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("settings")
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("matches=%d difficulty=%s human=%s ai=%s speed=%.2f seed_base=%d seed_step=%d\n\n",
		matches, settings.Difficulty, humanStrategy, settings.Strategy, settings.SpeedMultiplier, seedBase, seedStep)

	all := make([]matchStats, 0, matches)
	for i := 0; i < matches; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := playMatch(i+1, seed, settings, humanStrategy, logger)
		if err != nil {
			logger.Fatal().Err(err).Int("match", i+1).Msg("play match")
		}
		all = append(all, stats)
		printMatch(stats)
	}
	printAggregate(all)
}

func humanController(st system.Strategy, settings match.Settings, logger zerolog.Logger) (system.Controller, error) {
	switch st {
	case system.StrategySteering:
		return system.SteeringController{}, nil
	case system.StrategyScript:
		if len(settings.Script) == 0 {
			return nil, fmt.Errorf("headless: no script configured for the human seat")
		}
		return system.NewScriptController(settings.ScriptName, settings.Script, logger)
	default:
		return system.RandomTurnController{}, nil
	}
}

func playMatch(index int, seed int64, settings match.Settings, humanStrategy system.Strategy, logger zerolog.Logger) (matchStats, error) {
	settings.Seed = seed
	human, err := humanController(humanStrategy, settings, logger)
	if err != nil {
		return matchStats{}, err
	}
	clock := match.NewManualClock(time.Unix(0, 0))
	m, err := match.NewMatch(settings,
		match.WithClock(clock),
		match.WithRand(rand.New(rand.NewSource(seed))),
		match.WithLogger(logger),
		match.WithController(component.SlotHuman, human),
	)
	if err != nil {
		return matchStats{}, err
	}
	if err := m.StartMatch(); err != nil {
		return matchStats{}, err
	}

	stats := matchStats{index: index, seed: seed}
	for m.State() != match.StateMatchComplete {
		switch m.State() {
		case match.StateRoundActive:
			ticks := 0
			for m.Tick() {
				ticks++
				if ticks >= maxTicksPerRound {
					// Neither bike can die; abandon the round and replay it.
					stats.stalled++
					m.Suspend()
					if err := m.Resume(); err != nil {
						return stats, err
					}
					ticks = 0
				}
			}
		case match.StateRoundEnding:
			clock.Advance(settings.RestartDelay)
			if err := m.Update(); err != nil {
				return stats, err
			}
		default:
			return stats, fmt.Errorf("headless: unexpected state %s", m.State())
		}
		m.Events()
	}

	score := m.MatchState()
	stats.outcome = m.Outcome()
	stats.player = score.PlayerScore
	stats.ai = score.AIScore
	stats.rounds = m.Results()
	return stats, nil
}

func printMatch(s matchStats) {
	fmt.Printf("match %d seed=%d: %s %d-%d", s.index, s.seed, s.outcome, s.player, s.ai)
	if s.stalled > 0 {
		fmt.Printf(" (stalled rounds replayed: %d)", s.stalled)
	}
	fmt.Println()
	for _, r := range s.rounds {
		fmt.Printf("  round %d: %-10s tick=%-5d", r.Round, r.Outcome, r.Tick)
		for _, e := range r.Eliminations {
			fmt.Printf(" %s:%s", e.Slot, e.Hit)
		}
		fmt.Println()
	}
}

func printAggregate(all []matchStats) {
	outcomes := map[match.MatchOutcome]int{}
	rounds := map[match.RoundOutcome]int{}
	hits := map[system.HitKind]int{}
	totalTicks := uint64(0)
	totalRounds := 0
	for _, s := range all {
		outcomes[s.outcome]++
		for _, r := range s.rounds {
			rounds[r.Outcome]++
			totalTicks += r.Tick
			totalRounds++
			for _, e := range r.Eliminations {
				hits[e.Hit]++
			}
		}
	}

	fmt.Printf("\n=== Aggregate ===\n")
	fmt.Printf("matches: human=%d ai=%d draw=%d\n", outcomes[match.PlayerWinsMatch], outcomes[match.AIWinsMatch], outcomes[match.MatchDraw])
	fmt.Printf("rounds:  human=%d ai=%d draw=%d\n", rounds[match.PlayerWin], rounds[match.AIWin], rounds[match.Draw])
	fmt.Printf("eliminations: wall=%d opponent_trail=%d own_trail=%d\n", hits[system.HitWall], hits[system.HitOpponentTrail], hits[system.HitOwnTrail])
	if totalRounds > 0 {
		fmt.Printf("mean round length: %.1f ticks\n", float64(totalTicks)/float64(totalRounds))
	}
}
