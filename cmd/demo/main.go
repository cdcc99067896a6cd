// Command demo shows seeded AI-vs-AI matches in a window, looping forever.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/logging"
	"github.com/milk9111/lightcycle/match"
	"github.com/milk9111/lightcycle/prefabs"
	"github.com/milk9111/lightcycle/render"
	"github.com/milk9111/lightcycle/system"
	"github.com/rs/zerolog"
)

type demoGame struct {
	settings     match.Settings
	logger       zerolog.Logger
	renderer     *render.Renderer
	clock        *match.ManualClock
	match        *match.Match
	seed         int64
	ticksPerFrm  int
	stalledTicks int
}

// newMatch starts the next seeded match. The clock is advanced by hand so
// the restart delay costs one frame.
func (g *demoGame) newMatch() error {
	g.seed++
	s := g.settings
	s.Seed = g.seed
	g.clock = match.NewManualClock(time.Unix(0, 0))
	m, err := match.NewMatch(s,
		match.WithClock(g.clock),
		match.WithRand(rand.New(rand.NewSource(g.seed))),
		match.WithLogger(g.logger),
		match.WithController(component.SlotHuman, system.SteeringController{}),
	)
	if err != nil {
		return err
	}
	g.match = m
	g.stalledTicks = 0
	return m.StartMatch()
}

func (g *demoGame) Update() error {
	for i := 0; i < g.ticksPerFrm; i++ {
		switch g.match.State() {
		case match.StateRoundActive:
			g.match.Tick()
			g.stalledTicks++
			if g.stalledTicks > 20000 {
				g.match.Suspend()
			}
		case match.StateRoundEnding:
			g.stalledTicks = 0
			g.clock.Advance(g.settings.RestartDelay)
			if err := g.match.Update(); err != nil {
				return err
			}
		case match.StateSuspended:
			g.stalledTicks = 0
			if err := g.match.Resume(); err != nil {
				return err
			}
		default:
			if err := g.newMatch(); err != nil {
				return err
			}
		}
	}
	g.match.Events()
	return nil
}

func (g *demoGame) Draw(screen *ebiten.Image) {
	snap := g.match.Snapshot()
	g.renderer.Draw(screen, snap.World)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("seed %d  round %d  steering %d - %d %s",
		g.seed, min(snap.Match.Round, snap.Match.TotalRounds), snap.Match.PlayerScore, snap.Match.AIScore, g.settings.Strategy), 8, 8)
}

func (g *demoGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func main() {
	seed := flag.Int64("seed", 1, "seed of the first match")
	speed := flag.Int("ticks", 1, "simulation ticks per frame")
	flag.Parse()

	logger := logging.New(os.Stderr, nil, zerolog.InfoLevel)
	settings, err := match.LoadSettings(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("load settings")
	}
	game, err := prefabs.LoadGameSpec()
	if err != nil {
		logger.Fatal().Err(err).Msg("load theme")
	}

	ticks := *speed
	if ticks < 1 {
		ticks = 1
	}
	g := &demoGame{
		settings:    settings,
		logger:      logger,
		renderer:    render.NewRenderer(render.ThemeFromSpec(game.Theme)),
		seed:        *seed - 1,
		ticksPerFrm: ticks,
	}
	if err := g.newMatch(); err != nil {
		logger.Fatal().Err(err).Msg("start match")
	}

	ebiten.SetWindowSize(common.BaseWidth/4*3, common.BaseHeight/4*3)
	ebiten.SetWindowTitle("light cycles demo")
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("run demo")
	}
}
