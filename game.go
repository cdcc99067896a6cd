package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/input"
	"github.com/milk9111/lightcycle/match"
	"github.com/milk9111/lightcycle/prefabs"
	"github.com/milk9111/lightcycle/render"
	"github.com/milk9111/lightcycle/system"
	"github.com/rs/zerolog"
	"golang.design/x/clipboard"
)

const (
	speedStep     = 0.25
	minSpeed      = 0.25
	maxSpeed      = 3.0
	bannerFrames  = 120
	noTouch       = ebiten.TouchID(-1)
	statusPadding = 8
)

type Game struct {
	frames int
	debug  bool
	logger zerolog.Logger

	match     *match.Match
	overrides overrides
	// pending holds settings reloaded mid-round until the round ends.
	pending *match.Settings

	renderer *render.Renderer
	menu     *MenuUI
	watcher  *prefabs.Watcher

	swipe   *input.SwipeTracker
	touchID ebiten.TouchID
	focused bool

	clipboardReady bool
	banner         string
	bannerUntil    int
}

func NewGame(settings match.Settings, theme prefabs.ThemeSpec, o overrides, watcher *prefabs.Watcher, debug bool, logger zerolog.Logger) (*Game, error) {
	m, err := match.NewMatch(settings, match.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		debug:     debug,
		logger:    logger,
		match:     m,
		overrides: o,
		renderer:  render.NewRenderer(render.ThemeFromSpec(theme)),
		watcher:   watcher,
		swipe:     input.NewSwipeTracker(),
		touchID:   noTouch,
		focused:   true,
	}
	g.menu = NewMenuUI(menuActions{
		Start:           g.start,
		CycleDifficulty: g.cycleDifficulty,
		Slower:          func() { g.adjustSpeed(-speedStep) },
		Faster:          func() { g.adjustSpeed(speedStep) },
	})

	if err := clipboard.Init(); err != nil {
		logger.Warn().Err(err).Msg("clipboard unavailable")
	} else {
		g.clipboardReady = true
	}
	g.refreshMenu()
	return g, nil
}

func (g *Game) inMenu() bool {
	switch g.match.State() {
	case match.StateRoundActive, match.StateRoundEnding:
		return false
	}
	return true
}

func (g *Game) Update() error {
	g.frames++

	g.pollWatcher()

	focused := ebiten.IsFocused()
	if g.focused && !focused && g.match.Suspend() {
		g.swipe.Cancel()
		g.touchID = noTouch
	}
	g.focused = focused

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySummary()
	}

	if g.inMenu() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
			g.start()
		}
		g.menu.UI.Update()
	} else {
		g.handleTurns()
		g.match.Tick()
		if err := g.match.Update(); err != nil {
			return fmt.Errorf("game: restart round: %w", err)
		}
	}

	g.handleEvents()
	return nil
}

func (g *Game) handleTurns() {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if dir, ok := input.KeyTurn(k.String()); ok {
			g.match.Turn(component.SlotHuman, dir)
		}
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopLeft) {
			g.match.Turn(component.SlotHuman, component.TurnLeft)
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight) {
			g.match.Turn(component.SlotHuman, component.TurnRight)
		}
	}

	// Touch and mouse drags share one tracker; the first gesture wins.
	if g.touchID == noTouch && !g.swipe.Active() {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			g.touchID = ids[0]
			x, _ := ebiten.TouchPosition(g.touchID)
			g.swipe.Begin(float64(x))
		} else if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, _ := ebiten.CursorPosition()
			g.swipe.Begin(float64(x))
		}
	}

	var endX int
	ended := false
	if g.touchID != noTouch {
		if inpututil.IsTouchJustReleased(g.touchID) {
			endX, _ = inpututil.TouchPositionInPreviousTick(g.touchID)
			g.touchID = noTouch
			ended = true
		}
	} else if g.swipe.Active() && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		endX, _ = ebiten.CursorPosition()
		ended = true
	}
	if ended {
		if dir, ok := g.swipe.End(float64(endX)); ok {
			g.match.Turn(component.SlotHuman, dir)
		}
	}
}

func (g *Game) handleEvents() {
	for _, evt := range g.match.Events() {
		switch evt.Type {
		case system.EventRoundStarted:
			g.setBanner(fmt.Sprintf("Round %v", evt.Data))
		case system.EventRoundEnded:
			if res, ok := evt.Data.(match.RoundResult); ok {
				g.setBanner(roundBanner(res.Outcome))
			}
		case system.EventMatchEnded, system.EventSuspended:
			g.applyPending()
			g.refreshMenu()
		}
	}
}

func roundBanner(o match.RoundOutcome) string {
	switch o {
	case match.PlayerWin:
		return "You win the round"
	case match.AIWin:
		return "AI wins the round"
	default:
		return "Draw"
	}
}

func (g *Game) setBanner(s string) {
	g.banner = s
	g.bannerUntil = g.frames + bannerFrames
}

func (g *Game) start() {
	var err error
	if g.match.State() == match.StateSuspended {
		err = g.match.Resume()
	} else {
		g.applyPending()
		err = g.match.StartMatch()
	}
	if err != nil {
		g.logger.Error().Err(err).Msg("start round")
		g.setBanner(err.Error())
	}
}

func (g *Game) configure(s match.Settings) {
	err := g.match.Configure(s)
	switch {
	case errors.Is(err, match.ErrRoundInProgress):
		g.pending = &s
	case err != nil:
		g.logger.Warn().Err(err).Msg("settings rejected")
	default:
		g.pending = nil
	}
	g.refreshMenu()
}

func (g *Game) applyPending() {
	if g.pending == nil {
		return
	}
	g.configure(*g.pending)
}

func (g *Game) cycleDifficulty() {
	s := g.match.Settings()
	s.Difficulty = (s.Difficulty + 1) % (system.DifficultyHard + 1)
	g.configure(s)
}

func (g *Game) adjustSpeed(delta float64) {
	s := g.match.Settings()
	s.SpeedMultiplier = min(max(s.SpeedMultiplier+delta, minSpeed), maxSpeed)
	g.configure(s)
}

func (g *Game) refreshMenu() {
	g.menu.Refresh(g.match.State(), g.match.Outcome(), g.match.MatchState(), g.match.Settings())
}

func (g *Game) pollWatcher() {
	changes := g.watcher.Poll()
	if len(changes) == 0 {
		return
	}
	for _, c := range changes {
		g.logger.Info().Str("path", c.Path).Msg("prefab changed")
	}
	s, theme, err := loadConfig(g.overrides, g.logger)
	if err != nil {
		g.logger.Warn().Err(err).Msg("reload prefabs")
		return
	}
	g.renderer.Theme = render.ThemeFromSpec(theme)
	g.configure(s)
}

func (g *Game) copySummary() {
	if !g.clipboardReady {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.match.Summary()))
	g.setBanner("Score copied")
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.match.Snapshot()
	g.renderer.Draw(screen, snap.World)

	hud := fmt.Sprintf("Round %d/%d   You %d - %d AI",
		min(snap.Match.Round, snap.Match.TotalRounds), snap.Match.TotalRounds,
		snap.Match.PlayerScore, snap.Match.AIScore)
	if snap.State == match.StateRoundEnding {
		hud += fmt.Sprintf("   next round in %.1fs", snap.RestartIn.Seconds())
	}
	ebitenutil.DebugPrintAt(screen, hud, statusPadding, statusPadding)

	if g.banner != "" && g.frames < g.bannerUntil {
		ebitenutil.DebugPrintAt(screen, g.banner, common.BaseWidth/2-len(g.banner)*3, common.BaseHeight/2-80)
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.1f  tick %d  state %s", ebiten.ActualFPS(), snap.World.Tick, snap.State),
			statusPadding, common.BaseHeight-20)
	}

	if g.inMenu() {
		g.menu.UI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
