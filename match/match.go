// Package match owns the round and match lifecycle: it resets the bikes,
// drives the per-tick systems, scores rounds and schedules the restart
// delay against an injected clock.
package match

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/system"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrRoundInProgress = errors.New("match: a round is in progress")
	ErrMatchComplete   = errors.New("match: match is complete")
	ErrNotSuspended    = errors.New("match: match is not suspended")
)

type Option func(*Match)

func WithClock(c Clock) Option {
	return func(m *Match) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithRand fixes the random source shared by the AI controllers.
func WithRand(r *rand.Rand) Option {
	return func(m *Match) {
		if r != nil {
			m.rng = r
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Match) { m.logger = l }
}

// WithMeter records round, elimination and match counters on m instead of
// the global meter provider.
func WithMeter(mt metric.Meter) Option {
	return func(m *Match) {
		if mt != nil {
			m.meter = mt
		}
	}
}

// WithController drives slot with c instead of the settings-derived
// controller. Giving the human slot a controller makes an AI-vs-AI match.
func WithController(slot component.Slot, c Controller) Option {
	return func(m *Match) {
		if c != nil {
			m.overrides[slot] = c
		}
	}
}

// Controller is re-exported so callers need not import system.
type Controller = system.Controller

type Match struct {
	settings  Settings
	clock     Clock
	rng       *rand.Rand
	logger    zerolog.Logger
	meter     metric.Meter
	metrics   instruments
	overrides map[component.Slot]Controller

	world     *system.World
	scheduler *system.Scheduler
	collision *system.CollisionSystem

	state    State
	score    MatchState
	deadline time.Time
	results  []RoundResult
	outcome  MatchOutcome
}

// NewMatch creates a controller in MenuIdle. Settings are validated here and
// again by Configure.
func NewMatch(settings Settings, opts ...Option) (*Match, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	m := &Match{
		settings:  settings,
		clock:     SystemClock{},
		logger:    zerolog.Nop(),
		overrides: map[component.Slot]Controller{},
		score:     MatchState{TotalRounds: common.TotalRounds},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.meter == nil {
		m.meter = meter()
	}
	in, err := newInstruments(m.meter)
	if err != nil {
		m.logger.Warn().Err(err).Msg("match metrics disabled")
	}
	m.metrics = in
	if m.rng == nil {
		seed := settings.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		m.rng = rand.New(rand.NewSource(seed))
	}

	m.world = system.NewWorld(system.NewArena(settings.ArenaHalfExtent))
	for _, slot := range component.Slots {
		pos, dir := startPose(slot)
		m.world.SetBike(component.NewBike(slot, pos, dir, settings.BikeSpeed()))
	}
	m.buildScheduler()
	return m, nil
}

// buildScheduler wires movement, AI then collision, the order every tick
// runs in.
func (m *Match) buildScheduler() {
	m.collision = system.NewCollisionSystem()
	m.scheduler = system.NewScheduler(system.NewMovementSystem())

	profile := m.settings.Profile()
	for _, slot := range component.Slots {
		c, ok := m.overrides[slot]
		if !ok {
			if slot != component.SlotAI {
				continue
			}
			c = m.defaultController()
		}
		m.scheduler.Add(system.NewAISystem(slot, c, profile, m.rng, m.logger))
	}
	m.scheduler.Add(m.collision)
}

func (m *Match) defaultController() Controller {
	switch m.settings.Strategy {
	case system.StrategySteering:
		return system.SteeringController{}
	case system.StrategyScript:
		c, err := system.NewScriptController(m.settings.ScriptName, m.settings.Script, m.logger)
		if err != nil {
			m.logger.Warn().Err(err).Msg("ai script unavailable, using random turns")
			return system.RandomTurnController{}
		}
		return c
	default:
		return system.RandomTurnController{}
	}
}

// Configure replaces the settings. It is rejected while a round is running
// or waiting to restart.
func (m *Match) Configure(settings Settings) error {
	if m.state == StateRoundActive || m.state == StateRoundEnding {
		return ErrRoundInProgress
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	m.settings = settings
	m.world.Arena = system.NewArena(settings.ArenaHalfExtent)
	m.buildScheduler()
	m.logger.Info().
		Float64("speed", settings.SpeedMultiplier).
		Str("difficulty", settings.Difficulty.String()).
		Str("strategy", string(settings.Strategy)).
		Msg("match configured")
	return nil
}

func (m *Match) Settings() Settings { return m.settings }

func (m *Match) State() State { return m.state }

// MatchState returns a copy of the scoreboard.
func (m *Match) MatchState() MatchState {
	s := m.score
	s.BikesAlive = m.world.AliveCount()
	return s
}

// Outcome is MatchUndecided until the match completes.
func (m *Match) Outcome() MatchOutcome { return m.outcome }

// Results lists every scored round so far.
func (m *Match) Results() []RoundResult {
	out := make([]RoundResult, len(m.results))
	copy(out, m.results)
	return out
}

// World exposes the simulation for hosts that need direct access.
func (m *Match) World() *system.World { return m.world }

// StartMatch clears the scoreboard and starts round 1.
func (m *Match) StartMatch() error {
	m.score = MatchState{Round: 1, TotalRounds: common.TotalRounds}
	m.results = nil
	m.outcome = MatchUndecided
	m.deadline = time.Time{}
	m.state = StateMenuIdle
	m.logger.Info().Int("rounds", common.TotalRounds).Msg("match started")
	return m.StartRound()
}

// Turn forwards a turn command to the bike in slot. Commands outside an
// active round, or for a dead or turning bike, are ignored.
func (m *Match) Turn(slot component.Slot, dir component.TurnDirection) bool {
	if m.state != StateRoundActive {
		return false
	}
	return m.world.Bike(slot).Turn(dir)
}

// Tick advances the simulation by one step. It returns false when no round
// is active.
func (m *Match) Tick() bool {
	if m.state != StateRoundActive {
		return false
	}
	m.world.Tick++
	m.scheduler.Update(m.world)

	for _, elim := range m.collision.Eliminations {
		m.logger.Debug().
			Str("slot", elim.Slot.String()).
			Str("hit", elim.Hit.String()).
			Uint64("tick", m.world.Tick).
			Msg("bike eliminated")
	}
	if m.world.AliveCount() < len(component.Slots) {
		m.endRound()
	}
	return true
}

// Update fires the restart deadline once the clock has reached it.
func (m *Match) Update() error {
	if m.state != StateRoundEnding {
		return nil
	}
	if m.clock.Now().Before(m.deadline) {
		return nil
	}
	return m.StartRound()
}

// Suspend stops the match immediately. The current round is not scored and
// no restart stays scheduled.
func (m *Match) Suspend() bool {
	if m.state != StateRoundActive && m.state != StateRoundEnding {
		return false
	}
	m.state = StateSuspended
	m.deadline = time.Time{}
	m.world.Events().Push(system.Event{Type: system.EventSuspended, Tick: m.world.Tick})
	m.logger.Info().Int("round", m.score.Round).Msg("match suspended")
	return true
}

// Resume restarts play from a fresh round.
func (m *Match) Resume() error {
	if m.state != StateSuspended {
		return ErrNotSuspended
	}
	return m.StartRound()
}

// Events drains the queued events.
func (m *Match) Events() []system.Event {
	return m.world.Events().Drain()
}

func (m *Match) Snapshot() Snapshot {
	snap := Snapshot{
		State:   m.state,
		Match:   m.MatchState(),
		World:   m.world.Snapshot(),
		Outcome: m.outcome,
	}
	if n := len(m.results); n > 0 {
		last := m.results[n-1]
		snap.LastRound = &last
	}
	if m.state == StateRoundEnding {
		if left := m.deadline.Sub(m.clock.Now()); left > 0 {
			snap.RestartIn = left
		}
	}
	return snap
}

// Summary is a one-line text description of the scoreboard.
func (m *Match) Summary() string {
	var b strings.Builder
	s := m.MatchState()
	round := s.Round
	if round > s.TotalRounds {
		round = s.TotalRounds
	}
	fmt.Fprintf(&b, "Light cycles: player %d - %d AI, round %d/%d", s.PlayerScore, s.AIScore, round, s.TotalRounds)
	if m.outcome != MatchUndecided {
		fmt.Fprintf(&b, ", %s", m.outcome)
	}
	for _, r := range m.results {
		fmt.Fprintf(&b, "\n  round %d: %s at tick %d", r.Round, r.Outcome, r.Tick)
	}
	return b.String()
}
