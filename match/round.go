package match

import (
	"fmt"

	"github.com/milk9111/lightcycle/component"
	"github.com/milk9111/lightcycle/geom"
	"github.com/milk9111/lightcycle/system"
)

// startPose puts the bikes on opposite corners facing each other along X.
func startPose(slot component.Slot) (geom.Vec3, geom.Vec3) {
	if slot == component.SlotAI {
		return geom.Vec3{X: -10, Y: 0.5, Z: -10}, geom.Vec3{X: 1}
	}
	return geom.Vec3{X: 10, Y: 0.5, Z: 10}, geom.Vec3{X: -1}
}

// StartRound resets both bikes and their trails and enters RoundActive. A
// missing or degenerate arena fails here rather than during ticks.
func (m *Match) StartRound() error {
	switch m.state {
	case StateRoundActive:
		return ErrRoundInProgress
	case StateMatchComplete:
		return ErrMatchComplete
	}
	if err := m.world.Arena.Validate(); err != nil {
		return fmt.Errorf("match: start round %d: %w", m.score.Round, err)
	}
	if m.score.Round == 0 {
		m.score.Round = 1
	}

	speed := m.settings.BikeSpeed()
	for _, slot := range component.Slots {
		pos, dir := startPose(slot)
		b := m.world.Bike(slot)
		if b == nil {
			b = component.NewBike(slot, pos, dir, speed)
			m.world.SetBike(b)
		}
		b.Speed = speed
		b.Reset(pos, dir)
	}
	m.world.Tick = 0
	m.state = StateRoundActive

	m.world.Events().Push(system.Event{Type: system.EventRoundStarted, Data: m.score.Round})
	m.logger.Info().Int("round", m.score.Round).Int("of", m.score.TotalRounds).Msg("round started")
	return nil
}

func (m *Match) endRound() {
	h := m.world.Bike(component.SlotHuman)
	a := m.world.Bike(component.SlotAI)

	outcome := Draw
	switch {
	case h.Alive && !a.Alive:
		outcome = PlayerWin
		m.score.PlayerScore++
	case a.Alive && !h.Alive:
		outcome = AIWin
		m.score.AIScore++
	}

	result := RoundResult{
		Round:        m.score.Round,
		Outcome:      outcome,
		Tick:         m.world.Tick,
		Eliminations: append([]system.Elimination(nil), m.collision.Eliminations...),
	}
	m.score.Round++
	result.Score = m.MatchState()
	m.results = append(m.results, result)

	m.world.Events().Push(system.Event{Type: system.EventRoundEnded, Tick: m.world.Tick, Data: result})
	m.metrics.round(outcome, result.Eliminations)
	m.logger.Info().
		Int("round", result.Round).
		Str("outcome", outcome.String()).
		Int("player", m.score.PlayerScore).
		Int("ai", m.score.AIScore).
		Msg("round ended")

	if m.score.Round <= m.score.TotalRounds {
		m.state = StateRoundEnding
		m.deadline = m.clock.Now().Add(m.settings.RestartDelay)
		return
	}

	m.state = StateMatchComplete
	m.outcome = m.score.Outcome()
	m.metrics.match(m.outcome)
	m.world.Events().Push(system.Event{
		Type: system.EventMatchEnded,
		Tick: m.world.Tick,
		Data: MatchResult{
			Outcome:     m.outcome,
			PlayerScore: m.score.PlayerScore,
			AIScore:     m.score.AIScore,
			Rounds:      m.Results(),
		},
	})
	m.logger.Info().
		Str("outcome", m.outcome.String()).
		Int("player", m.score.PlayerScore).
		Int("ai", m.score.AIScore).
		Msg("match ended")
}
