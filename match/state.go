package match

import (
	"fmt"
	"time"

	"github.com/milk9111/lightcycle/system"
)

// State is the controller's lifecycle state.
type State int

const (
	StateMenuIdle State = iota
	StateRoundActive
	StateRoundEnding
	StateMatchComplete
	// StateSuspended is entered when the host loses focus. Only Resume or
	// StartMatch leave it.
	StateSuspended
)

func (s State) String() string {
	switch s {
	case StateMenuIdle:
		return "menu_idle"
	case StateRoundActive:
		return "round_active"
	case StateRoundEnding:
		return "round_ending"
	case StateMatchComplete:
		return "match_complete"
	case StateSuspended:
		return "suspended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type RoundOutcome int

const (
	PlayerWin RoundOutcome = iota
	AIWin
	Draw
)

func (o RoundOutcome) String() string {
	switch o {
	case PlayerWin:
		return "player_win"
	case AIWin:
		return "ai_win"
	default:
		return "draw"
	}
}

type MatchOutcome int

const (
	MatchUndecided MatchOutcome = iota
	PlayerWinsMatch
	AIWinsMatch
	MatchDraw
)

func (o MatchOutcome) String() string {
	switch o {
	case PlayerWinsMatch:
		return "player_wins_match"
	case AIWinsMatch:
		return "ai_wins_match"
	case MatchDraw:
		return "match_draw"
	default:
		return "undecided"
	}
}

// MatchState is the scoreboard. Round is the number of the round being
// played, or TotalRounds+1 once the match is over.
type MatchState struct {
	Round       int
	TotalRounds int
	PlayerScore int
	AIScore     int
	BikesAlive  int
}

// Outcome compares the scores. It does not check that all rounds were played.
func (s MatchState) Outcome() MatchOutcome {
	switch {
	case s.PlayerScore > s.AIScore:
		return PlayerWinsMatch
	case s.AIScore > s.PlayerScore:
		return AIWinsMatch
	default:
		return MatchDraw
	}
}

// RoundResult is the payload of a round_ended event.
type RoundResult struct {
	Round        int
	Outcome      RoundOutcome
	Tick         uint64
	Eliminations []system.Elimination
	Score        MatchState
}

// MatchResult is the payload of a match_ended event.
type MatchResult struct {
	Outcome     MatchOutcome
	PlayerScore int
	AIScore     int
	Rounds      []RoundResult
}

// Snapshot is the read-only view handed to presentation code each frame.
type Snapshot struct {
	State     State
	Match     MatchState
	World     system.Snapshot
	LastRound *RoundResult
	Outcome   MatchOutcome
	// RestartIn is the time left before the next round while RoundEnding.
	RestartIn time.Duration
}
