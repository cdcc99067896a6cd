// Package input turns raw key names and pointer gestures into turn
// commands. It has no dependency on the windowing layer.
package input

import (
	"math"
	"strings"

	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/component"
)

// SwipeTracker recognises horizontal swipes. A swipe to the right is a
// right turn.
type SwipeTracker struct {
	Threshold float64

	active bool
	startX float64
}

func NewSwipeTracker() *SwipeTracker {
	return &SwipeTracker{Threshold: common.SwipeThreshold}
}

// Begin records where a touch or drag started.
func (s *SwipeTracker) Begin(x float64) {
	if s == nil {
		return
	}
	s.active = true
	s.startX = x
}

// End finishes the gesture at x. ok is false when no gesture was in
// progress or the horizontal travel did not exceed the threshold.
func (s *SwipeTracker) End(x float64) (component.TurnDirection, bool) {
	if s == nil || !s.active {
		return component.TurnLeft, false
	}
	s.active = false

	threshold := s.Threshold
	if threshold <= 0 {
		threshold = common.SwipeThreshold
	}
	dx := x - s.startX
	if math.Abs(dx) <= threshold {
		return component.TurnLeft, false
	}
	if dx > 0 {
		return component.TurnRight, true
	}
	return component.TurnLeft, true
}

// Active reports whether a gesture is in progress.
func (s *SwipeTracker) Active() bool { return s != nil && s.active }

// Cancel drops the gesture in progress.
func (s *SwipeTracker) Cancel() {
	if s != nil {
		s.active = false
	}
}

// KeyTurn maps a key name to a turn. Arrow keys and A/D steer.
func KeyTurn(name string) (component.TurnDirection, bool) {
	switch strings.ToLower(name) {
	case "arrowleft", "left", "a":
		return component.TurnLeft, true
	case "arrowright", "right", "d":
		return component.TurnRight, true
	}
	return component.TurnLeft, false
}
