package common

import "time"

const (
	// Arena
	ArenaHalfExtent = 100.0
	BikeRadius      = 1.0

	// Bike body, matches the rendered box.
	BikeWidth  = 1.0
	BikeHeight = 1.0
	BikeLength = 2.0

	BaseSpeed    = 0.5
	TurnDuration = 10

	// Trails
	TrailCapacity         = 100
	TrailEmitDistance     = 1.0
	TrailThickness        = 0.5
	TrailHeight           = 1.0
	SelfExclusionSegments = 5

	TotalRounds       = 5
	RoundRestartDelay = 3 * time.Second

	SwipeThreshold = 50.0

	// Presentation
	BaseWidth  = 960
	BaseHeight = 960
)
