package system

import (
	"github.com/milk9111/lightcycle/common"
	"github.com/milk9111/lightcycle/geom"
)

// avoidanceOverride is the avoidance magnitude above which wall avoidance
// takes over regardless of difficulty.
const avoidanceOverride = 0.8

// WallAvoidance returns a unit floor vector pushing away from every wall
// closer than distance, or zero when no wall is in range.
func WallAvoidance(arena *Arena, pos geom.Vec3, distance float64) geom.Vec3 {
	half := common.ArenaHalfExtent
	if arena != nil {
		half = arena.HalfExtent
	}
	var v geom.Vec3

	if d := half - pos.X; d < distance {
		v.X -= distance - d
	}
	if d := half + pos.X; d < distance {
		v.X += distance - d
	}
	if d := half - pos.Z; d < distance {
		v.Z -= distance - d
	}
	if d := half + pos.Z; d < distance {
		v.Z += distance - d
	}
	return v.Normalize()
}

// Pursuit returns the unit floor vector from one position toward another.
func Pursuit(from, to geom.Vec3) geom.Vec3 {
	d := to.Sub(from)
	d.Y = 0
	return d.Normalize()
}

// BlendSteering mixes avoidance and pursuit with the profile's weights, or
// 0.9/0.1 when a wall is very close. The result is normalized.
func BlendSteering(avoid, chase geom.Vec3, p AIProfile) geom.Vec3 {
	wallWeight, chaseWeight := p.WallAvoidanceWeight, p.PlayerChaseWeight
	if avoid.Length() > avoidanceOverride {
		wallWeight, chaseWeight = 0.9, 0.1
	}
	return avoid.Scale(wallWeight).Add(chase.Scale(chaseWeight)).Normalize()
}

// SteeringAngle is the yaw change toward target for one tick: the shortest
// signed angle scaled by turnSpeed.
func SteeringAngle(current, target geom.Vec3, turnSpeed float64) float64 {
	if target == (geom.Vec3{}) {
		return 0
	}
	return common.WrapAngle(target.Heading()-current.Heading()) * turnSpeed
}
