package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// SmoothStep eases t in [0,1] with t²(3-2t).
func SmoothStep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// WrapAngle maps a radian angle into (-π, π].
func WrapAngle(a float64) float64 {
	r := math.Mod(a+math.Pi, 2*math.Pi)
	if r <= 0 {
		r += 2 * math.Pi
	}
	return r - math.Pi
}

// EuclideanMod returns n mod m in [0, m).
func EuclideanMod(n, m int) int {
	if m <= 0 {
		return 0
	}
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}
