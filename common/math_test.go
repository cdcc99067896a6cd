package common

import (
	"math"
	"testing"
)

func TestWrapAngle(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"pi_stays", math.Pi, math.Pi},
		{"neg_pi_flips", -math.Pi, math.Pi},
		{"three_halves", 3 * math.Pi / 2, -math.Pi / 2},
		{"neg_three_halves", -3 * math.Pi / 2, math.Pi / 2},
		{"full_turn", 2 * math.Pi, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WrapAngle(c.in); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("WrapAngle(%.4f) = %.4f, want %.4f", c.in, got, c.want)
			}
		})
	}
}

func TestSmoothStep(t *testing.T) {
	if SmoothStep(0) != 0 || SmoothStep(1) != 1 {
		t.Fatalf("endpoints not pinned")
	}
	if got := SmoothStep(0.5); got != 0.5 {
		t.Fatalf("SmoothStep(0.5) = %v", got)
	}
	if SmoothStep(-1) != 0 || SmoothStep(2) != 1 {
		t.Fatalf("out of range input not clamped")
	}
}

func TestEuclideanMod(t *testing.T) {
	if EuclideanMod(-1, 100) != 99 || EuclideanMod(101, 100) != 1 || EuclideanMod(3, 0) != 0 {
		t.Fatalf("unexpected EuclideanMod results")
	}
}
