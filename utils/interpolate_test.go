// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate_Endpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
	}{
		{name: "ramp", y0: 0, y1: 1, y2: 2, y3: 3},
		{name: "peak", y0: 0, y1: 1, y2: 0, y3: -1},
		{name: "constant", y0: 0.5, y1: 0.5, y2: 0.5, y3: 0.5},
		{name: "negative", y0: -0.3, y1: -0.7, y2: -0.2, y3: 0.1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, 0); got != tt.y1 {
				t.Errorf("at x=0 got %v, want y1=%v", got, tt.y1)
			}
			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, 1)
			if math.Abs(float64(got-tt.y2)) > 1e-6 {
				t.Errorf("at x=1 got %v, want y2=%v", got, tt.y2)
			}
		})
	}
}

func TestCubicInterpolate_LinearSignal(t *testing.T) {
	t.Parallel()

	// Catmull-Rom reproduces straight lines exactly.
	for _, x := range []float32{0, 0.25, 0.5, 0.75, 1} {
		got := CubicInterpolate(0, 1, 2, 3, x)
		want := 1 + x
		if math.Abs(float64(got-want)) > 1e-6 {
			t.Errorf("at x=%v got %v, want %v", x, got, want)
		}
	}
}

func TestCubicInterpolate_Constant(t *testing.T) {
	t.Parallel()

	for _, x := range []float32{0, 0.1, 0.5, 0.9, 1} {
		got := CubicInterpolate(0.25, 0.25, 0.25, 0.25, x)
		if math.Abs(float64(got-0.25)) > 1e-6 {
			t.Errorf("at x=%v got %v, want 0.25", x, got)
		}
	}
}

func TestLinearInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		y1, y2, x, want float32
	}{
		{0, 1, 0, 0},
		{0, 1, 1, 1},
		{0, 1, 0.5, 0.5},
		{-1, 1, 0.25, -0.5},
		{0.5, 0.5, 0.7, 0.5},
	}

	for _, tt := range tests {
		if got := LinearInterpolate(tt.y1, tt.y2, tt.x); got != tt.want {
			t.Errorf("LinearInterpolate(%v, %v, %v) = %v, want %v",
				tt.y1, tt.y2, tt.x, got, tt.want)
		}
	}
}

func TestClampSample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{0.5, 0.5},
		{-0.5, -0.5},
		{1, 1},
		{-1, -1},
		{1.5, 1},
		{-1.5, -1},
		{42, 1},
	}

	for _, tt := range tests {
		if got := ClampSample(tt.in); got != tt.want {
			t.Errorf("ClampSample(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
