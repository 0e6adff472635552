// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates a Catmull-Rom spline at fractional position x
// between y1 and y2 (0 <= x <= 1). y0 and y3 are the neighbouring samples.
// This is the interpolation kernel used for all fractional-position sample
// reads in the mixer.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// LinearInterpolate blends y1 and y2 at fractional position x. Cheaper than
// CubicInterpolate; used where only two neighbouring samples exist (buffer
// edges).
func LinearInterpolate(y1, y2, x float32) float32 {
	return y1 + (y2-y1)*x
}

// ClampSample limits x to the valid amplitude range [-1, 1]. Summed tracks
// can exceed full scale; the device expects clamped output.
func ClampSample(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
