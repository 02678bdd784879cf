// Package navigation holds small angle-arithmetic helpers shared by the
// attitude control law and the tank heading controller.
package navigation

import "math"

// AngleDifferenceDeg returns the shortest signed angle, in degrees, that
// rotates b onto a: positive values are clockwise from b to a. The result
// lies in (-180, 180].
func AngleDifferenceDeg(a, b int) int {
	diff := (a - b) % 360
	switch {
	case diff <= -180:
		diff += 360
	case diff > 180:
		diff -= 360
	}
	return diff
}

// AngleDifferenceRad is the radian form of AngleDifferenceDeg, used directly
// by the attitude control law which works in radians throughout.
func AngleDifferenceRad(a, b float64) float64 {
	const twoPi = 2 * math.Pi
	diff := math.Mod(a-b, twoPi)
	switch {
	case diff <= -math.Pi:
		diff += twoPi
	case diff > math.Pi:
		diff -= twoPi
	}
	return diff
}
