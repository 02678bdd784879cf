package pid

import "flightcontrol/navigation"

// WithWraparound configures the controller's error function to treat input
// and target as a 0-360 degree heading: the error is the shortest signed
// angle from input to target, normalized to [-1,1]. Grounded on the tank
// heading controller's angle_error_fn.
func WithWraparound() Option {
	return WithErrorFunc(func(target, input float64) float64 {
		directed := navigation.AngleDifferenceDeg(int(target), int(input))
		return float64(directed) / 180.0
	})
}
