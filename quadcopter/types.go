// Package quadcopter implements the "X" frame autopilot control law: mode
// state machine, rate-cascade PID stack, and throttle-aware motor mixer
// (spec sections 4.5-4.6).
package quadcopter

import "flightcontrol/drivers"

// EscChannels is the number of motor outputs on the X-frame.
const EscChannels = 4

// OutputFrame is the quadcopter's dispatched result: an optional LED color
// and four ESC duty cycles in [0,1].
type OutputFrame struct {
	LED         *drivers.LEDColor
	EscChannels [EscChannels]float64
}

func (OutputFrame) isOutputFrame() {}

// RollPitchYaw groups one value per stabilization axis.
type RollPitchYaw[N any] struct {
	Roll, Pitch, Yaw N
}

// RollPitch groups one value per angle-mode axis (yaw is rate-only).
type RollPitch[N any] struct {
	Roll, Pitch N
}

// PIDGains is one axis's (p,i,d) tuple.
type PIDGains struct {
	P, I, D float64
}
