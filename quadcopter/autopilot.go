package quadcopter

import (
	"time"

	"flightcontrol/drivers"
	"flightcontrol/navigation"
	"flightcontrol/pid"
	"flightcontrol/pipeline"
)

// mode is the arming state machine driving OutputFrame (spec section 4.5).
type mode int

const (
	modeOff mode = iota
	modeDisarmed
	modeArmed
)

const minimumExternalVoltageV = 10.0

// RC channel indices the control law reads directly.
const (
	chRoll      = 0
	chPitch     = 1
	chThrottle  = 2
	chYawRate   = 3
	chArm       = 4
	chPassthrough = 5
)

// Gains bundles the per-axis PID gains, rate gains and angle limits an
// Autopilot is constructed with.
type Gains struct {
	PID   RollPitchYaw[PIDGains]
	Rates RollPitchYaw[float64]
	Limits RollPitch[float64]
}

// Autopilot implements pipeline.Autopilot for the X-frame quadcopter: a
// rate-cascade control law over roll, pitch and yaw, mixed down to four
// ESC duty cycles.
type Autopilot struct {
	pids  RollPitchYaw[*pid.Controller]
	rates RollPitchYaw[float64]
	limits RollPitch[float64]
	mixer Mixer
	sink  pipeline.LogSink

	previousMode mode
}

// New returns an Autopilot with the given gains and minimum ESC output.
func New(gains Gains, minEscOutput float64, sink pipeline.LogSink) *Autopilot {
	return &Autopilot{
		pids: RollPitchYaw[*pid.Controller]{
			Roll:  pid.New(gains.PID.Roll.P, gains.PID.Roll.I, gains.PID.Roll.D, 0, pid.WithLimits(-1, 1)),
			Pitch: pid.New(gains.PID.Pitch.P, gains.PID.Pitch.I, gains.PID.Pitch.D, 0, pid.WithLimits(-1, 1)),
			Yaw:   pid.New(gains.PID.Yaw.P, gains.PID.Yaw.I, gains.PID.Yaw.D, 0, pid.WithLimits(-1, 1)),
		},
		rates:        gains.Rates,
		limits:       gains.Limits,
		mixer:        Mixer{MinOutput: minEscOutput},
		sink:         sink,
		previousMode: modeOff,
	}
}

// MaxControlLoopPeriod bounds the time between two dispatched outputs, per
// the pipeline's backpressure valve.
func (a *Autopilot) MaxControlLoopPeriod() time.Duration {
	return 50 * time.Millisecond
}

func (a *Autopilot) currentMode(frame pipeline.InputFrame) mode {
	if frame.SoftArmed == nil || !frame.SoftArmed.Armed || frame.RcChannels == nil || !frame.RcChannels.Connected || frame.RcChannels.Channels == nil {
		return modeOff
	}

	channels := *frame.RcChannels.Channels
	if channels[chArm] <= 0.5 {
		return modeDisarmed
	}

	voltage := 0.0
	if frame.NavioAdc != nil {
		voltage = frame.NavioAdc.ExternalVoltage
	}

	// A voltage reading near zero means the ADC channel isn't wired up
	// (e.g. running disconnected from a battery during bench testing): treat
	// it as "unknown" rather than "low", matching the reference firmware's
	// <= 2.0 V escape hatch.
	if voltage <= 2.0 || voltage >= minimumExternalVoltageV {
		return modeArmed
	}

	if a.previousMode == modeArmed {
		if a.sink != nil {
			a.sink.Log("quadcopter: low external battery voltage, remaining armed")
		}
		return modeArmed
	}
	return modeDisarmed
}

// OutputFrame runs the mode state machine and, when armed, the full
// rate-cascade control law over the latest frame.
func (a *Autopilot) OutputFrame(frame pipeline.InputFrame) pipeline.OutputFrame {
	m := a.currentMode(frame)
	a.previousMode = m

	switch m {
	case modeOff:
		return OutputFrame{LED: nil, EscChannels: [EscChannels]float64{}}
	case modeDisarmed:
		red := drivers.LEDRed
		return OutputFrame{LED: &red, EscChannels: [EscChannels]float64{}}
	}

	channels := *frame.RcChannels.Channels

	targetOrientation := RollPitchYaw[float64]{
		Roll:  (channels[chRoll] - 0.5) * a.limits.Roll,
		Pitch: (channels[chPitch] - 0.5) * a.limits.Pitch,
		Yaw:   0,
	}

	var currentOrientation RollPitchYaw[float64]
	var gyr struct{ X, Y, Z float64 }
	var instant time.Time
	if frame.Orientation != nil {
		euler := frame.Orientation.Quaternion.ToEuler()
		currentOrientation = RollPitchYaw[float64]{Roll: euler.Roll, Pitch: euler.Pitch, Yaw: euler.Yaw}
		gyr.X, gyr.Y, gyr.Z = frame.Orientation.Imu.Gyr.X, frame.Orientation.Imu.Gyr.Y, frame.Orientation.Imu.Gyr.Z
		instant = frame.Orientation.Timestamp
	}

	deltaOrientation := RollPitchYaw[float64]{
		Roll:  targetOrientation.Roll - currentOrientation.Roll,
		Pitch: targetOrientation.Pitch - currentOrientation.Pitch,
		Yaw:   navigation.AngleDifferenceRad(targetOrientation.Yaw, currentOrientation.Yaw),
	}

	targetRates := RollPitchYaw[float64]{
		Roll:  deltaOrientation.Roll * a.rates.Roll,
		Pitch: deltaOrientation.Pitch * a.rates.Pitch,
		Yaw:   (channels[chYawRate] - 0.5) * a.rates.Yaw,
	}

	a.pids.Roll.SetSetpoint(targetRates.Roll)
	a.pids.Pitch.SetSetpoint(targetRates.Pitch)
	a.pids.Yaw.SetSetpoint(targetRates.Yaw)

	pidOutputs := RollPitchYaw[float64]{
		Roll:  a.pids.Roll.Estimate(gyr.X, instant),
		Pitch: a.pids.Pitch.Estimate(gyr.Y, instant),
		Yaw:   a.pids.Yaw.Estimate(gyr.Z, instant),
	}

	outputs := a.mixer.Mix(pidOutputs, channels[chThrottle])

	if channels[chPassthrough] > 0.5 {
		for i := range outputs {
			outputs[i] = channels[chThrottle]
		}
	}

	green := drivers.LEDGreen
	return OutputFrame{LED: &green, EscChannels: outputs}
}
