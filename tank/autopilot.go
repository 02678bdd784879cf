package tank

import (
	"time"

	"flightcontrol/pid"
	"flightcontrol/pipeline"
)

// mode is the three-level arming state machine: software armed (this
// process is running), RC armed (trigger A), and autonomous (trigger B on
// top of RC armed).
type mode int

const (
	modeDisarmed mode = iota
	modeFailsafe
	modeArmedControlled
	modeArmedAutonomous
)

// RC channel indices the control law reads directly.
const (
	chDirection = 0
	chPower     = 1
	chTriggerA  = 4
	chTriggerB  = 5
	chHeading   = 8
)

// Autopilot implements pipeline.Autopilot for the differential-drive tank:
// direct stick mixing when RC-armed, or heading-hold via a wraparound PID
// when autonomous.
type Autopilot struct {
	headingPID *pid.Controller
	lastMode   mode
	haveMode   bool
}

// New returns an Autopilot with the given heading-hold PID gains.
func New(p, i, d float64) *Autopilot {
	return &Autopilot{
		headingPID: pid.New(p, i, d, 0, pid.WithLimits(-1, 1), pid.WithWraparound()),
	}
}

// MaxControlLoopPeriod bounds the time between two dispatched outputs.
func (a *Autopilot) MaxControlLoopPeriod() time.Duration {
	return 50 * time.Millisecond
}

func currentMode(frame pipeline.InputFrame) mode {
	if frame.RcChannels == nil || frame.RcChannels.Channels == nil || frame.SoftArmed == nil {
		return modeDisarmed
	}
	// frame-lost/failsafe is folded into Connected by the RC input
	// controller: a disconnected receiver is treated the same as failsafe.
	if !frame.RcChannels.Connected {
		return modeFailsafe
	}

	channels := *frame.RcChannels.Channels
	if !frame.SoftArmed.Armed || channels[chTriggerA] <= 0.5 {
		return modeDisarmed
	}
	if channels[chTriggerB] > 0.5 {
		return modeArmedAutonomous
	}
	return modeArmedControlled
}

// OutputFrame runs the arming state machine and, when armed, the
// corresponding drive law.
func (a *Autopilot) OutputFrame(frame pipeline.InputFrame) pipeline.OutputFrame {
	m := currentMode(frame)

	var result OutputFrame
	switch m {
	case modeArmedControlled:
		channels := *frame.RcChannels.Channels
		direction := channels[chDirection]*2 - 1
		power := channels[chPower]*2 - 1
		result = OutputFrame{LeftMotor: power + direction, RightMotor: power - direction}.normalized()

	case modeArmedAutonomous:
		channels := *frame.RcChannels.Channels
		power := channels[chPower]*2 - 1

		if frame.Orientation == nil {
			result = OutputFrame{}
			break
		}

		headingDeg := frame.Orientation.Quaternion.ToEuler().Yaw * 180 / 3.141592653589793
		target := channels[chHeading] * 360

		if a.haveMode && m != a.lastMode {
			a.headingPID.SetSetpoint(target)
		} else if !a.haveMode {
			a.headingPID.SetSetpoint(target)
		}

		estimated := a.headingPID.Estimate(headingDeg, frame.Orientation.Timestamp)
		result = OutputFrame{LeftMotor: power + estimated, RightMotor: power - estimated}.normalized()

	default:
		result = OutputFrame{}
	}

	a.lastMode = m
	a.haveMode = true
	return result
}
