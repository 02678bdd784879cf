// Package tank implements the differential-drive control law for the
// tracked ground vehicle (spec section 4.5 expansion): software/RC/
// autonomous arming levels, direct stick mixing in controlled mode, and a
// heading-hold PID in autonomous mode, grounded on
// original_source/autopilot/src/tank.rs.
package tank

import "math"

// OutputFrame is the tank's dispatched result: signed left/right motor
// speeds in [-1,1].
type OutputFrame struct {
	LeftMotor, RightMotor float64
}

func (OutputFrame) isOutputFrame() {}

// normalized rescales both motor speeds down (never up) so the drive
// vector's magnitude never exceeds 0.5, preserving the left/right ratio.
// Grounded on TankOutputFrame::normalized in the Rust source.
func (f OutputFrame) normalized() OutputFrame {
	magnitude := math.Sqrt(f.LeftMotor*f.LeftMotor + f.RightMotor*f.RightMotor)
	if magnitude <= 0.5 {
		return f
	}
	scale := 0.5 / magnitude
	return OutputFrame{LeftMotor: f.LeftMotor * scale, RightMotor: f.RightMotor * scale}
}
