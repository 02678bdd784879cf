package outputs

import (
	"flightcontrol/drivers"
	"flightcontrol/ferrors"
)

// MotorOutputController applies a signed [-1,1] speed to the tank's
// differential-drive motor driver.
type MotorOutputController struct {
	motor drivers.MotorDriver
}

// NewMotorOutputController returns a controller driving motor.
func NewMotorOutputController(motor drivers.MotorDriver) *MotorOutputController {
	return &MotorOutputController{motor: motor}
}

// WriteOne applies speed (clamped to [-1,1]).
func (c *MotorOutputController) WriteOne(speed float64) error {
	if speed < -1 {
		speed = -1
	} else if speed > 1 {
		speed = 1
	}
	if err := c.motor.SetSpeed(speed); err != nil {
		return ferrors.Wrap(ferrors.ErrDeviceIO, "motor set speed: %v", err)
	}
	return nil
}
