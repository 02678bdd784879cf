// Package outputs implements the OutputController adapters that apply a
// vehicle's dispatched values to a drivers interface: ESC pulse widths over
// sysfs PWM, the indicator LED, and the tank's motor drivers.
package outputs

import (
	"flightcontrol/drivers"
	"flightcontrol/ferrors"
)

const (
	// carrierPeriodNs is the ESC PWM carrier period: 1/400 Hz = 2.5 ms.
	carrierPeriodNs = 2_500_000
	// pulseMinNs and pulseMaxNs are the ESC's 1000-2000us pulse width
	// range, expressed in nanoseconds for the sysfs duty_cycle write.
	pulseMinNs = 1_000_000
	pulseMaxNs = 2_000_000
)

// ESCOutputController maps a [0,1] duty cycle onto the ESC's 1000-2000us
// pulse width and writes it to a sysfs PWM channel.
type ESCOutputController struct {
	pwm        drivers.PWMChannel
	configured bool
}

// NewESCOutputController returns a controller driving pwm.
func NewESCOutputController(pwm drivers.PWMChannel) *ESCOutputController {
	return &ESCOutputController{pwm: pwm}
}

// WriteOne applies duty (clamped to [0,1]) as a pulse width within the
// ESC's carrier period.
func (c *ESCOutputController) WriteOne(duty float64) error {
	if duty < 0 {
		duty = 0
	} else if duty > 1 {
		duty = 1
	}

	if !c.configured {
		if err := c.pwm.SetPeriodNs(carrierPeriodNs); err != nil {
			return ferrors.Wrap(ferrors.ErrDeviceIO, "esc set period: %v", err)
		}
	}

	pulseNs := pulseMinNs + uint64(duty*(pulseMaxNs-pulseMinNs))
	if err := c.pwm.SetDutyNs(pulseNs); err != nil {
		return ferrors.Wrap(ferrors.ErrDeviceIO, "esc set duty: %v", err)
	}

	if !c.configured {
		if err := c.pwm.SetPolarity(drivers.PolarityNormal); err != nil {
			return ferrors.Wrap(ferrors.ErrDeviceIO, "esc set polarity: %v", err)
		}
		if err := c.pwm.SetEnabled(true); err != nil {
			return ferrors.Wrap(ferrors.ErrDeviceIO, "esc enable: %v", err)
		}
		c.configured = true
	}
	return nil
}
