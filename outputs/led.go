package outputs

import (
	"flightcontrol/drivers"
	"flightcontrol/ferrors"
)

// LEDOutputController applies the dispatched LED color to a GPIO-backed
// indicator light. A nil color turns it off.
type LEDOutputController struct {
	led drivers.LED
}

// NewLEDOutputController returns a controller driving led.
func NewLEDOutputController(led drivers.LED) *LEDOutputController {
	return &LEDOutputController{led: led}
}

// WriteOne applies color, which may be nil to mean off.
func (c *LEDOutputController) WriteOne(color *drivers.LEDColor) error {
	if err := c.led.Set(color); err != nil {
		return ferrors.Wrap(ferrors.ErrDeviceIO, "led set: %v", err)
	}
	return nil
}
