package inputs

import (
	"context"
	"time"

	"flightcontrol/drivers"
	"flightcontrol/ferrors"
	"flightcontrol/pipeline"
)

// barometerDelay is the barometer's native sampling cadence.
const barometerDelay = 50 * time.Millisecond

// BarometerInputController samples the I2C barometer, alternating between
// emitting AltitudeInput and TemperatureInput on successive reads since
// each ReadOne call can only produce one Input variant.
type BarometerInputController struct {
	baro         drivers.Barometer
	emitAltitude bool
}

// NewBarometerInputController returns a controller reading from baro.
func NewBarometerInputController(baro drivers.Barometer) *BarometerInputController {
	return &BarometerInputController{baro: baro, emitAltitude: true}
}

func (c *BarometerInputController) Delay() (time.Duration, bool) { return barometerDelay, true }

func (c *BarometerInputController) ReadOne(ctx context.Context) (pipeline.Input, error) {
	sample, err := c.baro.Read(ctx)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrDeviceIO, "barometer read: %v", err)
	}

	emitAltitude := c.emitAltitude
	c.emitAltitude = !c.emitAltitude

	if emitAltitude {
		return pipeline.AltitudeInput{Altitude: sample.Altitude, Timestamp: sample.Timestamp}, nil
	}
	return pipeline.TemperatureInput{Temperature: sample.Temperature, Timestamp: sample.Timestamp}, nil
}
