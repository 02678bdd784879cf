package inputs

import (
	"context"
	"time"

	"flightcontrol/drivers"
	"flightcontrol/ferrors"
	"flightcontrol/pipeline"
)

// adcDelay is the cadence at which board telemetry is sampled: far slower
// than the IMU, since battery voltage and current change slowly.
const adcDelay = 100 * time.Millisecond

// ADCInputController samples the board's analog telemetry channels.
type ADCInputController struct {
	adc drivers.ADC
}

// NewADCInputController returns a controller reading from adc.
func NewADCInputController(adc drivers.ADC) *ADCInputController {
	return &ADCInputController{adc: adc}
}

func (c *ADCInputController) Delay() (time.Duration, bool) { return adcDelay, true }

func (c *ADCInputController) ReadOne(ctx context.Context) (pipeline.Input, error) {
	sample, err := c.adc.Read(ctx)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrDeviceIO, "adc read: %v", err)
	}
	return pipeline.NavioAdcInput{
		BoardVoltage:    sample.BoardVoltage,
		ServoVoltage:    sample.ServoVoltage,
		ExternalVoltage: sample.ExternalVoltage,
		ExternalCurrent: sample.ExternalCurrent,
		Timestamp:       sample.Timestamp,
	}, nil
}
