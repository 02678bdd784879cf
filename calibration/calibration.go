// Package calibration implements the flat-trim routine (spec section 4.7):
// average N raw IMU samples taken with the craft motionless and level, then
// derive accelerometer/gyroscope offsets to persist into configuration.
package calibration

import (
	"context"

	"flightcontrol/drivers"
	"flightcontrol/dsp"
	"flightcontrol/ferrors"
)

// SampleCount is the number of raw samples the routine averages.
const SampleCount = 500

// gravity is the standard gravity constant subtracted from the averaged
// accelerometer z-component, since a level craft at rest reads +g there.
const gravity = 9.80665

// FlatTrim reads SampleCount raw samples from bus with the craft motionless
// and level, averages them, and returns accelerometer/gyroscope offsets
// ready to subtract from future readings.
func FlatTrim(ctx context.Context, bus drivers.IMUBus) (accOffset, gyrOffset dsp.Vector3, err error) {
	var accSum, gyrSum dsp.Vector3

	for i := 0; i < SampleCount; i++ {
		select {
		case <-ctx.Done():
			return dsp.Vector3{}, dsp.Vector3{}, ctx.Err()
		default:
		}

		sample, readErr := bus.Read(ctx)
		if readErr != nil {
			return dsp.Vector3{}, dsp.Vector3{}, ferrors.Wrap(ferrors.ErrDeviceIO, "flat-trim sample %d: %v", i, readErr)
		}

		accSum.X += sample.Acc.X
		accSum.Y += sample.Acc.Y
		accSum.Z += sample.Acc.Z
		gyrSum.X += sample.Gyr.X
		gyrSum.Y += sample.Gyr.Y
		gyrSum.Z += sample.Gyr.Z
	}

	n := float64(SampleCount)
	accOffset = dsp.Vector3{X: accSum.X / n, Y: accSum.Y / n, Z: accSum.Z/n - gravity}
	gyrOffset = dsp.Vector3{X: gyrSum.X / n, Y: gyrSum.Y / n, Z: gyrSum.Z / n}

	return accOffset, gyrOffset, nil
}
