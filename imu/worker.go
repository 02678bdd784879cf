// Package imu implements the input controller that runs at roughly 500 Hz
// (spec section 4.2): de-bias, low-pass biquad, alpha-beta-gamma tracking,
// then an AHRS update, composed on top of the raw drivers.IMUBus sample.
package imu

import (
	"context"
	"time"

	"flightcontrol/ahrs"
	"flightcontrol/dsp"
	"flightcontrol/drivers"
	"flightcontrol/ferrors"
	"flightcontrol/pipeline"
)

// ReadDelay is the nominal gap between two successive samples at ~500 Hz.
const ReadDelay = 1705 * time.Microsecond

// LowPassSpec names a biquad low-pass filter's design parameters.
type LowPassSpec struct {
	F, Q, Fs float64
}

// AlphaBetaGammaSpec configures an alpha-beta-gamma tracker.
type AlphaBetaGammaSpec struct {
	Alpha, Beta, Gamma float64
}

// Config bundles the calibration offsets and filter designs the worker
// needs at construction.
type Config struct {
	CalibrationAcc dsp.Vector3
	CalibrationGyr dsp.Vector3
	GyrLowPass     LowPassSpec
	GyrABG         AlphaBetaGammaSpec
	AccLowPass     LowPassSpec
	AccABG         AlphaBetaGammaSpec
}

// Worker is the IMU input controller: it owns its filter and fuser state
// exclusively, mutating nothing shared across worker boundaries.
type Worker struct {
	bus   drivers.IMUBus
	fuser ahrs.Fuser
	sink  pipeline.LogSink

	calibAcc, calibGyr dsp.Vector3

	gyrBiquad *dsp.Biquad
	accBiquad *dsp.Biquad
	gyrABG    *dsp.AlphaBetaGamma
	accABG    *dsp.AlphaBetaGamma

	hasLastSample bool
	lastSample    time.Time
}

// New returns a Worker backed by bus and fused by fuser.
func New(bus drivers.IMUBus, fuser ahrs.Fuser, cfg Config, sink pipeline.LogSink) *Worker {
	return &Worker{
		bus:        bus,
		fuser:      fuser,
		sink:       sink,
		calibAcc:   cfg.CalibrationAcc,
		calibGyr:   cfg.CalibrationGyr,
		gyrBiquad:  dsp.NewLowPass(cfg.GyrLowPass.F, cfg.GyrLowPass.Q, cfg.GyrLowPass.Fs),
		accBiquad:  dsp.NewLowPass(cfg.AccLowPass.F, cfg.AccLowPass.Q, cfg.AccLowPass.Fs),
		gyrABG:     dsp.NewAlphaBetaGamma(cfg.GyrABG.Alpha, cfg.GyrABG.Beta, cfg.GyrABG.Gamma),
		accABG:     dsp.NewAlphaBetaGamma(cfg.AccABG.Alpha, cfg.AccABG.Beta, cfg.AccABG.Gamma),
	}
}

func subVec(a, b dsp.Vector3) dsp.Vector3 {
	return dsp.Vector3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// Delay reports the worker's fixed ~500 Hz cadence.
func (w *Worker) Delay() (time.Duration, bool) { return ReadDelay, true }

// ReadOne reads one raw sample, runs it through the conditioning pipeline,
// and returns the resulting OrientationInput. The first sample ever seen is
// passed through the alpha-beta-gamma stage unfiltered (no prior timestamp
// to derive dt from) and the fuser is not yet armed; subsequent samples run
// the full de-bias -> biquad -> alpha-beta-gamma -> AHRS-update chain.
func (w *Worker) ReadOne(ctx context.Context) (pipeline.Input, error) {
	raw, err := w.bus.Read(ctx)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrDeviceIO, "imu bus read: %v", err)
	}

	debiasedAcc := subVec(raw.Acc, w.calibAcc)
	debiasedGyr := subVec(raw.Gyr, w.calibGyr)

	filteredAcc := w.accBiquad.Update(debiasedAcc)
	filteredGyr := w.gyrBiquad.Update(debiasedGyr)

	if !w.hasLastSample {
		w.hasLastSample = true
		w.lastSample = raw.Timestamp
		w.accABG.Seed(filteredAcc)
		w.gyrABG.Seed(filteredGyr)

		return pipeline.OrientationInput{
			Quaternion: w.fuser.Quaternion(),
			Imu: pipeline.ImuInput{
				Acc:       filteredAcc,
				Gyr:       filteredGyr,
				Mag:       raw.Mag,
				Timestamp: raw.Timestamp,
			},
			Timestamp: raw.Timestamp,
		}, nil
	}

	dt := raw.Timestamp.Sub(w.lastSample).Seconds()
	w.lastSample = raw.Timestamp

	trackedAcc := w.accABG.Update(filteredAcc, dt)
	trackedGyr := w.gyrABG.Update(filteredGyr, dt)

	if err := w.fuser.UpdateIMU(
		ahrs.Vector3{X: trackedGyr.X, Y: trackedGyr.Y, Z: trackedGyr.Z},
		ahrs.Vector3{X: trackedAcc.X, Y: trackedAcc.Y, Z: trackedAcc.Z},
		dt,
	); err != nil {
		w.sink.Log("imu: ahrs update skipped: " + err.Error())
	}

	return pipeline.OrientationInput{
		Quaternion: w.fuser.Quaternion(),
		Imu: pipeline.ImuInput{
			Acc:       trackedAcc,
			Gyr:       trackedGyr,
			Mag:       raw.Mag,
			Timestamp: raw.Timestamp,
		},
		Timestamp: raw.Timestamp,
	}, nil
}
