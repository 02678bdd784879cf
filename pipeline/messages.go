// Package pipeline defines the message types and worker-role contracts
// shared by every input controller, collector, autopilot, dispatcher and
// output controller: the framework described in spec section 4.1, kept
// generic across the quadcopter and tank vehicles.
package pipeline

import (
	"time"

	"flightcontrol/ahrs"
	"flightcontrol/dsp"
)

// Input is a tagged union of everything an input controller can produce.
// Only the isInput marker method is shared; callers type-switch on the
// concrete variant.
type Input interface {
	isInput()
}

// RcChannelsInput carries the 16 normalized RC stick/switch positions, or a
// nil Channels when no complete frame could be parsed. Connected is false
// when no frame was parsed or the receiver flags frame-lost or failsafe.
type RcChannelsInput struct {
	Channels  *[16]float64
	Connected bool
	Timestamp time.Time
}

func (RcChannelsInput) isInput() {}

// ImuInput is one conditioned accelerometer/gyroscope/magnetometer sample.
type ImuInput struct {
	Acc, Gyr, Mag dsp.Vector3
	Timestamp     time.Time
}

func (ImuInput) isInput() {}

// OrientationInput is the IMU worker's fused attitude estimate, carrying the
// Imu sample it was derived from alongside the quaternion.
type OrientationInput struct {
	Quaternion ahrs.Quaternion
	Imu        ImuInput
	Timestamp  time.Time
}

func (OrientationInput) isInput() {}

// NavioAdcInput is one sample from the board's analog telemetry channels.
type NavioAdcInput struct {
	BoardVoltage    float64
	ServoVoltage    float64
	ExternalVoltage float64
	ExternalCurrent float64
	Timestamp       time.Time
}

func (NavioAdcInput) isInput() {}

// SoftArmedInput carries the software arm/disarm bit, distinct from the RC
// arm switch and battery presence.
type SoftArmedInput struct {
	Armed     bool
	Timestamp time.Time
}

func (SoftArmedInput) isInput() {}

// AltitudeInput is a barometric altitude sample, in meters.
type AltitudeInput struct {
	Altitude  float32
	Timestamp time.Time
}

func (AltitudeInput) isInput() {}

// TemperatureInput is a barometric temperature sample, in degrees Celsius.
type TemperatureInput struct {
	Temperature float32
	Timestamp   time.Time
}

func (TemperatureInput) isInput() {}

// InputFrame is the collector's mutable snapshot: the latest value received
// for each input variant. Fields are nil until their first update. Each
// vehicle's autopilot reads only the fields it needs and ignores the rest.
type InputFrame struct {
	RcChannels  *RcChannelsInput
	Imu         *ImuInput
	Orientation *OrientationInput
	NavioAdc    *NavioAdcInput
	SoftArmed   *SoftArmedInput
	Altitude    *AltitudeInput
	Temperature *TemperatureInput
}

// Clone returns an independent copy of the frame. Because every field is a
// pointer to an immutable variant value, this is a shallow copy of the
// struct itself — which is exactly what the collector contract requires: a
// later update to one field must not retroactively change a frame already
// shipped downstream.
func (f InputFrame) Clone() InputFrame {
	return f
}

// OutputFrame is the sealed result of one control-law evaluation. The
// quadcopter and tank packages each provide their own concrete type.
type OutputFrame interface {
	isOutputFrame()
}
