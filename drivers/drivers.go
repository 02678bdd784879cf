// Package drivers holds the minimal interface contracts the core pipeline
// needs from the physical world (spec section 1: device drivers are
// external collaborators, out of scope beyond these contracts) plus small
// in-memory fakes used by tests and by the process entrypoint, which always
// runs on them in place of a real SPI/I2C/serial/GPIO/sysfs stack.
package drivers

import (
	"context"
	"time"

	"flightcontrol/dsp"
)

// IMUSample is one raw accelerometer/gyroscope/magnetometer reading, before
// any calibration or filtering is applied.
type IMUSample struct {
	Acc, Gyr, Mag dsp.Vector3
	Timestamp     time.Time
}

// IMUBus is the SPI-backed accelerometer/gyroscope/magnetometer combo.
type IMUBus interface {
	Read(ctx context.Context) (IMUSample, error)
}

// BarometerSample is one I2C barometer reading.
type BarometerSample struct {
	Altitude    float32
	Temperature float32
	Timestamp   time.Time
}

// Barometer is the I2C-backed altitude/temperature sensor.
type Barometer interface {
	Read(ctx context.Context) (BarometerSample, error)
}

// SBUSPort is the serial SBUS receiver link: each Read returns whatever raw
// bytes are currently available, to be pushed into an sbus.Buffer.
type SBUSPort interface {
	Read(ctx context.Context) ([]byte, error)
}

// LEDColor names one of the board's indicator LED colors.
type LEDColor int

const (
	LEDRed LEDColor = iota
	LEDGreen
	LEDBlue
	LEDCyan
	LEDMagenta
	LEDYellow
	LEDWhite
)

// LED is the GPIO-backed indicator light. A nil color means off.
type LED interface {
	Set(color *LEDColor) error
}

// Polarity is the sysfs PWM channel's output polarity.
type Polarity int

const (
	PolarityNormal Polarity = iota
	PolarityInversed
)

// PWMChannel is one sysfs PWM channel, addressed the way spec section 6
// describes: period in ns, then duty cycle in ns, polarity, then enable.
type PWMChannel interface {
	SetPeriodNs(ns uint64) error
	SetDutyNs(ns uint64) error
	SetPolarity(p Polarity) error
	SetEnabled(enabled bool) error
}

// MotorDriver is a generic bidirectional motor output (e.g. an H-bridge
// driver) used by the tank vehicle, whose OutputFrame values are signed
// speeds rather than an ESC's unsigned duty cycle.
type MotorDriver interface {
	SetSpeed(speed float64) error
}

// NavioAdcSample is one analog telemetry reading.
type NavioAdcSample struct {
	BoardVoltage    float64
	ServoVoltage    float64
	ExternalVoltage float64
	ExternalCurrent float64
	Timestamp       time.Time
}

// ADC is the board's analog-to-digital telemetry reader.
type ADC interface {
	Read(ctx context.Context) (NavioAdcSample, error)
}
