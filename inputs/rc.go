// Package inputs implements the InputController adapters that wrap a
// drivers interface into a pipeline.Input producer: RC channels over SBUS,
// board telemetry over the ADC, barometric altitude/temperature, and the
// software arm switch.
package inputs

import (
	"context"
	"time"

	"flightcontrol/drivers"
	"flightcontrol/ferrors"
	"flightcontrol/pipeline"
	"flightcontrol/sbus"
)

// RCInputController reads raw SBUS bytes off the serial port and parses
// complete frames out of a rolling buffer, emitting RcChannelsInput.
type RCInputController struct {
	port drivers.SBUSPort
	buf  *sbus.Buffer
}

// NewRCInputController returns a controller reading from port.
func NewRCInputController(port drivers.SBUSPort) *RCInputController {
	return &RCInputController{port: port, buf: sbus.NewBuffer()}
}

// Delay reports that ReadOne itself blocks on the serial port.
func (c *RCInputController) Delay() (time.Duration, bool) { return 0, false }

// ReadOne pulls whatever bytes are available, pushes them into the rolling
// buffer, and tries to parse a frame. A parse failure is not fatal: the
// caller retries on the next read, same as spec section 7's Parse recovery.
func (c *RCInputController) ReadOne(ctx context.Context) (pipeline.Input, error) {
	raw, err := c.port.Read(ctx)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrDeviceIO, "sbus port read: %v", err)
	}
	c.buf.Push(raw)

	now := time.Now()
	pkt, ok, err := c.buf.Parse()
	if err != nil {
		return pipeline.RcChannelsInput{Channels: nil, Connected: false, Timestamp: now}, nil
	}
	if !ok {
		return pipeline.RcChannelsInput{Channels: nil, Connected: false, Timestamp: now}, nil
	}

	// sbus.Packet.NormalizedChannels yields [-1,1]; the autopilot's Data
	// Model contract (spec section 3) takes RC channels in [0,1], so remap
	// here rather than inside the wire-level sbus package.
	normalized := pkt.NormalizedChannels()
	var channels [16]float64
	for i, v := range normalized {
		channels[i] = (v + 1) / 2
	}

	connected := !pkt.FrameLost && !pkt.Failsafe
	return pipeline.RcChannelsInput{
		Channels:  &channels,
		Connected: connected,
		Timestamp: now,
	}, nil
}
