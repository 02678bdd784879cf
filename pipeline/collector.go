package pipeline

import "fmt"

// Collector folds the stream of heterogeneous Inputs into the latest
// InputFrame snapshot. It is intentionally vehicle-agnostic: both the
// quadcopter and the tank read whichever fields of InputFrame they care
// about and ignore the rest.
type Collector struct {
	frame InputFrame
	sink  LogSink
}

// NewCollector returns a Collector with an empty frame.
func NewCollector(sink LogSink) *Collector {
	return &Collector{sink: sink}
}

// Collect updates the snapshot's matching field with in and returns a clone
// of the frame. Applying the same input twice (e.g. duplicate
// SoftArmedInput(true) messages) yields identical frames, since the update
// is a plain pointer replacement, not an accumulation.
func (c *Collector) Collect(in Input) InputFrame {
	switch v := in.(type) {
	case RcChannelsInput:
		c.frame.RcChannels = &v
	case ImuInput:
		c.frame.Imu = &v
	case OrientationInput:
		c.frame.Orientation = &v
	case NavioAdcInput:
		c.frame.NavioAdc = &v
	case SoftArmedInput:
		c.frame.SoftArmed = &v
	case AltitudeInput:
		c.frame.Altitude = &v
	case TemperatureInput:
		c.frame.Temperature = &v
	default:
		if c.sink != nil {
			c.sink.Log(fmt.Sprintf("collector: unhandled input %T", in))
		}
	}
	return c.frame.Clone()
}
