package quadcopter

import (
	"flightcontrol/drivers"
	"flightcontrol/pipeline"
)

// Dispatcher fans a quadcopter OutputFrame out to the LED channel and the
// four ESC duty-cycle channels.
type Dispatcher struct {
	led  chan<- *drivers.LEDColor
	escs [EscChannels]chan<- float64
}

// NewDispatcher returns a Dispatcher writing to led and escs. Each channel
// should be buffered (capacity 1 is typical) so Dispatch never blocks the
// autopilot loop on a slow output controller for more than one frame.
func NewDispatcher(led chan<- *drivers.LEDColor, escs [EscChannels]chan<- float64) *Dispatcher {
	return &Dispatcher{led: led, escs: escs}
}

// Dispatch sends frame's LED color and ESC duty cycles to their respective
// channels. The type assertion is safe: the quadcopter's Dispatcher is only
// ever wired to the quadcopter's own Autopilot.
func (d *Dispatcher) Dispatch(frame pipeline.OutputFrame) {
	qf, ok := frame.(OutputFrame)
	if !ok {
		return
	}

	d.led <- qf.LED
	for i, ch := range d.escs {
		ch <- qf.EscChannels[i]
	}
}
