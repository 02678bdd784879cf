package tank

import "flightcontrol/pipeline"

// Dispatcher fans a tank OutputFrame out to the left/right motor channels.
type Dispatcher struct {
	left, right chan<- float64
}

// NewDispatcher returns a Dispatcher writing to left and right.
func NewDispatcher(left, right chan<- float64) *Dispatcher {
	return &Dispatcher{left: left, right: right}
}

// Dispatch sends frame's motor speeds to their respective channels.
func (d *Dispatcher) Dispatch(frame pipeline.OutputFrame) {
	tf, ok := frame.(OutputFrame)
	if !ok {
		return
	}
	d.left <- tf.LeftMotor
	d.right <- tf.RightMotor
}
