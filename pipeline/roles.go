package pipeline

import (
	"context"
	"time"
)

// InputController reads one physical device at its native cadence. Delay
// returns the minimum gap to wait between two successive ReadOne calls; ok
// is false when the read itself blocks until data is available (e.g. the
// soft-arm channel) and no extra sleep should be inserted.
type InputController interface {
	Delay() (delay time.Duration, ok bool)
	ReadOne(ctx context.Context) (Input, error)
}

// Autopilot runs the control law on the freshest InputFrame snapshot and
// emits an OutputFrame. MaxControlLoopPeriod bounds the time between two
// emissions while frames are still queued after a drain — the system's
// backpressure valve (spec section 4.1). No output is produced while the
// inbound queue stays empty.
type Autopilot interface {
	MaxControlLoopPeriod() time.Duration
	OutputFrame(InputFrame) OutputFrame
}

// Dispatcher fans one OutputFrame out to the per-actuator destinations a
// vehicle defines.
type Dispatcher interface {
	Dispatch(OutputFrame)
}

// OutputController applies the most recent value of type T to hardware.
type OutputController[T any] interface {
	WriteOne(T) error
}

// Monitor is a passive, periodic worker with no feedback into the control
// loop: it only produces a line for the log sink.
type Monitor interface {
	Delay() time.Duration
	Sample(ctx context.Context) (string, error)
}
