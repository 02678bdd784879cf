package pipeline

import (
	"context"
	"fmt"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
)

// RunInputController drives the read/ship/sleep loop described in spec
// section 4.1: read, send the result, then sleep for the controller's
// declared delay (if any). Read errors are logged and the loop continues —
// they never terminate the worker.
func RunInputController(ctx context.Context, ic InputController, out chan<- Input, sink LogSink) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		input, err := ic.ReadOne(ctx)
		if err != nil {
			sink.Log(fmt.Sprintf("input controller read error: %v", err))
		} else {
			select {
			case out <- input:
			case <-ctx.Done():
				return
			}
		}

		if delay, ok := ic.Delay(); ok {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
		}
	}
}

// RunCollector calls Collect on every received Input and ships the
// resulting frame, so frame production rate equals input arrival rate.
func RunCollector(ctx context.Context, c *Collector, in <-chan Input, out chan<- InputFrame) {
	for input := range channerics.OrDone(ctx.Done(), in) {
		frame := c.Collect(input)
		select {
		case out <- frame:
		case <-ctx.Done():
			return
		}
	}
}

// RunAutopilot drives the autopilot's backpressure valve: drain the inbound
// queue down to the newest frame, then run the control law on it and emit
// when the queue is empty after the drain, or when MaxControlLoopPeriod has
// passed since the last emission even though frames are still queued.
// Under sustained saturation this emits every period and silently drops the
// intermediate frames; that is deliberate (spec section 9 Open Questions).
func RunAutopilot(ctx context.Context, ap Autopilot, in <-chan InputFrame, out chan<- OutputFrame) {
	period := ap.MaxControlLoopPeriod()
	var lastEmit time.Time

	for {
		var frame InputFrame
		select {
		case f, ok := <-in:
			if !ok {
				return
			}
			frame = f
		case <-ctx.Done():
			return
		}

	drain:
		for {
			select {
			case next, ok := <-in:
				if !ok {
					break drain
				}
				frame = next
			default:
				break drain
			}
		}

		if len(in) == 0 || time.Since(lastEmit) >= period {
			output := ap.OutputFrame(frame)
			select {
			case out <- output:
			case <-ctx.Done():
				return
			}
			lastEmit = time.Now()
		}
	}
}

// RunDispatcher fans every OutputFrame out to its vehicle-specific
// per-actuator destinations.
func RunDispatcher(ctx context.Context, d Dispatcher, in <-chan OutputFrame) {
	for frame := range channerics.OrDone(ctx.Done(), in) {
		d.Dispatch(frame)
	}
}

// RunOutputController applies every received value to hardware, logging and
// continuing on write error.
func RunOutputController[T any](ctx context.Context, oc OutputController[T], in <-chan T, sink LogSink) {
	for value := range channerics.OrDone(ctx.Done(), in) {
		if err := oc.WriteOne(value); err != nil {
			sink.Log(fmt.Sprintf("output controller write error: %v", err))
		}
	}
}

// RunMonitor samples the monitor on its own ticker, independent of the
// control loop, logging either the sample or the error.
func RunMonitor(ctx context.Context, m Monitor, sink LogSink) {
	for range channerics.NewTicker(ctx.Done(), m.Delay()) {
		line, err := m.Sample(ctx)
		if err != nil {
			sink.Log(fmt.Sprintf("monitor sample error: %v", err))
		} else {
			sink.Log(line)
		}
	}
}

// FanIn merges several input-controller channels into the single stream the
// collector consumes, tolerating arbitrary interleaving across channels
// (spec section 5: "no cross-channel ordering").
func FanIn(done <-chan struct{}, channels ...<-chan Input) <-chan Input {
	return channerics.Merge(done, channels...)
}
