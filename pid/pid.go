// Package pid implements a proportional-integral-derivative controller with
// derivative-on-measurement, a dedicated alpha-beta filter for the D term,
// and an optional user-supplied error function for wraparound quantities
// like heading.
package pid

import (
	"time"

	"flightcontrol/dsp"
)

// ErrorFunc overrides the default (target - input) error computation; used
// for quantities that wrap around, such as a compass heading.
type ErrorFunc func(target, input float64) float64

// Controller is a single-axis PID estimator. Zero value is not usable;
// construct with New.
type Controller struct {
	kp, ki, kd float64

	target float64

	errorIntegral float64

	hasLastInput      bool
	lastInput         float64
	lastInputInstant  time.Time
	hasLastOutput     bool
	lastOutput        float64

	hasLimits  bool
	limitLo    float64
	limitHi    float64

	errorFn ErrorFunc

	dTermFilter *dsp.AlphaBeta
}

// Option configures a Controller at construction time.
type Option func(*Controller)

// WithLimits clamps the controller's output to [lo, hi].
func WithLimits(lo, hi float64) Option {
	return func(c *Controller) {
		c.hasLimits = true
		c.limitLo, c.limitHi = lo, hi
	}
}

// WithErrorFunc overrides the default linear error with a custom function,
// e.g. one that wraps a 0-360 degree heading onto the shortest signed arc.
func WithErrorFunc(fn ErrorFunc) Option {
	return func(c *Controller) { c.errorFn = fn }
}

// New returns a Controller with gains (kp, ki, kd) and initial setpoint
// target.
func New(kp, ki, kd, target float64, opts ...Option) *Controller {
	c := &Controller{
		kp:          kp,
		ki:          ki,
		kd:          kd,
		target:      target,
		dTermFilter: dsp.NewAlphaBeta(0.008, 0.0005),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Setpoint returns the controller's current target.
func (c *Controller) Setpoint() float64 { return c.target }

// SetSetpoint changes the target. If the value actually changes, the
// integrator, last-input and last-output state are reset so the new
// setpoint starts from a clean slate.
func (c *Controller) SetSetpoint(target float64) {
	if target != c.target {
		c.target = target
		c.Reset()
	}
}

// Reset clears the integrator and last-sample memory without touching the
// setpoint.
func (c *Controller) Reset() {
	c.errorIntegral = 0
	c.hasLastOutput = false
	c.hasLastInput = false
}

func (c *Controller) computeError(input float64) float64 {
	if c.errorFn != nil {
		return c.errorFn(c.target, input)
	}
	return c.target - input
}

// Estimate computes the next output for a measurement taken at now. Calling
// Estimate twice with a timestamp that has not advanced past the last one
// is idempotent: the previously computed output is returned and no state
// is advanced.
func (c *Controller) Estimate(input float64, now time.Time) float64 {
	if c.hasLastInput && !c.lastInputInstant.Before(now) {
		return c.lastOutput
	}
	return c.estimateWithNewInput(input, now)
}

func (c *Controller) estimateWithNewInput(input float64, now time.Time) float64 {
	errVal := c.computeError(input)
	p := c.kp * errVal

	var i, d float64
	if c.hasLastInput {
		dt := now.Sub(c.lastInputInstant).Seconds()

		c.errorIntegral += c.ki * dt * errVal
		i = c.errorIntegral

		// d(err)/dt = -d(input)/dt
		filtered := c.dTermFilter.Update(c.kd*(c.lastInput-input), dt)
		d = filtered / dt
	}

	output := p + i + d
	if c.hasLimits {
		if output < c.limitLo {
			output = c.limitLo
		} else if output > c.limitHi {
			output = c.limitHi
		}
	}

	c.lastOutput = output
	c.hasLastOutput = true
	c.lastInput = input
	c.lastInputInstant = now
	c.hasLastInput = true

	return output
}
