package pid

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

var (
	d100ms  = 100 * time.Millisecond
	d1000ms = 1000 * time.Millisecond
)

func TestSetpoint(t *testing.T) {
	Convey("Given a freshly constructed controller", t, func() {
		c := New(0, 0, 0, 2.5443)

		Convey("Setpoint returns the constructed target", func() {
			So(c.Setpoint(), ShouldAlmostEqual, 2.5443)
		})
	})
}

func TestZeroGainsAlwaysOutputZero(t *testing.T) {
	Convey("Given a controller with all gains zero", t, func() {
		c := New(0, 0, 0, 3.5)
		t0 := time.Now()

		Convey("every estimate returns zero regardless of input or elapsed time", func() {
			So(c.Estimate(0.0, t0), ShouldAlmostEqual, 0)
			So(c.Estimate(4.3, t0), ShouldAlmostEqual, 0)
			So(c.Estimate(2.3, t0.Add(d100ms)), ShouldAlmostEqual, 0)
			So(c.Estimate(-2.0, t0.Add(d1000ms)), ShouldAlmostEqual, 0)
		})
	})
}

func TestProportionalOnly(t *testing.T) {
	Convey("Given a controller with only a P gain", t, func() {
		target := 12.4205
		c := New(3.4, 0, 0, target)
		t0 := time.Now()

		Convey("output tracks kp times the error on every sample", func() {
			So(c.Estimate(4.0, t0), ShouldAlmostEqual, (target-4.0)*3.4)
			So(c.Estimate(-2.0, t0.Add(d100ms)), ShouldAlmostEqual, (target-(-2.0))*3.4)
		})
	})
}

func TestIntegralOnly(t *testing.T) {
	Convey("Given a controller with only an I gain", t, func() {
		target := -5.48694
		c := New(0, 0.8, 0, target)
		t0 := time.Now()

		Convey("the integrator accumulates ki*dt*error across samples", func() {
			So(c.Estimate(4.0, t0), ShouldAlmostEqual, 0)

			errorIntegral := (target - 2.0) * 0.1 * 0.8
			So(c.Estimate(2.0, t0.Add(d100ms)), ShouldAlmostEqual, errorIntegral)

			So(c.Estimate(-7.0, t0.Add(d1000ms)), ShouldAlmostEqual,
				errorIntegral+(target-(-7.0))*0.9*0.8)
		})
	})
}

func TestDerivativeOnlyRawFormula(t *testing.T) {
	Convey("Given a controller with only a D gain and no D-term smoothing", t, func() {
		target := 453.246
		d := 12.34
		c := New(0, 0, d, target)
		c.dTermFilter.SetUnityGain()
		t0 := time.Now()

		Convey("the raw derivative-on-measurement formula holds exactly", func() {
			So(c.Estimate(423.0, t0), ShouldAlmostEqual, 0)
			So(c.Estimate(421.0, t0.Add(d100ms)), ShouldAlmostEqual, -d*(421.0-423.0)/0.1)
			So(c.Estimate(432.0, t0.Add(d1000ms)), ShouldAlmostEqual, -d*(432.0-421.0)/0.9)
		})
	})
}

func TestDerivativeWithDefaultFilterTracksTrendOnly(t *testing.T) {
	Convey("Given a controller with the default D-term filter", t, func() {
		target := 453.246
		c := New(0, 0, 12.34, target)
		t0 := time.Now()

		Convey("a falling measurement produces a positive (corrective) output", func() {
			first := c.Estimate(423.0, t0)
			So(first, ShouldAlmostEqual, 0)
			second := c.Estimate(421.0, t0.Add(d100ms))
			So(second, ShouldBeGreaterThan, 0)
		})
	})
}

func TestCombinedPIDGains(t *testing.T) {
	Convey("Given a controller with all three gains set", t, func() {
		target := -0.246
		p, i, d := 0.964, 0.543, 0.34
		c := New(p, i, d, target)
		c.dTermFilter.SetUnityGain()
		t0 := time.Now()

		Convey("the combined output matches the textbook PID formula", func() {
			So(c.Estimate(0.0432, t0), ShouldAlmostEqual, p*(target-0.0432))

			expected2 := p*(target-(-0.143)) + i*(target-(-0.143))*0.1 + d*-(-0.143-0.0432)/0.1
			So(c.Estimate(-0.143, t0.Add(d100ms)), ShouldAlmostEqual, expected2)

			expected3 := p*(target-(-0.248)) +
				i*(target-(-0.143))*0.1 +
				i*(target-(-0.248))*0.9 +
				d*-(-0.248-(-0.143))/0.9
			So(c.Estimate(-0.248, t0.Add(d1000ms)), ShouldAlmostEqual, expected3)
		})
	})
}

func TestOutputClamping(t *testing.T) {
	Convey("Given a controller with output limits", t, func() {
		target := -0.246
		c := New(0.964, 0.543, 0.34, target, WithLimits(0.04, 0.5))
		c.dTermFilter.SetUnityGain()
		t0 := time.Now()

		Convey("output never leaves [lo, hi]", func() {
			So(c.Estimate(0.0432, t0), ShouldAlmostEqual, 0.04)
			So(c.Estimate(-0.143, t0.Add(d100ms)), ShouldAlmostEqual, 0.5)
			So(c.Estimate(-0.248, t0.Add(d1000ms)), ShouldAlmostEqual, 0.04)
		})
	})
}

func TestIdempotentOnStaleTimestamp(t *testing.T) {
	Convey("Given a controller that has already estimated once", t, func() {
		c := New(1, 0, 0, 10)
		t0 := time.Now()
		first := c.Estimate(4, t0)

		Convey("calling Estimate again with the same or an earlier timestamp is a no-op", func() {
			So(c.Estimate(999, t0), ShouldAlmostEqual, first)
			So(c.Estimate(999, t0.Add(-time.Second)), ShouldAlmostEqual, first)
		})
	})
}

func TestSetSetpointResetsStateOnChange(t *testing.T) {
	Convey("Given a controller with accumulated integrator state", t, func() {
		c := New(0, 1, 0, 10)
		t0 := time.Now()
		c.Estimate(5, t0)
		c.Estimate(6, t0.Add(d100ms))

		Convey("changing the setpoint resets the integrator and last-sample memory", func() {
			c.SetSetpoint(20)
			So(c.Setpoint(), ShouldAlmostEqual, 20)
			out := c.Estimate(6, t0.Add(d1000ms))
			// No dt-derived I/D term on the first sample after a reset: output is P-only.
			So(out, ShouldAlmostEqual, 0)
		})
	})
}
