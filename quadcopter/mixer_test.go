package quadcopter

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMixHoverOutputsAreEqual(t *testing.T) {
	Convey("Given zero stabilization commands and half throttle", t, func() {
		m := Mixer{MinOutput: 0.025}
		outputs := m.Mix(RollPitchYaw[float64]{}, 0.5)

		Convey("all four motors receive the same output", func() {
			for _, v := range outputs {
				So(v, ShouldEqual, outputs[0])
			}
			// Each motor mixes to (0+3)/6=0.5, leaving maxThrottle=0.5, so the
			// requested 0.5 throttle is granted in full: 0.5+0.5=1.0.
			So(outputs[0], ShouldAlmostEqual, 1.0, 1e-9)
		})
	})
}

func TestMixNeverExceedsOneOrDropsBelowMinOutput(t *testing.T) {
	Convey("Given saturating stabilization commands at full throttle", t, func() {
		m := Mixer{MinOutput: 0.025}
		outputs := m.Mix(RollPitchYaw[float64]{Roll: 1, Pitch: 1, Yaw: 1}, 1.0)

		Convey("every output stays within [MinOutput, 1]", func() {
			for _, v := range outputs {
				So(v, ShouldBeGreaterThanOrEqualTo, m.MinOutput)
				So(v, ShouldBeLessThanOrEqualTo, 1.0)
			}
		})
	})
}

func TestMixReservesThrottleHeadroomForStabilization(t *testing.T) {
	Convey("Given a pitch command that alone would push an output past 1 at full throttle", t, func() {
		m := Mixer{MinOutput: 0.025}
		loThrottle := m.Mix(RollPitchYaw[float64]{Pitch: 1}, 0.1)
		hiThrottle := m.Mix(RollPitchYaw[float64]{Pitch: 1}, 1.0)

		Convey("increasing throttle never decreases any individual output", func() {
			for i := range loThrottle {
				So(hiThrottle[i], ShouldBeGreaterThanOrEqualTo, loThrottle[i])
			}
		})

		Convey("no output ever exceeds 1 regardless of throttle", func() {
			for _, v := range hiThrottle {
				So(v, ShouldBeLessThanOrEqualTo, 1.0)
			}
		})
	})
}
