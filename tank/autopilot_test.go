package tank

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"flightcontrol/ahrs"
	"flightcontrol/pipeline"
)

func TestOutputFrameDisarmedWithoutSoftArm(t *testing.T) {
	Convey("Given no soft-armed input", t, func() {
		ap := New(1, 0, 0)
		frame := pipeline.InputFrame{}

		Convey("the output is neutral", func() {
			out := ap.OutputFrame(frame).(OutputFrame)
			So(out.LeftMotor, ShouldEqual, 0)
			So(out.RightMotor, ShouldEqual, 0)
		})
	})
}

func TestOutputFrameControlledMixesSticksDirectly(t *testing.T) {
	Convey("Given RC-armed (not autonomous) with a forward-right stick", t, func() {
		ap := New(1, 0, 0)
		channels := [16]float64{}
		channels[chDirection] = 0.75 // remapped to +0.5
		channels[chPower] = 1.0      // remapped to +1.0
		channels[chTriggerA] = 1.0

		frame := pipeline.InputFrame{
			SoftArmed:  &pipeline.SoftArmedInput{Armed: true},
			RcChannels: &pipeline.RcChannelsInput{Channels: &channels, Connected: true},
		}

		Convey("left motor outruns right motor in proportion to direction", func() {
			out := ap.OutputFrame(frame).(OutputFrame)
			So(out.LeftMotor, ShouldBeGreaterThan, out.RightMotor)
		})
	})
}

func TestOutputFrameAutonomousHoldsHeading(t *testing.T) {
	Convey("Given RC-armed and autonomous with the craft already on heading", t, func() {
		ap := New(1, 0, 0)
		channels := [16]float64{}
		channels[chPower] = 0.5 // remapped to 0.0
		channels[chTriggerA] = 1.0
		channels[chTriggerB] = 1.0
		channels[chHeading] = 0.0

		frame := pipeline.InputFrame{
			SoftArmed:  &pipeline.SoftArmedInput{Armed: true},
			RcChannels: &pipeline.RcChannelsInput{Channels: &channels, Connected: true},
			Orientation: &pipeline.OrientationInput{
				Quaternion: ahrs.Identity,
			},
		}

		Convey("both motors run near-symmetric power with zero heading error", func() {
			out := ap.OutputFrame(frame).(OutputFrame)
			So(out.LeftMotor, ShouldAlmostEqual, out.RightMotor, 1e-6)
		})
	})
}

func TestNormalizedPreservesRatioAndCapsMagnitude(t *testing.T) {
	Convey("Given motor speeds that together exceed the 0.5 magnitude cap", t, func() {
		f := OutputFrame{LeftMotor: 1, RightMotor: 1}.normalized()

		Convey("the ratio between motors is preserved and magnitude is capped", func() {
			So(f.LeftMotor, ShouldAlmostEqual, f.RightMotor, 1e-9)
			mag := f.LeftMotor*f.LeftMotor + f.RightMotor*f.RightMotor
			So(mag, ShouldAlmostEqual, 0.25, 1e-6)
		})
	})
}
