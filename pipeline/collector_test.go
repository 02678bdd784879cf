package pipeline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"flightcontrol/dsp"
)

func TestCollectUpdatesOnlyTheMatchingField(t *testing.T) {
	Convey("Given a fresh collector", t, func() {
		c := NewCollector(NopSink{})

		Convey("an ImuInput only updates the Imu field", func() {
			frame := c.Collect(ImuInput{Acc: dsp.Vector3{X: 1, Y: 2, Z: 3}})
			So(frame.Imu, ShouldNotBeNil)
			So(frame.RcChannels, ShouldBeNil)
		})

		Convey("applying the same SoftArmedInput twice yields identical frames", func() {
			first := c.Collect(SoftArmedInput{Armed: true})
			second := c.Collect(SoftArmedInput{Armed: true})
			So(*first.SoftArmed, ShouldResemble, *second.SoftArmed)
		})

		Convey("an unknown input leaves the frame unchanged and is logged", func() {
			before := c.Collect(SoftArmedInput{Armed: true})
			after := c.Collect(unknownInput{})
			So(after, ShouldResemble, before)
		})
	})
}

// unknownInput is a stand-in Input variant the collector has no case for,
// exercising the default/unhandled branch.
type unknownInput struct{}

func (unknownInput) isInput() {}
