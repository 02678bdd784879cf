package calibration

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"flightcontrol/drivers"
	"flightcontrol/dsp"
)

func TestFlatTrimAveragesAndSubtractsGravity(t *testing.T) {
	Convey("Given a level, motionless craft with a known accelerometer bias", t, func() {
		bus := drivers.NewFakeIMUBus([]drivers.IMUSample{
			{Acc: dsp.Vector3{X: 0.1, Y: -0.2, Z: gravity + 0.3}, Gyr: dsp.Vector3{X: 0.01, Y: 0.02, Z: -0.01}},
		})

		accOffset, gyrOffset, err := FlatTrim(context.Background(), bus)

		Convey("the offsets match the (repeated) sample minus the gravity constant", func() {
			So(err, ShouldBeNil)
			So(accOffset.X, ShouldAlmostEqual, 0.1, 1e-9)
			So(accOffset.Y, ShouldAlmostEqual, -0.2, 1e-9)
			So(accOffset.Z, ShouldAlmostEqual, 0.3, 1e-9)
			So(gyrOffset.X, ShouldAlmostEqual, 0.01, 1e-9)
			So(gyrOffset.Y, ShouldAlmostEqual, 0.02, 1e-9)
			So(gyrOffset.Z, ShouldAlmostEqual, -0.01, 1e-9)
		})
	})
}
