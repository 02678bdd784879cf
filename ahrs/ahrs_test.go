package ahrs

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMadgwickSmoke(t *testing.T) {
	Convey("Given a Madgwick filter seeded with a known orientation", t, func() {
		m := &Madgwick{Beta: 0.1, q: Quaternion{W: 0.7209, X: 0.6922, Y: -0.0183, Z: 0.0278}}
		dt := 1.0 / 256.0
		gyr := Vector3{X: 68.75 * math.Pi / 180, Y: 34.25 * math.Pi / 180, Z: 3.0625 * math.Pi / 180}
		acc := Vector3{X: 0.0664, Y: 0.9795, Z: -0.0127}

		Convey("one update moves the quaternion to the expected value", func() {
			err := m.UpdateIMU(gyr, acc, dt)
			So(err, ShouldBeNil)
			So(m.q.W, ShouldAlmostEqual, 0.72089, 1e-4)
			So(m.q.X, ShouldAlmostEqual, 0.69225, 1e-4)
			So(m.q.Y, ShouldAlmostEqual, -0.01829, 1e-4)
			So(m.q.Z, ShouldAlmostEqual, 0.02778, 1e-4)
		})
	})
}

func TestMadgwickZeroAccelError(t *testing.T) {
	Convey("Given a Madgwick filter and a zero-magnitude accelerometer reading", t, func() {
		m := NewMadgwick(0.1)

		Convey("UpdateIMU returns ErrNormalization and leaves the quaternion untouched", func() {
			before := m.Quaternion()
			err := m.UpdateIMU(Vector3{X: 1}, Vector3{}, 1.0/256)
			So(err, ShouldEqual, ErrNormalization)
			So(m.Quaternion(), ShouldResemble, before)
		})
	})
}

func TestFusersPreserveUnitNorm(t *testing.T) {
	Convey("Given either fuser driven by nonzero samples", t, func() {
		fusers := []Fuser{NewMadgwick(0.1), NewMahony(2.0, 0.1)}
		gyr := Vector3{X: 0.2, Y: -0.1, Z: 0.05}
		acc := Vector3{X: 0.1, Y: 0.05, Z: -9.81}

		Convey("every successful update leaves the quaternion at unit norm", func() {
			for _, f := range fusers {
				for i := 0; i < 20; i++ {
					So(f.UpdateIMU(gyr, acc, 1.0/500), ShouldBeNil)
				}
				q := f.Quaternion()
				n := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
				So(n, ShouldAlmostEqual, 1, 1e-6)
			}
		})
	})
}

func TestQuaternionNormalizeIsNoOpOnUnitQuaternion(t *testing.T) {
	Convey("Given an already-unit quaternion", t, func() {
		q := Quaternion{W: 0.7209, X: 0.6922, Y: -0.0183, Z: 0.0278}.Normalize()

		Convey("normalizing it again changes nothing within tolerance", func() {
			q2 := q.Normalize()
			So(q2.W, ShouldAlmostEqual, q.W, 1e-7)
			So(q2.X, ShouldAlmostEqual, q.X, 1e-7)
			So(q2.Y, ShouldAlmostEqual, q.Y, 1e-7)
			So(q2.Z, ShouldAlmostEqual, q.Z, 1e-7)
		})
	})
}
