package ahrs

// Mahony is the IMU-only variant of Mahony's complementary orientation
// filter: a proportional-integral feedback loop that nudges the gyro
// integration toward the gravity direction implied by the accelerometer.
type Mahony struct {
	Kp, Ki float64
	eInt   Vector3
	q      Quaternion
}

// NewMahony returns a Mahony fuser initialized to the identity orientation
// with the given proportional and integral gains.
func NewMahony(kp, ki float64) *Mahony {
	return &Mahony{Kp: kp, Ki: ki, q: Identity}
}

// Quaternion returns the current orientation estimate.
func (m *Mahony) Quaternion() Quaternion { return m.q }

// UpdateIMU advances the orientation estimate by one gyro/accel sample
// taken dt seconds after the previous one. Unlike Madgwick, a zero-norm
// accelerometer is not an error here: the update is simply skipped and the
// quaternion is left unchanged, matching the upstream behavior.
func (m *Mahony) UpdateIMU(gyr, acc Vector3, dt float64) error {
	if acc.norm() == 0 {
		return nil
	}

	w, x, y, z := m.q.W, m.q.X, m.q.Y, m.q.Z

	// Predicted gravity direction implied by the current orientation.
	v := Vector3{
		X: 2 * (x*z - w*y),
		Y: 2 * (w*x + y*z),
		Z: w*w - x*x - y*y + z*z,
	}

	e := cross(acc, v)

	if m.Ki > 0 {
		m.eInt = m.eInt.add(e.scale(dt))
	} else {
		m.eInt = Vector3{}
	}

	corrected := gyr.add(e.scale(m.Kp)).add(m.eInt.scale(m.Ki))

	gyrQ := Quaternion{X: corrected.X, Y: corrected.Y, Z: corrected.Z}
	qDot := m.q.mul(gyrQ).scale(0.5)

	m.q = m.q.add(qDot.scale(dt)).Normalize()
	return nil
}

func cross(a, b Vector3) Vector3 {
	return Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func (v Vector3) add(o Vector3) Vector3   { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) scale(s float64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }
