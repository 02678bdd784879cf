package ahrs

// Madgwick is the IMU-only variant of Madgwick's gradient-descent
// orientation filter: gravity is the only reference direction, there is no
// magnetometer correction.
type Madgwick struct {
	Beta float64
	q    Quaternion
}

// NewMadgwick returns a Madgwick fuser initialized to the identity
// orientation with the given gain.
func NewMadgwick(beta float64) *Madgwick {
	return &Madgwick{Beta: beta, q: Identity}
}

// Quaternion returns the current orientation estimate.
func (m *Madgwick) Quaternion() Quaternion { return m.q }

// UpdateIMU advances the orientation estimate by one gyro/accel sample
// taken dt seconds after the previous one.
func (m *Madgwick) UpdateIMU(gyr, acc Vector3, dt float64) error {
	n := acc.norm()
	if n == 0 {
		return ErrNormalization
	}
	ax, ay, az := acc.X/n, acc.Y/n, acc.Z/n

	w, x, y, z := m.q.W, m.q.X, m.q.Y, m.q.Z

	// Gradient of the gravity-alignment error, restricted to the
	// accelerometer rows of the full Madgwick residual F.
	f0 := 2*(x*z-w*y) - ax
	f1 := 2*(w*x+y*z) - ay
	f2 := 2*(0.5-x*x-y*y) - az

	step := Quaternion{
		W: -2*y*f0 + 2*x*f1,
		X: 2*z*f0 + 2*w*f1 - 4*x*f2,
		Y: -2*w*f0 + 2*z*f1 - 4*y*f2,
		Z: 2*x*f0 + 2*y*f1,
	}
	if sn := step.norm(); sn != 0 {
		step = step.scale(1 / sn)
	}

	gyrQ := Quaternion{X: gyr.X, Y: gyr.Y, Z: gyr.Z}
	qDot := m.q.mul(gyrQ).scale(0.5).add(step.scale(-m.Beta))

	m.q = m.q.add(qDot.scale(dt)).Normalize()
	return nil
}
