package ahrs

import "flightcontrol/ferrors"

// ErrNormalization is returned when an update cannot proceed because a
// measurement vector that must be normalized has zero magnitude. It wraps
// ferrors.ErrNormalization, so errors.Is matches either sentinel.
var ErrNormalization = ferrors.Wrap(ferrors.ErrNormalization, "ahrs: cannot normalize zero-magnitude vector")

// Fuser is the shared contract for the IMU-only attitude fusers: Madgwick
// and Mahony. Both advance an internal quaternion in place and guarantee
// unit norm after every successful update.
type Fuser interface {
	UpdateIMU(gyr, acc Vector3, dt float64) error
	Quaternion() Quaternion
}
