package dsp

// AlphaBetaGamma is a fixed-gain three-state (value, derivative,
// acceleration) tracker, applied per-axis to a Vector3 sample stream.
type AlphaBetaGamma struct {
	alpha, beta, gamma float64

	value, derivative, acceleration Vector3
}

// NewAlphaBetaGamma returns a tracker with zeroed state.
func NewAlphaBetaGamma(alpha, beta, gamma float64) *AlphaBetaGamma {
	return &AlphaBetaGamma{alpha: alpha, beta: beta, gamma: gamma}
}

// Seed initializes the tracked value directly from a measurement without
// running the predict/correct step, for callers that have no prior sample
// to derive a dt from. Derivative and acceleration stay at zero.
func (f *AlphaBetaGamma) Seed(value Vector3) {
	f.value = value
	f.derivative = Vector3{}
	f.acceleration = Vector3{}
}

// Update predicts the next state from the previous derivative and
// acceleration terms, corrects it against the measured value, and returns
// the corrected value estimate.
func (f *AlphaBetaGamma) Update(value Vector3, dt float64) Vector3 {
	predicted := f.value.
		add(f.derivative.scale(dt)).
		add(f.acceleration.scale(dt * dt))

	residual := value.sub(predicted)

	f.value = predicted.add(residual.scale(f.alpha))
	f.derivative = f.derivative.add(residual.scale(f.beta / dt))
	f.acceleration = f.acceleration.add(residual.scale(2 * f.gamma / (dt * dt)))

	return f.value
}

// AlphaBeta is the scalar two-state (value, derivative) counterpart of
// AlphaBetaGamma, used for the PID controller's derivative-term filter.
type AlphaBeta struct {
	alpha, beta float64

	value, derivative float64
}

// NewAlphaBeta returns a scalar tracker with zeroed state.
func NewAlphaBeta(alpha, beta float64) *AlphaBeta {
	return &AlphaBeta{alpha: alpha, beta: beta}
}

// SetUnityGain configures the filter to pass every sample through
// unmodified (alpha=1, beta=0), resetting its state. Used by callers that
// want the raw derivative-on-measurement formula without smoothing.
func (f *AlphaBeta) SetUnityGain() {
	f.alpha, f.beta = 1, 0
	f.value, f.derivative = 0, 0
}

// Update is the scalar analogue of AlphaBetaGamma.Update, without the
// acceleration state.
func (f *AlphaBeta) Update(value, dt float64) float64 {
	predicted := f.value + f.derivative*dt
	residual := value - predicted

	f.value = predicted + residual*f.alpha
	f.derivative = f.derivative + residual*f.beta/dt

	return f.value
}
