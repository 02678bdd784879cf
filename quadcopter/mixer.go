package quadcopter

// Mixer maps (roll, pitch, yaw) stabilization commands and a throttle
// command onto four motor outputs for the X-frame layout, reserving
// throttle headroom so stabilization always has authority (spec section
// 4.6).
type Mixer struct {
	// MinOutput is the configured minimum idle duty cycle (e.g. 0.025):
	// ESCs must never dip below their arming minimum while armed.
	MinOutput float64
}

// Mix computes the four motor duty cycles. pid outputs are each in
// [-1,1]; throttle is in [0,1]. Every output is guaranteed to lie in
// [MinOutput, 1].
func (m Mixer) Mix(pid RollPitchYaw[float64], throttle float64) [EscChannels]float64 {
	// Raw range is [-3,+3]: pitch/roll/yaw each contribute at most 1.
	raw := [EscChannels]float64{
		pid.Pitch - pid.Roll + pid.Yaw,
		-pid.Pitch - pid.Roll - pid.Yaw,
		-pid.Pitch + pid.Roll + pid.Yaw,
		pid.Pitch + pid.Roll - pid.Yaw,
	}

	var outputs [EscChannels]float64
	maxOutput := 0.0
	for i, r := range raw {
		outputs[i] = (r + 3) / 6
		if outputs[i] > maxOutput {
			maxOutput = outputs[i]
		}
	}

	maxThrottle := 1 - maxOutput
	effectiveThrottle := throttle
	if effectiveThrottle > maxThrottle {
		effectiveThrottle = maxThrottle
	}

	for i := range outputs {
		v := outputs[i] + effectiveThrottle
		if v < m.MinOutput {
			v = m.MinOutput
		} else if v > 1 {
			v = 1
		}
		outputs[i] = v
	}

	return outputs
}
