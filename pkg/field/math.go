package field

// Lerp linearly interpolates between a and b by m.
func Lerp(a, b, m float64) float64 {
	return a + (b-a)*m
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SmoothStep is the cubic Hermite ramp 3v²-2v³ on a clamped [0,1] input.
// It is the easing used for crossfades and the default tween easing.
func SmoothStep(v float64) float64 {
	v = Clamp01(v)
	return v * v * (3 - 2*v)
}
