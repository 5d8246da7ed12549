// Package signal provides time-domain generator functions. Each returns a
// field.Field that ignores the spatial inputs, so signals can stand in for
// constants anywhere a pattern argument is expected.
package signal

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/chazu/pinfield/pkg/field"
)

// SmoothStep is the default tween easing, expressed as an ease.TweenFunc
// so user-selected gween easings and the default are interchangeable.
func SmoothStep(t, b, c, d float32) float32 {
	p := t / d
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	s := p * p * (3 - 2*p)
	return b + c*s
}

// Named returns the easing registered under the given name, or SmoothStep
// when the name is unknown or empty.
func Named(name string) ease.TweenFunc {
	switch name {
	case "linear":
		return ease.Linear
	case "quad":
		return ease.InOutQuad
	case "cubic":
		return ease.InOutCubic
	case "elastic":
		return ease.OutElastic
	case "bounce":
		return ease.OutBounce
	default:
		return SmoothStep
	}
}

// Tween interpolates from one value to another over duration seconds and
// then holds the target. A nil fn selects SmoothStep. For t at or past the
// duration, and for non-positive durations, the target is returned exactly.
func Tween(from, to, duration float64, fn ease.TweenFunc) field.Field {
	if fn == nil {
		fn = SmoothStep
	}
	return func(x, z, t float64, n int) float64 {
		if duration <= 0 || t >= duration {
			return to
		}
		if t < 0 {
			t = 0
		}
		return float64(fn(float32(t), float32(from), float32(to-from), float32(duration)))
	}
}

// Osc is a sine oscillator between lo and hi at freq cycles per second.
func Osc(freq, lo, hi float64) field.Field {
	return func(x, z, t float64, n int) float64 {
		return lo + (hi-lo)*(math.Sin(2*math.Pi*freq*t)*0.5+0.5)
	}
}

// Saw is a rising sawtooth between lo and hi at freq cycles per second.
func Saw(freq, lo, hi float64) field.Field {
	return func(x, z, t float64, n int) float64 {
		p := math.Mod(freq*t, 1)
		if p < 0 {
			p += 1
		}
		return lo + (hi-lo)*p
	}
}

// Pulse is a square wave: 1 for the first duty fraction of each cycle,
// 0 for the rest.
func Pulse(freq, duty float64) field.Field {
	return func(x, z, t float64, n int) float64 {
		p := math.Mod(freq*t, 1)
		if p < 0 {
			p += 1
		}
		if p < duty {
			return 1
		}
		return 0
	}
}
