package signal

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

const eps = 1e-6

func TestTweenEndpoints(t *testing.T) {
	f := Tween(0, 1, 2, nil)

	if got := f(0, 0, 0, 16); got != 0 {
		t.Errorf("tween at t=0 = %v, want 0", got)
	}
	if got := f(0, 0, 2, 16); got != 1 {
		t.Errorf("tween at t=duration = %v, want exactly 1", got)
	}
	if got := f(0, 0, 100, 16); got != 1 {
		t.Errorf("tween past duration = %v, want exactly 1", got)
	}
	mid := f(0, 0, 1, 16)
	if math.Abs(mid-0.5) > 1e-3 {
		t.Errorf("smoothstep tween at midpoint = %v, want ~0.5", mid)
	}
}

func TestTweenZeroDuration(t *testing.T) {
	f := Tween(0.2, 0.9, 0, nil)
	if got := f(0, 0, 0, 16); got != 0.9 {
		t.Errorf("zero-duration tween = %v, want target 0.9", got)
	}
	f = Tween(0.2, 0.9, -3, nil)
	if got := f(0, 0, 5, 16); got != 0.9 {
		t.Errorf("negative-duration tween = %v, want target 0.9", got)
	}
}

func TestTweenLinearEasing(t *testing.T) {
	f := Tween(0, 1, 4, ease.Linear)
	if got := f(0, 0, 1, 16); math.Abs(got-0.25) > 1e-3 {
		t.Errorf("linear tween at quarter = %v, want 0.25", got)
	}
}

func TestNamedEasings(t *testing.T) {
	for _, name := range []string{"linear", "quad", "cubic", "elastic", "bounce", ""} {
		fn := Named(name)
		if fn == nil {
			t.Errorf("Named(%q) returned nil", name)
		}
	}
}

func TestOsc(t *testing.T) {
	f := Osc(1, 0, 1)
	if got := f(0, 0, 0, 16); math.Abs(got-0.5) > eps {
		t.Errorf("osc at t=0 = %v, want 0.5", got)
	}
	if got := f(0, 0, 0.25, 16); math.Abs(got-1) > eps {
		t.Errorf("osc at quarter cycle = %v, want 1", got)
	}
	if got := f(0, 0, 0.75, 16); math.Abs(got-0) > eps {
		t.Errorf("osc at three quarters = %v, want 0", got)
	}

	// lo/hi remapping
	g := Osc(1, 0.2, 0.8)
	if got := g(0, 0, 0.25, 16); math.Abs(got-0.8) > eps {
		t.Errorf("osc hi = %v, want 0.8", got)
	}
}

func TestSaw(t *testing.T) {
	f := Saw(2, 0, 1)
	if got := f(0, 0, 0, 16); got != 0 {
		t.Errorf("saw at t=0 = %v, want 0", got)
	}
	if got := f(0, 0, 0.25, 16); math.Abs(got-0.5) > eps {
		t.Errorf("saw at t=0.25 (freq 2) = %v, want 0.5", got)
	}
	// Wraps each cycle.
	if got := f(0, 0, 0.5, 16); math.Abs(got) > eps {
		t.Errorf("saw at cycle boundary = %v, want 0", got)
	}
}

func TestPulse(t *testing.T) {
	f := Pulse(1, 0.5)
	if got := f(0, 0, 0.1, 16); got != 1 {
		t.Errorf("pulse in duty window = %v, want 1", got)
	}
	if got := f(0, 0, 0.6, 16); got != 0 {
		t.Errorf("pulse past duty window = %v, want 0", got)
	}
	// Narrow duty cycle.
	g := Pulse(1, 0.1)
	if got := g(0, 0, 0.5, 16); got != 0 {
		t.Errorf("narrow pulse = %v, want 0", got)
	}
}

func TestSignalsIgnoreSpatialInputs(t *testing.T) {
	f := Osc(3, 0, 1)
	a := f(0, 0, 0.37, 2)
	b := f(1, 0.5, 0.37, 64)
	if a != b {
		t.Errorf("signal varied with spatial inputs: %v != %v", a, b)
	}
}
