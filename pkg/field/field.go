// Package field defines the compiled sampling function type shared by the
// pattern model, the compiler, and the host, plus the small math and noise
// helpers the compiled closures are built from.
package field

// Field is the executable artifact produced by compilation: a pure height
// function over normalized grid coordinates. x and z are in [0,1], t is
// seconds since the pattern started, n is the grid resolution. The result
// is expected in [0,1] but is not clamped here; the host clamps before use.
type Field func(x, z, t float64, n int) float64

// Constant returns a Field that ignores its inputs and always yields v.
func Constant(v float64) Field {
	return func(x, z, t float64, n int) float64 { return v }
}

// Zero is the fallback Field for unrecognized node kinds.
var Zero = Constant(0)
