package pattern

import (
	"math"

	"github.com/chazu/pinfield/pkg/field"
)

// orConst substitutes a constant default for an absent argument. Factories
// perform no validation beyond this default-filling.
func orConst(v Value, def float64) Value {
	if v == nil {
		return Constant(def)
	}
	return v
}

// ---------------------------------------------------------------------------
// Primitive factories
// ---------------------------------------------------------------------------

// Flat produces a uniform height field. Default h is 0.5.
func (s *Session) Flat(h Value) *Node {
	return s.NewNode(KindFlat, map[string]Value{"h": orConst(h, 0.5)}, nil)
}

// Wave produces a product of sine waves along x and cosine waves along z.
func (s *Session) Wave(fx, fz Value) *Node {
	return s.NewNode(KindWave, map[string]Value{
		"fx": orConst(fx, 1),
		"fz": orConst(fz, 1),
	}, nil)
}

// Ripple produces concentric rings around a center point.
func (s *Session) Ripple(cx, cz, freq Value) *Node {
	return s.NewNode(KindRipple, map[string]Value{
		"cx":   orConst(cx, 0.5),
		"cz":   orConst(cz, 0.5),
		"freq": orConst(freq, 3),
	}, nil)
}

// Checker produces an alternating high/low checkerboard.
func (s *Session) Checker(size Value) *Node {
	return s.NewNode(KindChecker, map[string]Value{"size": orConst(size, 5)}, nil)
}

// Gridlines raises every pin whose row or column index is a multiple of
// spacing.
func (s *Session) Gridlines(spacing Value) *Node {
	return s.NewNode(KindGridlines, map[string]Value{"spacing": orConst(spacing, 5)}, nil)
}

// Pyramid produces a square pyramid peaking at the grid center.
func (s *Session) Pyramid() *Node {
	return s.NewNode(KindPyramid, map[string]Value{}, nil)
}

// Noise produces drifting Perlin noise.
func (s *Session) Noise(scale Value) *Node {
	return s.NewNode(KindNoise, map[string]Value{"scale": orConst(scale, 4)}, nil)
}

// Simplex produces drifting OpenSimplex noise.
func (s *Session) Simplex(scale Value) *Node {
	return s.NewNode(KindSimplex, map[string]Value{"scale": orConst(scale, 4)}, nil)
}

// Map wraps a raw callback directly as a pattern.
func (s *Session) Map(fn field.Field) *Node {
	return s.NewNode(KindMap, map[string]Value{"fn": Dynamic(fn)}, nil)
}

// Sleep holds the previous pattern in a sequence for the given duration.
// Without a duration it holds forever and stops the sequence from looping.
func (s *Session) Sleep(duration Value) *Node {
	return s.NewNode(KindSleep, map[string]Value{
		"duration": orConst(duration, math.Inf(1)),
	}, nil)
}

// Seq plays patterns one after another on a shared timeline, crossfading
// between neighbors.
func (s *Session) Seq(patterns ...*Node) *Node {
	return s.NewNode(KindSeq, map[string]Value{}, patterns)
}

// ---------------------------------------------------------------------------
// Transform methods
//
// Each wraps the receiver as the source of a new node; the receiver is
// never mutated.
// ---------------------------------------------------------------------------

// Rotate rotates the sampling plane around the grid center by angle radians.
func (n *Node) Rotate(angle Value) *Node {
	return n.session.NewNode(KindRotate, map[string]Value{
		"source": n,
		"angle":  orConst(angle, 0),
	}, nil)
}

// Scale stretches the pattern about the grid center. sz defaults to sx.
func (n *Node) Scale(sx, sz Value) *Node {
	sx = orConst(sx, 1)
	if sz == nil {
		sz = sx
	}
	return n.session.NewNode(KindScale, map[string]Value{
		"source": n,
		"sx":     sx,
		"sz":     sz,
	}, nil)
}

// Offset shifts the pattern by (ox, oz) in normalized coordinates.
func (n *Node) Offset(ox, oz Value) *Node {
	return n.session.NewNode(KindOffset, map[string]Value{
		"source": n,
		"ox":     orConst(ox, 0),
		"oz":     orConst(oz, 0),
	}, nil)
}

// Slow stretches the pattern's time axis by factor.
func (n *Node) Slow(factor Value) *Node {
	return n.session.NewNode(KindSlow, map[string]Value{
		"source": n,
		"factor": orConst(factor, 2),
	}, nil)
}

// Fast compresses the pattern's time axis by factor.
func (n *Node) Fast(factor Value) *Node {
	return n.session.NewNode(KindFast, map[string]Value{
		"source": n,
		"factor": orConst(factor, 2),
	}, nil)
}

// Ease passes the source height through a smoothstep curve.
func (n *Node) Ease() *Node {
	return n.session.NewNode(KindEase, map[string]Value{"source": n}, nil)
}

// Inv flips the source height: h -> 1-h.
func (n *Node) Inv() *Node {
	return n.session.NewNode(KindInv, map[string]Value{"source": n}, nil)
}

// Time pins the subtree's duration to the given number of seconds. Inside
// a sequence this rescales the subtree's internal time axis so one
// playthrough lasts exactly that long.
func (n *Node) Time(seconds float64) *Node {
	return n.session.NewNode(KindTime, map[string]Value{
		"source":  n,
		"seconds": Constant(seconds),
	}, nil)
}

// Blend mixes the receiver with b by mix (0 = all receiver, 1 = all b).
func (n *Node) Blend(b *Node, mix Value) *Node {
	return n.session.NewNode(KindBlend, map[string]Value{
		"a":   n,
		"b":   b,
		"mix": orConst(mix, 0.5),
	}, nil)
}

// Add sums the receiver and b, clamped to [0,1].
func (n *Node) Add(b *Node) *Node {
	return n.session.NewNode(KindAdd, map[string]Value{"a": n, "b": b}, nil)
}

// Mul multiplies the receiver and b.
func (n *Node) Mul(b *Node) *Node {
	return n.session.NewNode(KindMul, map[string]Value{"a": n, "b": b}, nil)
}

// ---------------------------------------------------------------------------
// Standalone combinators
//
// Equivalent to the instance methods, for users who prefer functional
// composition over chaining.
// ---------------------------------------------------------------------------

// Blend mixes a and b by mix.
func Blend(a, b *Node, mix Value) *Node {
	return a.Blend(b, mix)
}

// Add sums a and b, clamped to [0,1].
func Add(a, b *Node) *Node {
	return a.Add(b)
}

// Mul multiplies a and b.
func Mul(a, b *Node) *Node {
	return a.Mul(b)
}

// Inv flips a.
func Inv(a *Node) *Node {
	return a.Inv()
}

// Ease passes a through a smoothstep curve.
func Ease(a *Node) *Node {
	return a.Ease()
}
