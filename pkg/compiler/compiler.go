// Package compiler translates a pattern tree into a single executable
// sampling function. Compilation is a pure, single-pass recursive walk:
// every argument is resolved once, and the returned closures capture the
// resolved sub-functions so that per-sample evaluation allocates nothing.
package compiler

import (
	"errors"
	"math"

	"github.com/chazu/pinfield/pkg/field"
	"github.com/chazu/pinfield/pkg/pattern"
)

// ErrNoPattern is returned when there is nothing to compile, i.e. the
// script produced no surviving root.
var ErrNoPattern = errors.New("compiler: no pattern to compile")

// Context carries compilation settings.
type Context struct {
	// SecondsPerCycle is the duration assigned to any sequence item that
	// has no explicit override. Non-positive values fall back to 1.
	SecondsPerCycle float64
}

// compiled pairs a sampling function with the timeline metadata its
// ancestors need: how long one playthrough lasts (possibly +Inf), and for
// sequences, whether the timeline should loop at the top level.
type compiled struct {
	fn       field.Field
	duration float64
	loop     bool
}

// Compile translates the tree rooted at root into a sampling function.
// Only here, at the outermost call, is modulo-looping applied: a top-level
// sequence with a finite positive duration repeats forever. Nested
// sequences play exactly once across their allotted span.
func Compile(root *pattern.Node, ctx Context) (field.Field, error) {
	if root == nil {
		return nil, ErrNoPattern
	}
	if ctx.SecondsPerCycle <= 0 {
		ctx.SecondsPerCycle = 1
	}
	c := compileNode(root, ctx)
	if root.Kind == pattern.KindSeq && c.loop && c.duration > 0 && !math.IsInf(c.duration, 1) {
		inner, total := c.fn, c.duration
		return func(x, z, t float64, n int) float64 {
			return inner(x, z, math.Mod(t, total), n)
		}, nil
	}
	return c.fn, nil
}

// resolve turns any argument value into a compiled sampling function.
// Constants and signal functions take on the default cycle duration;
// subtrees report their own.
func resolve(v pattern.Value, ctx Context) compiled {
	switch a := v.(type) {
	case pattern.Constant:
		return compiled{fn: field.Constant(float64(a)), duration: ctx.SecondsPerCycle}
	case pattern.Dynamic:
		return compiled{fn: field.Field(a), duration: ctx.SecondsPerCycle}
	case *pattern.Node:
		return compileNode(a, ctx)
	default:
		return compiled{fn: field.Zero, duration: ctx.SecondsPerCycle}
	}
}

// constValue extracts a plain numeric argument, when it is one.
func constValue(v pattern.Value) (float64, bool) {
	if c, ok := v.(pattern.Constant); ok {
		return float64(c), true
	}
	return 0, false
}

// compileNode dispatches on the node kind. An unrecognized kind compiles
// to the constant-zero function rather than failing: the render loop stays
// alive even when the tree is malformed.
func compileNode(n *pattern.Node, ctx Context) compiled {
	spc := ctx.SecondsPerCycle

	switch n.Kind {

	// --- primitives -----------------------------------------------------

	case pattern.KindFlat:
		h := resolve(n.Arg("h"), ctx)
		return compiled{fn: h.fn, duration: spc}

	case pattern.KindWave:
		fx := resolve(n.Arg("fx"), ctx)
		fz := resolve(n.Arg("fz"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			sx := math.Sin(2*math.Pi*fx.fn(x, z, t, gn)*x)*0.5 + 0.5
			cz := math.Cos(2*math.Pi*fz.fn(x, z, t, gn)*z)*0.5 + 0.5
			return sx * cz
		}, duration: spc}

	case pattern.KindRipple:
		cx := resolve(n.Arg("cx"), ctx)
		cz := resolve(n.Arg("cz"), ctx)
		freq := resolve(n.Arg("freq"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			dx := x - cx.fn(x, z, t, gn)
			dz := z - cz.fn(x, z, t, gn)
			d := math.Sqrt(dx*dx + dz*dz)
			return math.Sin(2*math.Pi*freq.fn(x, z, t, gn)*d)*0.5 + 0.5
		}, duration: spc}

	case pattern.KindChecker:
		size := resolve(n.Arg("size"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			s := size.fn(x, z, t, gn)
			if int(math.Floor(x*s)+math.Floor(z*s))%2 == 0 {
				return 0.9
			}
			return 0.1
		}, duration: spc}

	case pattern.KindGridlines:
		spacing := resolve(n.Arg("spacing"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			sp := spacing.fn(x, z, t, gn)
			col := math.Round(x * float64(gn-1))
			row := math.Round(z * float64(gn-1))
			if math.Mod(col, sp) == 0 || math.Mod(row, sp) == 0 {
				return 1
			}
			return 0.05
		}, duration: spc}

	case pattern.KindPyramid:
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			return 1 - 2*math.Max(math.Abs(x-0.5), math.Abs(z-0.5))
		}, duration: spc}

	case pattern.KindNoise:
		scale := resolve(n.Arg("scale"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			s := scale.fn(x, z, t, gn)
			return field.Perlin2(x*s+t*0.3, z*s+t*0.2)
		}, duration: spc}

	case pattern.KindSimplex:
		scale := resolve(n.Arg("scale"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			s := scale.fn(x, z, t, gn)
			return field.Simplex2(x*s+t*0.3, z*s+t*0.2)
		}, duration: spc}

	case pattern.KindMap:
		fn := resolve(n.Arg("fn"), ctx)
		return compiled{fn: fn.fn, duration: spc}

	case pattern.KindSleep:
		// Never sampled as a primary output; sequences turn it into a
		// hold segment. Its duration is the payload.
		d := math.Inf(1)
		if v, ok := constValue(n.Arg("duration")); ok {
			d = v
		}
		return compiled{fn: field.Zero, duration: d}

	// --- transforms -----------------------------------------------------

	case pattern.KindRotate:
		src := resolve(n.Arg("source"), ctx)
		angle := resolve(n.Arg("angle"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			sin, cos := math.Sincos(-angle.fn(x, z, t, gn))
			dx, dz := x-0.5, z-0.5
			rx := dx*cos - dz*sin + 0.5
			rz := dx*sin + dz*cos + 0.5
			return src.fn(rx, rz, t, gn)
		}, duration: src.duration}

	case pattern.KindScale:
		src := resolve(n.Arg("source"), ctx)
		sx := resolve(n.Arg("sx"), ctx)
		sz := resolve(n.Arg("sz"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			return src.fn(
				(x-0.5)/sx.fn(x, z, t, gn)+0.5,
				(z-0.5)/sz.fn(x, z, t, gn)+0.5,
				t, gn)
		}, duration: src.duration}

	case pattern.KindOffset:
		src := resolve(n.Arg("source"), ctx)
		ox := resolve(n.Arg("ox"), ctx)
		oz := resolve(n.Arg("oz"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			return src.fn(x-ox.fn(x, z, t, gn), z-oz.fn(x, z, t, gn), t, gn)
		}, duration: src.duration}

	case pattern.KindSlow:
		src := resolve(n.Arg("source"), ctx)
		factor := resolve(n.Arg("factor"), ctx)
		dur := src.duration
		if f, ok := constValue(n.Arg("factor")); ok {
			dur = src.duration * f
		}
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			return src.fn(x, z, t/factor.fn(x, z, t, gn), gn)
		}, duration: dur}

	case pattern.KindFast:
		src := resolve(n.Arg("source"), ctx)
		factor := resolve(n.Arg("factor"), ctx)
		dur := src.duration
		if f, ok := constValue(n.Arg("factor")); ok {
			dur = src.duration / f
		}
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			return src.fn(x, z, t*factor.fn(x, z, t, gn), gn)
		}, duration: dur}

	case pattern.KindEase:
		src := resolve(n.Arg("source"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			return field.SmoothStep(src.fn(x, z, t, gn))
		}, duration: src.duration}

	case pattern.KindInv:
		src := resolve(n.Arg("source"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			return 1 - src.fn(x, z, t, gn)
		}, duration: src.duration}

	case pattern.KindTime:
		src := resolve(n.Arg("source"), ctx)
		sec, ok := constValue(n.Arg("seconds"))
		if !ok || sec <= 0 {
			// No usable override; pass the source through untouched.
			return src
		}
		srcNode, isNode := n.Arg("source").(*pattern.Node)
		if isNode && srcNode.Kind == pattern.KindSeq &&
			src.duration > 0 && !math.IsInf(src.duration, 1) {
			// Rescale the sequence's internal time axis so one playthrough
			// lasts exactly sec seconds.
			scale := src.duration / sec
			inner := src.fn
			return compiled{fn: func(x, z, t float64, gn int) float64 {
				return inner(x, z, t*scale, gn)
			}, duration: sec}
		}
		return compiled{fn: src.fn, duration: sec}

	// --- combinators ----------------------------------------------------

	case pattern.KindBlend:
		a := resolve(n.Arg("a"), ctx)
		b := resolve(n.Arg("b"), ctx)
		mix := resolve(n.Arg("mix"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			m := mix.fn(x, z, t, gn)
			return a.fn(x, z, t, gn)*(1-m) + b.fn(x, z, t, gn)*m
		}, duration: math.Max(a.duration, b.duration)}

	case pattern.KindAdd:
		a := resolve(n.Arg("a"), ctx)
		b := resolve(n.Arg("b"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			return field.Clamp01(a.fn(x, z, t, gn) + b.fn(x, z, t, gn))
		}, duration: math.Max(a.duration, b.duration)}

	case pattern.KindMul:
		a := resolve(n.Arg("a"), ctx)
		b := resolve(n.Arg("b"), ctx)
		return compiled{fn: func(x, z, t float64, gn int) float64 {
			return a.fn(x, z, t, gn) * b.fn(x, z, t, gn)
		}, duration: math.Max(a.duration, b.duration)}

	// --- sequencing -----------------------------------------------------

	case pattern.KindSeq:
		return compileSeq(n, ctx)

	default:
		return compiled{fn: field.Zero, duration: spc}
	}
}
