package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/pinfield/pkg/field"
	"github.com/chazu/pinfield/pkg/pattern"
	"github.com/chazu/pinfield/pkg/signal"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms pinfield script source before passing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     This avoids registering keyword symbols as globals, which would
//     conflict with user variables of the same name.
//
//  2. ; line comments become // comments, which is what zygomys parses.
//
//  3. Call-head "map" is rewritten to an internal alias. zygomys reserves
//     map as a native list operation, so the pattern factory has to be
//     registered under a different name while scripts keep writing (map ...).
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Rewrite a call head of exactly "map" to the internal alias.
		if b[i] == '(' {
			result = append(result, b[i])
			i++
			j := i
			for j < len(b) && (b[j] == ' ' || b[j] == '\t' || b[j] == '\n' || b[j] == '\r') {
				j++
			}
			if j+3 <= len(b) && string(b[j:j+3]) == "map" &&
				(j+3 == len(b) || !isKWChar(b[j+3])) {
				result = append(result, b[i:j]...)
				result = append(result, []byte(mapAlias)...)
				i = j + 3
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPattern wraps a pattern node so builtins can pass trees around.
type sexpPattern struct {
	node *pattern.Node
}

func (p *sexpPattern) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(pattern %s)", p.node.Kind)
}
func (p *sexpPattern) Type() *zygo.RegisteredType { return nil }

// sexpSignal wraps an animation signal function.
type sexpSignal struct {
	fn   field.Field
	name string
}

func (s *sexpSignal) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(signal %s)", s.name)
}
func (s *sexpSignal) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// mapAlias is the registration name for the map factory; scripts write
// (map ...) and preprocessSource rewrites the call head, because map is a
// reserved word in zygomys with a native list-map binding.
const mapAlias = "__pinmap"

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments. A
// trailing keyword with no value after it is a value itself, not a
// parameter name: (setrot :on) passes :on positionally.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok && i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
			continue
		}
		result.positional = append(result.positional, args[i])
		i++
	}
	return result
}

// pick returns the sexp bound to a parameter: keyword form first, then the
// given positional slot, then nil when the caller omitted it.
func (pa kwArgs) pick(name string, idx int) zygo.Sexp {
	if v, ok := pa.kw[name]; ok {
		return v
	}
	if idx >= 0 && idx < len(pa.positional) {
		return pa.positional[idx]
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case nil:
		return 0, fmt.Errorf("missing number argument")
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp, accepting preprocessed keywords
// (:auto and "auto" are interchangeable for mode arguments).
func toString(s zygo.Sexp) (string, error) {
	if s == nil {
		return "", fmt.Errorf("missing string argument")
	}
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toPattern extracts the node from a sexpPattern.
func toPattern(s zygo.Sexp) (*pattern.Node, error) {
	if s == nil {
		return nil, fmt.Errorf("missing pattern argument")
	}
	if p, ok := s.(*sexpPattern); ok {
		return p.node, nil
	}
	return nil, fmt.Errorf("expected pattern, got %T (%s)", s, s.SexpString(nil))
}

// toValue converts any argument sexp into a pattern.Value. Numbers become
// constants, signals and script functions become dynamic arguments, and
// patterns become subtrees. Anything else is coerced to the constant zero
// rather than rejected.
func toValue(env *zygo.Zlisp, s zygo.Sexp) pattern.Value {
	switch v := s.(type) {
	case nil:
		return nil
	case *zygo.SexpInt:
		return pattern.Constant(float64(v.Val))
	case *zygo.SexpFloat:
		return pattern.Constant(v.Val)
	case *sexpSignal:
		return pattern.Dynamic(v.fn)
	case *sexpPattern:
		return v.node
	case *zygo.SexpFunction:
		return pattern.Dynamic(callbackField(env, v))
	default:
		return pattern.Constant(0)
	}
}

// callbackField adapts a script-defined function into a sampling function.
// Evaluation errors surface as zero height so a broken callback cannot
// take down the render loop.
func callbackField(env *zygo.Zlisp, fun *zygo.SexpFunction) field.Field {
	return func(x, z, t float64, n int) float64 {
		res, err := env.Apply(fun, []zygo.Sexp{
			&zygo.SexpFloat{Val: x},
			&zygo.SexpFloat{Val: z},
			&zygo.SexpFloat{Val: t},
			&zygo.SexpInt{Val: int64(n)},
		})
		if err != nil {
			return 0
		}
		switch v := res.(type) {
		case *zygo.SexpFloat:
			return v.Val
		case *zygo.SexpInt:
			return float64(v.Val)
		}
		return 0
	}
}

// sexpListToSlice converts a SexpPair (list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the pinfield DSL into a zygomys environment.
// Pattern factories build nodes through the provided session; config
// setters mutate cfg in place.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens arrive as recognizable literals.
func registerBuiltins(env *zygo.Zlisp, s *pattern.Session, cfg *Config) {

	// value builds a factory argument from keyword-or-positional form.
	value := func(env *zygo.Zlisp, pa kwArgs, name string, idx int) pattern.Value {
		return toValue(env, pa.pick(name, idx))
	}

	// -----------------------------------------------------------------------
	// Primitives
	// -----------------------------------------------------------------------

	// (flat 0.5) / (flat :h 0.5)
	env.AddFunction("flat", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		return &sexpPattern{node: s.Flat(value(env, pa, "h", 0))}, nil
	})

	// (wave :fx 2 :fz 1)
	env.AddFunction("wave", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		return &sexpPattern{node: s.Wave(
			value(env, pa, "fx", 0),
			value(env, pa, "fz", 1),
		)}, nil
	})

	// (ripple :cx 0.5 :cz 0.5 :freq 3)
	env.AddFunction("ripple", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		return &sexpPattern{node: s.Ripple(
			value(env, pa, "cx", 0),
			value(env, pa, "cz", 1),
			value(env, pa, "freq", 2),
		)}, nil
	})

	// (checker :size 5)
	env.AddFunction("checker", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		return &sexpPattern{node: s.Checker(value(env, pa, "size", 0))}, nil
	})

	// (gridlines :spacing 5)
	env.AddFunction("gridlines", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		return &sexpPattern{node: s.Gridlines(value(env, pa, "spacing", 0))}, nil
	})

	// (pyramid)
	env.AddFunction("pyramid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &sexpPattern{node: s.Pyramid()}, nil
	})

	// (noise :scale 4)
	env.AddFunction("noise", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		return &sexpPattern{node: s.Noise(value(env, pa, "scale", 0))}, nil
	})

	// (simplex :scale 4)
	env.AddFunction("simplex", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		return &sexpPattern{node: s.Simplex(value(env, pa, "scale", 0))}, nil
	})

	// (map (fn [x z t n] ...)) — registered under the alias; see mapAlias.
	env.AddFunction(mapAlias, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("map requires a function argument")
		}
		fun, ok := args[0].(*zygo.SexpFunction)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("map: expected function, got %T", args[0])
		}
		return &sexpPattern{node: s.Map(callbackField(env, fun))}, nil
	})

	// (sleep 2) — holds forever without a duration
	env.AddFunction("sleep", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		return &sexpPattern{node: s.Sleep(value(env, pa, "duration", 0))}, nil
	})

	// (seq p1 p2 ...) — also accepts a single list of patterns
	env.AddFunction("seq", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		items := args
		if len(args) == 1 {
			if list, err := sexpListToSlice(args[0]); err == nil {
				items = list
			}
		}
		nodes := make([]*pattern.Node, 0, len(items))
		for i, item := range items {
			n, err := toPattern(item)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("seq: item %d: %w", i, err)
			}
			nodes = append(nodes, n)
		}
		return &sexpPattern{node: s.Seq(nodes...)}, nil
	})

	// -----------------------------------------------------------------------
	// Transforms and combinators
	// -----------------------------------------------------------------------

	// source extracts the pattern a transform operates on.
	source := func(pa kwArgs, fname string) (*pattern.Node, error) {
		n, err := toPattern(pa.pick("source", 0))
		if err != nil {
			return nil, fmt.Errorf("%s: source: %w", fname, err)
		}
		return n, nil
	}

	// (rotate pat angle)
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		src, err := source(pa, "rotate")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPattern{node: src.Rotate(value(env, pa, "angle", 1))}, nil
	})

	// (scale pat sx sz?) — sz defaults to sx
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		src, err := source(pa, "scale")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPattern{node: src.Scale(
			value(env, pa, "sx", 1),
			value(env, pa, "sz", 2),
		)}, nil
	})

	// (offset pat ox oz)
	env.AddFunction("offset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		src, err := source(pa, "offset")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPattern{node: src.Offset(
			value(env, pa, "ox", 1),
			value(env, pa, "oz", 2),
		)}, nil
	})

	// (slow pat factor)
	env.AddFunction("slow", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		src, err := source(pa, "slow")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPattern{node: src.Slow(value(env, pa, "factor", 1))}, nil
	})

	// (fast pat factor)
	env.AddFunction("fast", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		src, err := source(pa, "fast")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPattern{node: src.Fast(value(env, pa, "factor", 1))}, nil
	})

	// (ease pat)
	env.AddFunction("ease", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		src, err := source(pa, "ease")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPattern{node: src.Ease()}, nil
	})

	// (inv pat)
	env.AddFunction("inv", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		src, err := source(pa, "inv")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPattern{node: src.Inv()}, nil
	})

	// (time pat seconds) — pins the subtree's duration
	env.AddFunction("time", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		src, err := source(pa, "time")
		if err != nil {
			return zygo.SexpNull, err
		}
		sec, err := toFloat64(pa.pick("seconds", 1))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("time: seconds: %w", err)
		}
		return &sexpPattern{node: src.Time(sec)}, nil
	})

	// (blend a b mix)
	env.AddFunction("blend", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		a, err := toPattern(pa.pick("a", 0))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("blend: a: %w", err)
		}
		b, err := toPattern(pa.pick("b", 1))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("blend: b: %w", err)
		}
		return &sexpPattern{node: pattern.Blend(a, b, value(env, pa, "mix", 2))}, nil
	})

	// (add a b)
	env.AddFunction("add", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		a, err := toPattern(pa.pick("a", 0))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add: a: %w", err)
		}
		b, err := toPattern(pa.pick("b", 1))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add: b: %w", err)
		}
		return &sexpPattern{node: pattern.Add(a, b)}, nil
	})

	// (mul a b)
	env.AddFunction("mul", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		a, err := toPattern(pa.pick("a", 0))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mul: a: %w", err)
		}
		b, err := toPattern(pa.pick("b", 1))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mul: b: %w", err)
		}
		return &sexpPattern{node: pattern.Mul(a, b)}, nil
	})

	// -----------------------------------------------------------------------
	// Animation signals
	// -----------------------------------------------------------------------

	// number pulls a plain numeric argument with a default.
	number := func(pa kwArgs, name string, idx int, def float64) (float64, error) {
		v := pa.pick(name, idx)
		if v == nil {
			return def, nil
		}
		return toFloat64(v)
	}

	// (tween 0 1 2) / (tween :from 0 :to 1 :duration 2 :ease "bounce")
	env.AddFunction("tween", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		from, err := number(pa, "from", 0, 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tween: from: %w", err)
		}
		to, err := number(pa, "to", 1, 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tween: to: %w", err)
		}
		dur, err := number(pa, "duration", 2, 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tween: duration: %w", err)
		}
		easeName := ""
		if v := pa.pick("ease", 3); v != nil {
			easeName, err = toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tween: ease: %w", err)
			}
		}
		return &sexpSignal{fn: signal.Tween(from, to, dur, signal.Named(easeName)), name: "tween"}, nil
	})

	// (osc :freq 1 :lo 0 :hi 1)
	env.AddFunction("osc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		freq, err := number(pa, "freq", 0, 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("osc: freq: %w", err)
		}
		lo, err := number(pa, "lo", 1, 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("osc: lo: %w", err)
		}
		hi, err := number(pa, "hi", 2, 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("osc: hi: %w", err)
		}
		return &sexpSignal{fn: signal.Osc(freq, lo, hi), name: "osc"}, nil
	})

	// (saw :freq 1 :lo 0 :hi 1)
	env.AddFunction("saw", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		freq, err := number(pa, "freq", 0, 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("saw: freq: %w", err)
		}
		lo, err := number(pa, "lo", 1, 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("saw: lo: %w", err)
		}
		hi, err := number(pa, "hi", 2, 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("saw: hi: %w", err)
		}
		return &sexpSignal{fn: signal.Saw(freq, lo, hi), name: "saw"}, nil
	})

	// (pulse :freq 1 :duty 0.5)
	env.AddFunction("pulse", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		freq, err := number(pa, "freq", 0, 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pulse: freq: %w", err)
		}
		duty, err := number(pa, "duty", 1, 0.5)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pulse: duty: %w", err)
		}
		return &sexpSignal{fn: signal.Pulse(freq, duty), name: "pulse"}, nil
	})

	// -----------------------------------------------------------------------
	// Host configuration setters
	// -----------------------------------------------------------------------

	// (setdim 32)
	env.AddFunction("setdim", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		n, err := toFloat64(pa.pick("size", 0))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("setdim: %w", err)
		}
		cfg.SetGridSize(int(n))
		return zygo.SexpNull, nil
	})

	// (setbg "#223344")
	env.AddFunction("setbg", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		color, err := toString(pa.pick("color", 0))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("setbg: %w", err)
		}
		cfg.SetBackground(color)
		return zygo.SexpNull, nil
	})

	// (setrot :auto)
	env.AddFunction("setrot", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		mode, err := toString(pa.pick("mode", 0))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("setrot: %w", err)
		}
		cfg.SetRotationMode(mode)
		return zygo.SexpNull, nil
	})

	// (setspc 2.5)
	env.AddFunction("setspc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		v, err := toFloat64(pa.pick("seconds", 0))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("setspc: %w", err)
		}
		cfg.SetSecondsPerCycle(v)
		return zygo.SexpNull, nil
	})
}
