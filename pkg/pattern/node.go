package pattern

import "github.com/chazu/pinfield/pkg/field"

// Kind enumerates the operations a node can perform.
type Kind int

const (
	// Primitives
	KindFlat Kind = iota
	KindWave
	KindRipple
	KindChecker
	KindGridlines
	KindPyramid
	KindNoise
	KindSimplex
	KindMap
	KindSleep

	// Transforms
	KindRotate
	KindScale
	KindOffset
	KindSlow
	KindFast
	KindEase
	KindInv
	KindTime

	// Combinators
	KindBlend
	KindAdd
	KindMul

	// Sequencing
	KindSeq
)

func (k Kind) String() string {
	switch k {
	case KindFlat:
		return "flat"
	case KindWave:
		return "wave"
	case KindRipple:
		return "ripple"
	case KindChecker:
		return "checker"
	case KindGridlines:
		return "gridlines"
	case KindPyramid:
		return "pyramid"
	case KindNoise:
		return "noise"
	case KindSimplex:
		return "simplex"
	case KindMap:
		return "map"
	case KindSleep:
		return "sleep"
	case KindRotate:
		return "rotate"
	case KindScale:
		return "scale"
	case KindOffset:
		return "offset"
	case KindSlow:
		return "slow"
	case KindFast:
		return "fast"
	case KindEase:
		return "ease"
	case KindInv:
		return "inv"
	case KindTime:
		return "time"
	case KindBlend:
		return "blend"
	case KindAdd:
		return "add"
	case KindMul:
		return "mul"
	case KindSeq:
		return "seq"
	default:
		return "unknown"
	}
}

// Value is the tagged union of argument types a node slot accepts.
// Constants, signal functions, and subtrees are interchangeable wherever
// a parameter is expected; the compiler resolves all three to a Field.
type Value interface {
	value() // marker method restricting implementations to this package
}

// Constant is a fixed numeric argument.
type Constant float64

func (Constant) value() {}

// Dynamic is a signal-function argument, sampled per call.
type Dynamic field.Field

func (Dynamic) value() {}

// A *Node argument is a nested subtree, compiled recursively.
func (*Node) value() {}

// Node is one operation in the declarative pattern tree. Nodes are
// immutable after construction and may be shared between consumers.
type Node struct {
	Kind     Kind
	Args     map[string]Value // named argument slots (source, a, b, ...)
	Patterns []*Node          // ordered list slot, used by seq

	session *Session
}

// Arg returns the named argument, or nil if absent.
func (n *Node) Arg(name string) Value {
	return n.Args[name]
}
