package compiler

import (
	"math"

	"github.com/chazu/pinfield/pkg/field"
	"github.com/chazu/pinfield/pkg/pattern"
)

// maxTransition caps the crossfade window between sequence items.
const maxTransition = 0.8

// transition sizes the crossfade leading into an item of the given
// effective duration.
func transition(itemDuration float64) float64 {
	return math.Min(maxTransition, itemDuration*0.4)
}

// seqItem is a normalized sequence entry: the node to play, plus any
// explicit duration override collected from time() wrappers. Normalizing
// up front keeps the timeline planner free of AST unwrapping.
type seqItem struct {
	node     *pattern.Node
	override float64 // seconds; 0 means no override
}

// flattenSeq normalizes a sequence's item list. A child that is itself a
// bare sequence has its items spliced in; a time-wrapped sequence stays
// opaque as a single timed block.
func flattenSeq(items []*pattern.Node) []seqItem {
	var out []seqItem
	for _, child := range items {
		if child == nil {
			continue
		}
		switch child.Kind {
		case pattern.KindSeq:
			out = append(out, flattenSeq(child.Patterns)...)
		case pattern.KindTime:
			node, override := unwrapTime(child)
			if node == nil {
				continue
			}
			out = append(out, seqItem{node: node, override: override})
		default:
			out = append(out, seqItem{node: child})
		}
	}
	return out
}

// unwrapTime peels nested time() wrappers, keeping the outermost usable
// override. Zero or negative overrides are ignored.
func unwrapTime(n *pattern.Node) (*pattern.Node, float64) {
	override := 0.0
	for n != nil && n.Kind == pattern.KindTime {
		if override == 0 {
			if sec, ok := constValue(n.Arg("seconds")); ok && sec > 0 {
				override = sec
			}
		}
		src, _ := n.Arg("source").(*pattern.Node)
		n = src
	}
	return n, override
}

type segKind int

const (
	segPattern segKind = iota
	segFade
	segHold
)

// segment is one time-bounded span of a sequence timeline. Pattern
// segments play fn with time relative to their own start. Fade segments
// smoothstep-blend from the outgoing fn to the incoming one. Hold
// segments replay the most recent pattern's fn, whose clock keeps running
// from its own segment start: the held pattern keeps animating.
type segment struct {
	kind   segKind
	start  float64
	length float64     // +Inf for an infinite hold
	fn     field.Field // pattern/hold fn; fade: incoming fn
	from   field.Field // fade only: outgoing fn
	held   float64     // hold only: start of the held pattern's segment
}

// compileSeq plans a sequence timeline and returns a function that plays
// it exactly once. Looping is applied only by the top-level Compile call.
func compileSeq(n *pattern.Node, ctx Context) compiled {
	items := flattenSeq(n.Patterns)

	var segs []segment
	cursor := 0.0
	loop := true
	patterns := 0
	var firstFn, lastFn field.Field
	var firstDur, lastStart float64

	for _, it := range items {
		if it.node.Kind == pattern.KindSleep {
			d := math.Inf(1)
			if v, ok := constValue(it.node.Arg("duration")); ok {
				d = v
			}
			if it.override > 0 {
				d = it.override
			}
			heldFn, heldStart := lastFn, lastStart
			if heldFn == nil {
				heldFn = field.Zero
				heldStart = cursor
			}
			if math.IsInf(d, 1) {
				// An infinite hold ends planning: nothing after it can
				// ever play, and the sequence no longer loops.
				segs = append(segs, segment{kind: segHold, start: cursor, length: d, fn: heldFn, held: heldStart})
				loop = false
				cursor = math.Inf(1)
				break
			}
			if d > 0 {
				segs = append(segs, segment{kind: segHold, start: cursor, length: d, fn: heldFn, held: heldStart})
				cursor += d
			}
			continue
		}

		c := compileNode(it.node, ctx)
		eff := c.duration
		if it.override > 0 {
			if eff > 0 && !math.IsInf(eff, 1) {
				scale := eff / it.override
				inner := c.fn
				c.fn = func(x, z, t float64, gn int) float64 {
					return inner(x, z, t*scale, gn)
				}
			}
			eff = it.override
		}

		if patterns > 0 {
			if tr := transition(eff); tr > 0 {
				segs = append(segs, segment{kind: segFade, start: cursor, length: tr, from: lastFn, fn: c.fn})
				cursor += tr
			}
		}
		segs = append(segs, segment{kind: segPattern, start: cursor, length: eff, fn: c.fn})
		if patterns == 0 {
			firstFn = c.fn
			firstDur = eff
		}
		lastFn = c.fn
		lastStart = cursor
		cursor += eff
		patterns++
	}

	// Wrap-around transition back to the first pattern, sized by the first
	// item's duration. A degenerate sequence (fewer than two patterns) has
	// nothing to blend.
	if loop && patterns >= 2 {
		if tr := transition(firstDur); tr > 0 {
			segs = append(segs, segment{kind: segFade, start: cursor, length: tr, from: lastFn, fn: firstFn})
			cursor += tr
		}
	}

	if len(segs) == 0 {
		return compiled{fn: field.Zero, duration: 0, loop: false}
	}

	total := cursor
	fn := func(x, z, t float64, gn int) float64 {
		// Segments are ordered by start; take the last one at or before t.
		// Anything past the final segment keeps playing it, since the
		// caller sizes our allotted span.
		seg := &segs[0]
		for i := 1; i < len(segs); i++ {
			if t < segs[i].start {
				break
			}
			seg = &segs[i]
		}
		switch seg.kind {
		case segFade:
			u := t - seg.start
			m := field.SmoothStep(u / seg.length)
			return field.Lerp(seg.from(x, z, u, gn), seg.fn(x, z, u, gn), m)
		case segHold:
			return seg.fn(x, z, t-seg.held, gn)
		default:
			return seg.fn(x, z, t-seg.start, gn)
		}
	}

	return compiled{fn: fn, duration: total, loop: loop && patterns > 0}
}
