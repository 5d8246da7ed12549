package pattern

// Session is the caller-owned build context for one script run. It tracks
// every node constructed through it and maintains the root registry: the
// ordered set of nodes not yet consumed as another node's argument.
//
// A fresh Session per evaluation keeps concurrent runs independent; the
// Session itself is not safe for concurrent use.
type Session struct {
	roots []*Node // creation order
}

// NewSession creates an empty build session.
func NewSession() *Session {
	return &Session{}
}

// NewNode constructs a node, registers it as a root, and deregisters any
// node it consumes through args or patterns. Deregistering a node that is
// already not a root is a no-op.
func (s *Session) NewNode(kind Kind, args map[string]Value, patterns []*Node) *Node {
	n := &Node{
		Kind:     kind,
		Args:     args,
		Patterns: patterns,
		session:  s,
	}
	s.roots = append(s.roots, n)
	for _, v := range args {
		if child, ok := v.(*Node); ok {
			s.removeRoot(child)
		}
	}
	for _, child := range patterns {
		s.removeRoot(child)
	}
	return n
}

// Roots returns the current registry contents in creation order.
func (s *Session) Roots() []*Node {
	out := make([]*Node, len(s.roots))
	copy(out, s.roots)
	return out
}

// Last returns the most recently created root, or nil if none survive.
// When a script leaves multiple unconsumed nodes, the last one created is
// taken as the program output; this is a deliberate simplification.
func (s *Session) Last() *Node {
	if len(s.roots) == 0 {
		return nil
	}
	return s.roots[len(s.roots)-1]
}

// Clear empties the registry. Call it at the start of a script run if the
// session is being reused; leaking roots across runs is otherwise possible.
func (s *Session) Clear() {
	s.roots = s.roots[:0]
}

func (s *Session) removeRoot(n *Node) {
	for i, r := range s.roots {
		if r == n {
			s.roots = append(s.roots[:i], s.roots[i+1:]...)
			return
		}
	}
}
