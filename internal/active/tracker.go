// Package active implements the encoder's cycle detector: the "active set"
// of container identities currently on the encode stack, plus the depth
// counter max_depth is checked against. The tracked identity is a
// container's pointer value; a collision means a cycle, not a hash clash.
package active

import "github.com/svenboertjens/cmsgpack/errs"

// Set tracks container identities currently on the encode stack.
type Set struct {
	ids   map[uintptr]struct{}
	depth int
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{ids: make(map[uintptr]struct{})}
}

// Enter records entry into a container before recursing into its elements.
// id is the container's identity (a slice/map header's data pointer); hasID
// is false for kinds with no stable identity to track (arrays passed by
// value have none, for instance). maxDepth bounds total nesting.
//
// Enter returns RecursionError if id is already on the stack (a cycle) or if
// entering would exceed maxDepth. Every successful Enter must be paired with
// exactly one Exit, even on the error path of the caller's own recursion.
func (s *Set) Enter(id uintptr, hasID bool, maxDepth int) error {
	if s.depth >= maxDepth {
		return errs.NewRecursionError(errs.ErrMaxDepthExceeded, "recursion limit")
	}

	if hasID {
		if _, seen := s.ids[id]; seen {
			return errs.NewRecursionError(errs.ErrCycleDetected, "cycle detected")
		}

		s.ids[id] = struct{}{}
	}

	s.depth++

	return nil
}

// Exit pops the most recent successful Enter. Callers pass the same id and
// hasID they used to Enter.
func (s *Set) Exit(id uintptr, hasID bool) {
	s.depth--

	if hasID {
		delete(s.ids, id)
	}
}

// Depth reports the current nesting depth.
func (s *Set) Depth() int { return s.depth }
