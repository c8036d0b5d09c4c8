// Package codec implements the encoder and decoder cores: value-kind
// dispatch, integer/float size minimisation, and container recursion with
// depth limiting and cycle detection, driven by a small Options struct
// passed to each call rather than constructor parameters.
package codec

import "github.com/svenboertjens/cmsgpack/internal/extreg"

// DefaultMaxDepth is the recursion bound applied when Options.MaxDepth is
// left at its zero value.
const DefaultMaxDepth = 1024

// Options configures one Encode or Decode call.
type Options struct {
	// Extensions is the registry consulted for user types. Nil means no
	// extension types are recognised.
	Extensions *extreg.Registry
	// StrKeys requires every Map key to decode/encode as a string.
	StrKeys bool
	// MaxDepth bounds container nesting. Zero selects DefaultMaxDepth.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}

	return o.MaxDepth
}
