// Package hash provides the memoization key used by the extensions
// registry's subclass-resolution cache. Walking a host type's embedded-struct
// ancestry to find the nearest registered ext id is only worth memoizing if
// the lookup key is cheap to produce; xxhash64 of the concrete type's string
// gives an O(1) map key instead of repeating the ancestry walk on every call.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a concrete reflect.Type's String() form.
func ID(typeName string) uint64 {
	return xxhash.Sum64String(typeName)
}
