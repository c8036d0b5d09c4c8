// Package wire holds the MessagePack tag table and the minimal-size
// classification helpers the encoder core uses to pick the shortest valid
// header for a given length or magnitude.
//
// This is the tag layout from the wire format's own specification,
// reproduced here as a fixed contract rather than derived at runtime,
// the same way a binary header's flag constants get their own table
// instead of being computed inline at every call site.
package wire

import "github.com/svenboertjens/cmsgpack/errs"

// Tag is a single MessagePack leading byte.
type Tag byte

const (
	PosFixIntMin Tag = 0x00
	PosFixIntMax Tag = 0x7f
	NegFixIntMin Tag = 0xe0
	NegFixIntMax Tag = 0xff

	FixStrMin Tag = 0xa0
	FixStrMax Tag = 0xbf
	FixArrMin Tag = 0x90
	FixArrMax Tag = 0x9f
	FixMapMin Tag = 0x80
	FixMapMax Tag = 0x8f

	Nil   Tag = 0xc0
	False Tag = 0xc2
	True  Tag = 0xc3

	Bin8  Tag = 0xc4
	Bin16 Tag = 0xc5
	Bin32 Tag = 0xc6

	Ext8  Tag = 0xc7
	Ext16 Tag = 0xc8
	Ext32 Tag = 0xc9

	Float32 Tag = 0xca
	Float64 Tag = 0xcb

	Uint8  Tag = 0xcc
	Uint16 Tag = 0xcd
	Uint32 Tag = 0xce
	Uint64 Tag = 0xcf

	Int8  Tag = 0xd0
	Int16 Tag = 0xd1
	Int32 Tag = 0xd2
	Int64 Tag = 0xd3

	FixExt1  Tag = 0xd4
	FixExt2  Tag = 0xd5
	FixExt4  Tag = 0xd6
	FixExt8  Tag = 0xd7
	FixExt16 Tag = 0xd8

	Str8  Tag = 0xd9
	Str16 Tag = 0xda
	Str32 Tag = 0xdb

	Array16 Tag = 0xdc
	Array32 Tag = 0xdd

	Map16 Tag = 0xde
	Map32 Tag = 0xdf

	// Reserved is the one byte MessagePack leaves unassigned; decoding it
	// MUST fail.
	Reserved Tag = 0xc1
)

// maxUint32 is the largest length MessagePack can express in any header.
const maxUint32 = 1<<32 - 1

// StrHeader reports which tag/length-field-width to use for a UTF-8 byte
// length n, picking the shortest form that fits.
func StrHeader(n int) (tag Tag, fixLen bool, lenWidth int, err error) {
	switch {
	case n <= 31:
		return FixStrMin | Tag(n), true, 0, nil
	case n <= 0xff:
		return Str8, false, 1, nil
	case n <= 0xffff:
		return Str16, false, 2, nil
	case n <= maxUint32:
		return Str32, false, 4, nil
	default:
		return 0, false, 0, errs.NewOverflowError(errs.ErrLengthOverflow, "str length")
	}
}

// BinHeader is StrHeader's analogue for Bin payloads — there is no fix form.
func BinHeader(n int) (tag Tag, lenWidth int, err error) {
	switch {
	case n <= 0xff:
		return Bin8, 1, nil
	case n <= 0xffff:
		return Bin16, 2, nil
	case n <= maxUint32:
		return Bin32, 4, nil
	default:
		return 0, 0, errs.NewOverflowError(errs.ErrLengthOverflow, "bin length")
	}
}

// ArrayHeader picks the narrowest array-count header.
func ArrayHeader(n int) (tag Tag, fixLen bool, lenWidth int, err error) {
	switch {
	case n <= 15:
		return FixArrMin | Tag(n), true, 0, nil
	case n <= 0xffff:
		return Array16, false, 2, nil
	case n <= maxUint32:
		return Array32, false, 4, nil
	default:
		return 0, false, 0, errs.NewOverflowError(errs.ErrLengthOverflow, "array length")
	}
}

// MapHeader picks the narrowest map-count header.
func MapHeader(n int) (tag Tag, fixLen bool, lenWidth int, err error) {
	switch {
	case n <= 15:
		return FixMapMin | Tag(n), true, 0, nil
	case n <= 0xffff:
		return Map16, false, 2, nil
	case n <= maxUint32:
		return Map32, false, 4, nil
	default:
		return 0, false, 0, errs.NewOverflowError(errs.ErrLengthOverflow, "map length")
	}
}

// ExtHeader picks the narrowest ext header for a payload of n bytes. Fixed
// widths 1/2/4/8/16 use FixExt*; everything else falls back to Ext8/16/32.
func ExtHeader(n int) (tag Tag, fix bool, lenWidth int, err error) {
	switch n {
	case 1:
		return FixExt1, true, 0, nil
	case 2:
		return FixExt2, true, 0, nil
	case 4:
		return FixExt4, true, 0, nil
	case 8:
		return FixExt8, true, 0, nil
	case 16:
		return FixExt16, true, 0, nil
	}

	switch {
	case n <= 0xff:
		return Ext8, false, 1, nil
	case n <= 0xffff:
		return Ext16, false, 2, nil
	case n <= maxUint32:
		return Ext32, false, 4, nil
	default:
		return 0, false, 0, errs.NewOverflowError(errs.ErrLengthOverflow, "ext payload length")
	}
}

// UintWidth picks the narrowest unsigned-integer form for v, including the
// positive-fixint range.
func UintWidth(v uint64) (tag Tag, fix bool, width int) {
	switch {
	case v <= 0x7f:
		return Tag(v), true, 0
	case v <= 0xff:
		return Uint8, false, 1
	case v <= 0xffff:
		return Uint16, false, 2
	case v <= 0xffffffff:
		return Uint32, false, 4
	default:
		return Uint64, false, 8
	}
}

// IntWidth picks the narrowest signed-integer form for a negative v,
// including the negative-fixint range ([-32, -1]).
func IntWidth(v int64) (tag Tag, fix bool, width int) {
	switch {
	case v >= -32:
		return NegFixIntMin | Tag(v&0x1f), true, 0
	case v >= -128:
		return Int8, false, 1
	case v >= -32768:
		return Int16, false, 2
	case v >= -2147483648:
		return Int32, false, 4
	default:
		return Int64, false, 8
	}
}
