package codec

import (
	"reflect"
	"unicode/utf8"

	"github.com/svenboertjens/cmsgpack/errs"
	"github.com/svenboertjens/cmsgpack/internal/cursor"
	"github.com/svenboertjens/cmsgpack/internal/wire"
)

// Decode parses exactly one Value from data and discards any trailing bytes.
func Decode(data []byte, opts Options) (any, error) {
	v, _, err := DecodeN(data, opts)

	return v, err
}

// DecodeN parses exactly one Value from data and reports how many bytes it
// consumed, so a Stream can advance its read offset by that amount.
func DecodeN(data []byte, opts Options) (any, int, error) {
	c := cursor.New(data)
	d := &decoder{cur: c, opts: opts}

	v, err := d.decodeValue()
	if err != nil {
		return nil, 0, err
	}

	return v, c.Pos(), nil
}

type decoder struct {
	cur   *cursor.Cursor
	opts  Options
	depth int
}

func (d *decoder) decodeValue() (any, error) {
	b, err := d.cur.ReadByte()
	if err != nil {
		return nil, err
	}

	tag := wire.Tag(b)

	switch {
	case tag <= wire.PosFixIntMax:
		return uint64(tag), nil
	case tag >= wire.NegFixIntMin:
		return int64(int8(tag)), nil
	case tag >= wire.FixStrMin && tag <= wire.FixStrMax:
		return d.readStr(int(tag & 0x1f))
	case tag >= wire.FixArrMin && tag <= wire.FixArrMax:
		return d.readArray(int(tag & 0x0f))
	case tag >= wire.FixMapMin && tag <= wire.FixMapMax:
		return d.readMap(int(tag & 0x0f))
	}

	switch tag {
	case wire.Nil:
		return nil, nil
	case wire.False:
		return false, nil
	case wire.True:
		return true, nil
	case wire.Reserved:
		return nil, errs.WrapValue(errs.ErrReservedTag, "tag 0xc1")
	case wire.Bin8, wire.Bin16, wire.Bin32:
		n, err := d.readLen(tag, wire.Bin8, wire.Bin16, wire.Bin32)
		if err != nil {
			return nil, err
		}

		return d.readBin(n)
	case wire.Str8, wire.Str16, wire.Str32:
		n, err := d.readLen(tag, wire.Str8, wire.Str16, wire.Str32)
		if err != nil {
			return nil, err
		}

		return d.readStr(n)
	case wire.Array16, wire.Array32:
		n, err := d.readLen(tag, 0, wire.Array16, wire.Array32)
		if err != nil {
			return nil, err
		}

		return d.readArray(n)
	case wire.Map16, wire.Map32:
		n, err := d.readLen(tag, 0, wire.Map16, wire.Map32)
		if err != nil {
			return nil, err
		}

		return d.readMap(n)
	case wire.Float32:
		f, err := d.cur.ReadFloat32BE()

		return float64(f), err
	case wire.Float64:
		return d.cur.ReadFloat64BE()
	case wire.Uint8:
		b, err := d.cur.ReadByte()

		return uint64(b), err
	case wire.Uint16:
		v, err := d.cur.ReadUint16BE()

		return uint64(v), err
	case wire.Uint32:
		v, err := d.cur.ReadUint32BE()

		return uint64(v), err
	case wire.Uint64:
		return d.cur.ReadUint64BE()
	case wire.Int8:
		b, err := d.cur.ReadByte()

		return int64(int8(b)), err
	case wire.Int16:
		v, err := d.cur.ReadUint16BE()

		return int64(int16(v)), err
	case wire.Int32:
		v, err := d.cur.ReadUint32BE()

		return int64(int32(v)), err
	case wire.Int64:
		v, err := d.cur.ReadUint64BE()

		return int64(v), err
	case wire.FixExt1:
		return d.readExt(1)
	case wire.FixExt2:
		return d.readExt(2)
	case wire.FixExt4:
		return d.readExt(4)
	case wire.FixExt8:
		return d.readExt(8)
	case wire.FixExt16:
		return d.readExt(16)
	case wire.Ext8, wire.Ext16, wire.Ext32:
		n, err := d.readLen(tag, wire.Ext8, wire.Ext16, wire.Ext32)
		if err != nil {
			return nil, err
		}

		return d.readExt(n)
	}

	return nil, errs.NewValueError("unrecognised tag")
}

// readLen reads the length field for a non-fix header. width8/width16/width32
// identify which tag was seen (width8 may be the zero Tag for headers with
// no 8-bit form, e.g. Array/Map).
func (d *decoder) readLen(tag, width8, width16, width32 wire.Tag) (int, error) {
	switch tag {
	case width8:
		b, err := d.cur.ReadByte()

		return int(b), err
	case width16:
		v, err := d.cur.ReadUint16BE()

		return int(v), err
	case width32:
		v, err := d.cur.ReadUint32BE()

		return int(v), err
	default:
		return 0, errs.NewValueError("unrecognised length tag")
	}
}

func (d *decoder) readStr(n int) (string, error) {
	b, err := d.cur.ReadBytes(n)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", errs.WrapValue(errs.ErrInvalidUTF8, "str payload")
	}

	return string(b), nil
}

func (d *decoder) readBin(n int) ([]byte, error) {
	view, err := d.cur.ReadBytes(n)
	if err != nil {
		return nil, err
	}

	if d.opts.Extensions != nil && d.opts.Extensions.PassMemoryView() {
		return view, nil
	}

	owned := make([]byte, n)
	copy(owned, view)

	return owned, nil
}

func (d *decoder) enterContainer() error {
	if d.depth >= d.opts.maxDepth() {
		return errs.NewRecursionError(errs.ErrMaxDepthExceeded, "recursion limit")
	}

	d.depth++

	return nil
}

func (d *decoder) readArray(n int) ([]any, error) {
	if err := d.enterContainer(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()

	out := make([]any, n)
	for i := 0; i < n; i++ {
		v, err := d.decodeValue()
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

func (d *decoder) readMap(n int) (any, error) {
	if err := d.enterContainer(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()

	if d.opts.StrKeys {
		out := make(map[string]any, n)

		for i := 0; i < n; i++ {
			k, err := d.decodeValue()
			if err != nil {
				return nil, err
			}

			ks, ok := k.(string)
			if !ok {
				return nil, errs.WrapType(errs.ErrNonStringMapKey, "map key under str_keys")
			}

			v, err := d.decodeValue()
			if err != nil {
				return nil, err
			}

			out[ks] = v
		}

		return out, nil
	}

	out := make(map[any]any, n)
	for i := 0; i < n; i++ {
		k, err := d.decodeValue()
		if err != nil {
			return nil, err
		}

		if !isHashable(k) {
			return nil, errs.NewTypeError("map key decoded to a non-hashable kind (array/map/bin)")
		}

		v, err := d.decodeValue()
		if err != nil {
			return nil, err
		}

		out[k] = v
	}

	return out, nil
}

// isHashable reports whether v can be used as a Go map key without
// panicking. A valid MessagePack map may use Array, Map, or Bin as a key,
// none of which decode to a comparable Go type ([]any, map[any]any, and
// []byte are all unhashable), so this must be checked before the map
// insert rather than left to panic.
func isHashable(v any) bool {
	if v == nil {
		return true
	}

	return reflect.TypeOf(v).Comparable()
}

func (d *decoder) readExt(n int) (any, error) {
	id, err := d.cur.ReadByte()
	if err != nil {
		return nil, err
	}

	payload, err := d.cur.ReadBytes(n)
	if err != nil {
		return nil, err
	}

	if d.opts.Extensions == nil {
		return nil, errs.WrapValue(errs.ErrUnknownExtID, "no extensions registry configured")
	}

	dec, ok := d.opts.Extensions.LookupDecode(int8(id))
	if !ok {
		return nil, errs.WrapValue(errs.ErrUnknownExtID, "unregistered ext id")
	}

	if !d.opts.Extensions.PassMemoryView() {
		owned := make([]byte, len(payload))
		copy(owned, payload)
		payload = owned
	}

	return dec(payload)
}
