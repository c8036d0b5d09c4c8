package codec

import (
	"reflect"

	"github.com/svenboertjens/cmsgpack/errs"
	"github.com/svenboertjens/cmsgpack/internal/active"
	"github.com/svenboertjens/cmsgpack/internal/buffer"
	"github.com/svenboertjens/cmsgpack/internal/kind"
	"github.com/svenboertjens/cmsgpack/internal/wire"
)

// Encode serialises v into a freshly allocated byte slice.
func Encode(v any, opts Options) ([]byte, error) {
	buf := buffer.New()
	if err := EncodeInto(v, buf, opts); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// EncodeInto serialises v, appending the encoding to buf.
func EncodeInto(v any, buf *buffer.Buffer, opts Options) error {
	e := &encoder{buf: buf, opts: opts, active: active.NewSet()}

	return e.encodeAny(v)
}

type encoder struct {
	buf    *buffer.Buffer
	opts   Options
	active *active.Set
}

func (e *encoder) encodeAny(v any) error {
	if v == nil {
		e.buf.PutByte(byte(wire.Nil))

		return nil
	}

	return e.encodeValue(reflect.ValueOf(v))
}

func (e *encoder) encodeValue(rv reflect.Value) error {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			e.buf.PutByte(byte(wire.Nil))

			return nil
		}

		rv = rv.Elem()
	}

	if !rv.IsValid() {
		e.buf.PutByte(byte(wire.Nil))

		return nil
	}

	rt := rv.Type()

	if e.opts.Extensions != nil {
		if id, fn, ok := e.opts.Extensions.Lookup(rt); ok {
			return e.encodeExt(id, fn, rv)
		}
	}

	switch kind.Classify(rv) {
	case kind.Null:
		e.buf.PutByte(byte(wire.Nil))
	case kind.Bool:
		if rv.Bool() {
			e.buf.PutByte(byte(wire.True))
		} else {
			e.buf.PutByte(byte(wire.False))
		}
	case kind.UInt:
		return e.encodeUint(uintValue(rv))
	case kind.NInt:
		return e.encodeInt(rv.Int())
	case kind.Float:
		e.buf.PutByte(byte(wire.Float64))
		e.buf.PutFloat64BE(rv.Float())
	case kind.Str:
		return e.encodeStr(rv.String())
	case kind.Bin:
		return e.encodeBin(bytesValue(rv))
	case kind.Array:
		return e.encodeArray(rv)
	case kind.Map:
		return e.encodeMap(rv)
	default:
		return errs.NewTypeError("unsupported value kind " + rt.String())
	}

	return nil
}

func uintValue(rv reflect.Value) uint64 {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	default:
		return uint64(rv.Int())
	}
}

func bytesValue(rv reflect.Value) []byte {
	if rv.Kind() == reflect.Slice {
		return rv.Bytes()
	}

	b := make([]byte, rv.Len())
	for i := range b {
		b[i] = byte(rv.Index(i).Uint())
	}

	return b
}

func (e *encoder) encodeUint(v uint64) error {
	tag, fix, width := wire.UintWidth(v)
	e.buf.PutByte(byte(tag))

	if fix {
		return nil
	}

	switch width {
	case 1:
		e.buf.PutByte(byte(v))
	case 2:
		e.buf.PutUint16BE(uint16(v))
	case 4:
		e.buf.PutUint32BE(uint32(v))
	case 8:
		e.buf.PutUint64BE(v)
	}

	return nil
}

func (e *encoder) encodeInt(v int64) error {
	tag, fix, width := wire.IntWidth(v)
	e.buf.PutByte(byte(tag))

	if fix {
		return nil
	}

	switch width {
	case 1:
		e.buf.PutByte(byte(v))
	case 2:
		e.buf.PutUint16BE(uint16(v))
	case 4:
		e.buf.PutUint32BE(uint32(v))
	case 8:
		e.buf.PutUint64BE(uint64(v))
	}

	return nil
}

func (e *encoder) encodeStr(s string) error {
	tag, fix, width, err := wire.StrHeader(len(s))
	if err != nil {
		return err
	}

	e.buf.PutByte(byte(tag))

	if !fix {
		e.putLen(len(s), width)
	}

	e.buf.PutString(s)

	return nil
}

func (e *encoder) encodeBin(b []byte) error {
	tag, width, err := wire.BinHeader(len(b))
	if err != nil {
		return err
	}

	e.buf.PutByte(byte(tag))
	e.putLen(len(b), width)
	e.buf.PutBytes(b)

	return nil
}

func (e *encoder) encodeArray(rv reflect.Value) error {
	n := rv.Len()

	tag, fix, width, err := wire.ArrayHeader(n)
	if err != nil {
		return err
	}

	id, hasID := identity(rv)
	if err := e.active.Enter(id, hasID, e.opts.maxDepth()); err != nil {
		return err
	}
	defer e.active.Exit(id, hasID)

	e.buf.PutByte(byte(tag))
	if !fix {
		e.putLen(n, width)
	}

	for i := 0; i < n; i++ {
		if err := e.encodeValue(rv.Index(i)); err != nil {
			return err
		}
	}

	return nil
}

func (e *encoder) encodeMap(rv reflect.Value) error {
	n := rv.Len()

	tag, fix, width, err := wire.MapHeader(n)
	if err != nil {
		return err
	}

	id, hasID := identity(rv)
	if err := e.active.Enter(id, hasID, e.opts.maxDepth()); err != nil {
		return err
	}
	defer e.active.Exit(id, hasID)

	e.buf.PutByte(byte(tag))
	if !fix {
		e.putLen(n, width)
	}

	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key()
		if e.opts.StrKeys {
			for key.Kind() == reflect.Interface {
				key = key.Elem()
			}

			if key.Kind() != reflect.String {
				return errs.WrapType(errs.ErrNonStringMapKey, "map key under str_keys")
			}
		}

		if err := e.encodeValue(key); err != nil {
			return err
		}

		if err := e.encodeValue(iter.Value()); err != nil {
			return err
		}
	}

	return nil
}

func (e *encoder) encodeExt(id int8, fn func(any) ([]byte, error), rv reflect.Value) error {
	payload, err := fn(rv.Interface())
	if err != nil {
		return err
	}

	tag, fix, width, err := wire.ExtHeader(len(payload))
	if err != nil {
		return err
	}

	e.buf.PutByte(byte(tag))
	if !fix {
		e.putLen(len(payload), width)
	}

	e.buf.PutByte(byte(id))
	e.buf.PutBytes(payload)

	return nil
}

func (e *encoder) putLen(n, width int) {
	switch width {
	case 1:
		e.buf.PutByte(byte(n))
	case 2:
		e.buf.PutUint16BE(uint16(n))
	case 4:
		e.buf.PutUint32BE(uint32(n))
	}
}

// identity returns a cycle-detection key for a non-empty slice or map value.
// For arrays and other value kinds, which never cycle in Go (a type cannot
// contain itself by value), and for empty containers it reports no identity,
// so the active set counts their depth without tracking them.
func identity(rv reflect.Value) (uintptr, bool) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		if rv.Len() == 0 {
			return 0, false
		}

		return rv.Pointer(), true
	default:
		return 0, false
	}
}
