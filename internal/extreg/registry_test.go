package extreg

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/svenboertjens/cmsgpack/errs"
)

type point struct{ X, Y int }

type coloredPoint struct {
	point
	Color string
}

func encodePoint(v any) ([]byte, error) {
	p := v.(point)

	return []byte{byte(p.X), byte(p.Y)}, nil
}

func decodePoint(payload []byte) (any, error) {
	return point{X: int(payload[0]), Y: int(payload[1])}, nil
}

func TestAddAndLookupExact(t *testing.T) {
	r := New(false, false)
	require.NoError(t, r.Add(5, reflect.TypeOf(point{}), encodePoint, decodePoint))

	id, fn, ok := r.Lookup(reflect.TypeOf(point{}))
	require.True(t, ok)
	require.Equal(t, int8(5), id)
	require.NotNil(t, fn)

	dec, ok := r.LookupDecode(5)
	require.True(t, ok)
	v, err := dec([]byte{1, 2})
	require.NoError(t, err)
	require.Equal(t, point{1, 2}, v)
}

func TestLookupMissingFails(t *testing.T) {
	r := New(false, false)
	_, _, ok := r.Lookup(reflect.TypeOf(point{}))
	require.False(t, ok)
}

func TestNegativeIDRejectedByDefault(t *testing.T) {
	r := New(false, false)
	err := r.AddEncode(-1, reflect.TypeOf(point{}), encodePoint)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrInvalidExtID))
}

func TestBuiltinAllowsNegativeID(t *testing.T) {
	r := New(false, false)
	require.NoError(t, r.AddBuiltinEncode(-1, reflect.TypeOf(point{}), encodePoint))
}

func TestNilHostTypeOrFuncRejected(t *testing.T) {
	r := New(false, false)

	err := r.AddEncode(1, nil, encodePoint)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.KindType))

	err = r.AddEncode(1, reflect.TypeOf(point{}), nil)
	require.Error(t, err)

	err = r.AddDecode(1, nil)
	require.Error(t, err)
}

func TestRemoveEncodeAndClear(t *testing.T) {
	r := New(false, false)
	require.NoError(t, r.Add(5, reflect.TypeOf(point{}), encodePoint, decodePoint))

	r.RemoveEncode(reflect.TypeOf(point{}))
	_, _, ok := r.Lookup(reflect.TypeOf(point{}))
	require.False(t, ok)

	_, ok = r.LookupDecode(5)
	require.True(t, ok) // decode side untouched by RemoveEncode

	r.Clear()
	_, ok = r.LookupDecode(5)
	require.False(t, ok)
}

func TestSubclassResolution(t *testing.T) {
	r := New(true, false)
	require.NoError(t, r.Add(5, reflect.TypeOf(point{}), encodePoint, decodePoint))

	id, fn, ok := r.Lookup(reflect.TypeOf(coloredPoint{}))
	require.True(t, ok)
	require.Equal(t, int8(5), id)
	require.NotNil(t, fn)
}

func TestSubclassResolutionDisabledByDefault(t *testing.T) {
	r := New(false, false)
	require.NoError(t, r.Add(5, reflect.TypeOf(point{}), encodePoint, decodePoint))

	_, _, ok := r.Lookup(reflect.TypeOf(coloredPoint{}))
	require.False(t, ok)
}

func TestManyRegistrationsCrossLinearScanThreshold(t *testing.T) {
	r := New(false, false)

	type t0 struct{ A int }
	type t1 struct{ A int }
	type t2 struct{ A int }
	type t3 struct{ A int }
	type t4 struct{ A int }
	type t5 struct{ A int }

	types := []reflect.Type{
		reflect.TypeOf(t0{}), reflect.TypeOf(t1{}), reflect.TypeOf(t2{}),
		reflect.TypeOf(t3{}), reflect.TypeOf(t4{}), reflect.TypeOf(t5{}),
	}

	for i, rt := range types {
		require.NoError(t, r.AddEncode(int8(i), rt, encodePoint))
	}

	for i, rt := range types {
		id, _, ok := r.Lookup(rt)
		require.True(t, ok)
		require.Equal(t, int8(i), id)
	}
}
