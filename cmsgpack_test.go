package cmsgpack

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTripsScalarsAndContainers(t *testing.T) {
	values := []any{
		nil, true, false,
		uint64(0), uint64(127), int64(-1), int64(-32), uint64(255),
		3.5, "hello", []byte{1, 2, 3},
		[]any{uint64(1), "two", 3.0},
		map[any]any{"a": uint64(1), "b": uint64(2)},
	}

	for _, v := range values {
		data, err := Encode(v)
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestStrKeysOptionRejectsNonStringKeys(t *testing.T) {
	_, err := Encode(map[int]any{1: "a"}, WithStrKeys(true))
	require.Error(t, err)
}

func TestStrKeysOptionDecodesAsStringMap(t *testing.T) {
	data, err := Encode(map[string]any{"x": uint64(1)})
	require.NoError(t, err)

	v, err := Decode(data, WithStrKeys(true))
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	require.Equal(t, uint64(1), m["x"])
}

func TestMaxDepthOptionRejectsDeepNesting(t *testing.T) {
	var v any = uint64(1)
	for i := 0; i < 10; i++ {
		v = []any{v}
	}

	data, err := Encode(v)
	require.NoError(t, err)

	_, err = Decode(data, WithMaxDepth(3))
	require.Error(t, err)
}

func TestWithExtensionsRoundTripsRegisteredType(t *testing.T) {
	type point struct{ X, Y int32 }

	exts := NewExtensions()
	err := exts.Add(5, reflect.TypeOf(point{}),
		func(v any) ([]byte, error) {
			p := v.(point)

			return []byte{byte(p.X), byte(p.Y)}, nil
		},
		func(payload []byte) (any, error) {
			return point{X: int32(payload[0]), Y: int32(payload[1])}, nil
		},
	)
	require.NoError(t, err)

	data, err := Encode(point{X: 3, Y: 4}, WithExtensions(exts))
	require.NoError(t, err)

	v, err := Decode(data, WithExtensions(exts))
	require.NoError(t, err)
	require.Equal(t, point{X: 3, Y: 4}, v)
}

func TestEncodeWithoutExtensionsFailsOnUnknownType(t *testing.T) {
	type opaque struct{ V int }

	_, err := Encode(opaque{V: 1})
	require.Error(t, err)
}
