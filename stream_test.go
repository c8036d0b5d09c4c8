package cmsgpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamInterleavedEncodeDecode(t *testing.T) {
	s := NewStream()

	require.NoError(t, s.Encode("first"))
	require.NoError(t, s.Encode(uint64(2)))

	v1, err := s.Decode()
	require.NoError(t, err)
	require.Equal(t, "first", v1)

	v2, err := s.Decode()
	require.NoError(t, err)
	require.Equal(t, uint64(2), v2)
}

func TestStreamDecodeBytesDoesNotTouchOwnBuffer(t *testing.T) {
	s := NewStream()
	require.NoError(t, s.Encode("owned"))

	other, err := Encode("external")
	require.NoError(t, err)

	v, err := s.DecodeBytes(other)
	require.NoError(t, err)
	require.Equal(t, "external", v)
	require.Equal(t, 0, s.Offset())
}

func TestStreamResetClearsBufferAndOffset(t *testing.T) {
	s := NewStream()
	require.NoError(t, s.Encode("a"))

	_, err := s.Decode()
	require.NoError(t, err)
	require.NotZero(t, s.Offset())

	s.Reset()
	require.Equal(t, 0, s.Offset())
	require.Empty(t, s.Bytes())
}

func TestStreamPerCallOptionsOverrideConstructorOptions(t *testing.T) {
	s := NewStream(WithStrKeys(false))

	require.NoError(t, s.Encode(map[int]any{1: "a"}))

	_, err := s.Decode(WithStrKeys(true))
	require.Error(t, err)
}
