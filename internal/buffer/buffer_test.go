package buffer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHasInitialCapacity(t *testing.T) {
	buf := New()
	require.Equal(t, 0, buf.Len())
	require.GreaterOrEqual(t, cap(buf.b), initialCapacity)
}

func TestPutByteAndPutBytes(t *testing.T) {
	buf := New()
	buf.PutByte(0xaa)
	buf.PutBytes([]byte{1, 2, 3})

	require.Equal(t, []byte{0xaa, 1, 2, 3}, buf.Bytes())
	require.Equal(t, 4, buf.Len())
}

func TestPutString(t *testing.T) {
	buf := New()
	buf.PutString("hi")
	require.Equal(t, []byte("hi"), buf.Bytes())
}

func TestPutUintBE(t *testing.T) {
	buf := New()
	buf.PutUint16BE(0x0102)
	buf.PutUint32BE(0x03040506)
	buf.PutUint64BE(0x0708090a0b0c0d0e)

	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e}
	require.Equal(t, want, buf.Bytes())
}

func TestPutFloatBE(t *testing.T) {
	buf := New()
	buf.PutFloat64BE(math.Inf(1))

	require.Equal(t, []byte{0x7f, 0xf0, 0, 0, 0, 0, 0, 0}, buf.Bytes())
}

func TestGrowsBeyondInitialCapacity(t *testing.T) {
	buf := New()
	big := make([]byte, initialCapacity*4)
	buf.PutBytes(big)

	require.Equal(t, len(big), buf.Len())
	require.GreaterOrEqual(t, cap(buf.b), len(big))
}

func TestResetRetainsCapacity(t *testing.T) {
	buf := New()
	buf.PutBytes(make([]byte, 100))
	c := cap(buf.b)

	buf.Reset()
	require.Equal(t, 0, buf.Len())
	require.Equal(t, c, cap(buf.b))
}
