// Package buffer implements the growable output byte sink the encoder core
// writes into, without sync.Pool recycling — a Buffer is owned exclusively
// by the encoder call or Stream that created it, never shared across
// goroutines, so pooling would add a lifetime-tracking burden the codec
// doesn't need.
package buffer

import (
	"encoding/binary"
	"math"
)

// initialCapacity is the starting allocation for a fresh Buffer.
const initialCapacity = 64

// Buffer is a growable byte sink. The zero value is not usable; use New.
type Buffer struct {
	b []byte
}

// New returns a Buffer with the default initial capacity.
func New() *Buffer {
	return &Buffer{b: make([]byte, 0, initialCapacity)}
}

// NewSize returns a Buffer pre-sized to at least n bytes.
func NewSize(n int) *Buffer {
	if n < initialCapacity {
		n = initialCapacity
	}

	return &Buffer{b: make([]byte, 0, n)}
}

// Reserve ensures n more contiguous bytes are available without a further
// reallocation. Growth is geometric (factor ≥ 1.5 via 2*cap+n) so repeated
// small writes amortise to O(1).
func (buf *Buffer) Reserve(n int) {
	have := cap(buf.b) - len(buf.b)
	if have >= n {
		return
	}

	grown := make([]byte, len(buf.b), 2*cap(buf.b)+n)
	copy(grown, buf.b)
	buf.b = grown
}

// PutByte appends a single byte.
func (buf *Buffer) PutByte(b byte) {
	buf.Reserve(1)
	buf.b = append(buf.b, b)
}

// PutBytes appends p verbatim.
func (buf *Buffer) PutBytes(p []byte) {
	buf.Reserve(len(p))
	buf.b = append(buf.b, p...)
}

// PutString appends s's bytes without an intermediate []byte copy.
func (buf *Buffer) PutString(s string) {
	buf.Reserve(len(s))
	buf.b = append(buf.b, s...)
}

// PutUint16BE appends v big-endian.
func (buf *Buffer) PutUint16BE(v uint16) {
	buf.Reserve(2)
	n := len(buf.b)
	buf.b = buf.b[:n+2]
	binary.BigEndian.PutUint16(buf.b[n:], v)
}

// PutUint32BE appends v big-endian.
func (buf *Buffer) PutUint32BE(v uint32) {
	buf.Reserve(4)
	n := len(buf.b)
	buf.b = buf.b[:n+4]
	binary.BigEndian.PutUint32(buf.b[n:], v)
}

// PutUint64BE appends v big-endian.
func (buf *Buffer) PutUint64BE(v uint64) {
	buf.Reserve(8)
	n := len(buf.b)
	buf.b = buf.b[:n+8]
	binary.BigEndian.PutUint64(buf.b[n:], v)
}

// PutFloat32BE appends v's IEEE-754 bit pattern big-endian.
func (buf *Buffer) PutFloat32BE(v float32) {
	buf.PutUint32BE(math.Float32bits(v))
}

// PutFloat64BE appends v's IEEE-754 bit pattern big-endian.
func (buf *Buffer) PutFloat64BE(v float64) {
	buf.PutUint64BE(math.Float64bits(v))
}

// Len reports the number of bytes written so far.
func (buf *Buffer) Len() int {
	return len(buf.b)
}

// Bytes returns the written bytes. The slice is valid only until the next
// mutating call on buf.
func (buf *Buffer) Bytes() []byte {
	return buf.b
}

// Reset empties the buffer while retaining its backing array.
func (buf *Buffer) Reset() {
	buf.b = buf.b[:0]
}
