// Package cursor implements the bounded input reader the decoder core reads
// wire bytes through: an explicit read offset checked against the input's
// length on every read, rather than validated once up front, since a
// MessagePack value's total length isn't known until it's parsed.
package cursor

import (
	"encoding/binary"
	"math"

	"github.com/svenboertjens/cmsgpack/errs"
)

// Cursor is a bounded byte source with a checked advancing position.
type Cursor struct {
	data []byte
	pos  int
}

// New wraps data for sequential, bounds-checked reading starting at offset 0.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total number of bytes backing the cursor.
func (c *Cursor) Len() int { return len(c.data) }

// Remaining reports how many unread bytes are left.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

func (c *Cursor) require(n int) error {
	if c.pos+n > len(c.data) {
		return errs.NewValueError("unexpected end of input")
	}

	return nil
}

// ReadByte consumes and returns one byte.
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}

	b := c.data[c.pos]
	c.pos++

	return b, nil
}

// PeekByte returns the next byte without advancing the cursor.
func (c *Cursor) PeekByte() (byte, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}

	return c.data[c.pos], nil
}

// ReadBytes returns a zero-copy view of the next n bytes and advances past
// them. Callers that need an owned copy must clone it themselves.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}

	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

// ReadUint16BE reads a big-endian uint16.
func (c *Cursor) ReadUint16BE() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(b), nil
}

// ReadUint32BE reads a big-endian uint32.
func (c *Cursor) ReadUint32BE() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b), nil
}

// ReadUint64BE reads a big-endian uint64.
func (c *Cursor) ReadUint64BE() (uint64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(b), nil
}

// ReadFloat32BE reads a big-endian IEEE-754 single.
func (c *Cursor) ReadFloat32BE() (float32, error) {
	v, err := c.ReadUint32BE()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

// ReadFloat64BE reads a big-endian IEEE-754 double.
func (c *Cursor) ReadFloat64BE() (float64, error) {
	v, err := c.ReadUint64BE()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}
