package cmsgpack

import "github.com/svenboertjens/cmsgpack/internal/buffer"

// Stream owns a growable byte buffer and a read offset, so a sequence of
// Encode/Decode calls can share one backing buffer instead of allocating a
// fresh slice per value. Encode appends to the buffer; Decode reads
// starting at the current offset and advances it by the consumed length.
//
// A Stream is not safe for concurrent use; callers serialise access to a
// single instance themselves.
type Stream struct {
	buf    *buffer.Buffer
	offset int
	opts   []Option
}

// NewStream creates an empty Stream. opts apply to every Encode/Decode call
// made through it unless overridden per-call.
func NewStream(opts ...Option) *Stream {
	return &Stream{buf: buffer.New(), opts: opts}
}

// Encode appends the encoding of v to the stream's buffer.
func (s *Stream) Encode(v any, opts ...Option) error {
	c, err := newConfig(append(append([]Option{}, s.opts...), opts...))
	if err != nil {
		return err
	}

	return encodeInto(v, s.buf, c)
}

// Decode parses one Value starting at the stream's current read offset and
// advances the offset by the consumed byte count.
func (s *Stream) Decode(opts ...Option) (any, error) {
	c, err := newConfig(append(append([]Option{}, s.opts...), opts...))
	if err != nil {
		return nil, err
	}

	v, n, err := decodeN(s.buf.Bytes()[s.offset:], c)
	if err != nil {
		return nil, err
	}

	s.offset += n

	return v, nil
}

// DecodeBytes parses one Value directly out of data, without touching the
// stream's own buffer or read offset.
func (s *Stream) DecodeBytes(data []byte, opts ...Option) (any, error) {
	c, err := newConfig(append(append([]Option{}, s.opts...), opts...))
	if err != nil {
		return nil, err
	}

	v, _, err := decodeN(data, c)

	return v, err
}

// Bytes returns the stream's full backing buffer, including bytes already
// consumed by prior Decode calls.
func (s *Stream) Bytes() []byte { return s.buf.Bytes() }

// Offset returns the stream's current read offset.
func (s *Stream) Offset() int { return s.offset }

// Reset discards the buffer's contents and resets the read offset to 0,
// retaining the underlying capacity.
func (s *Stream) Reset() {
	s.buf.Reset()
	s.offset = 0
}
