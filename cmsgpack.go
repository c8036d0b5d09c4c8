// Package cmsgpack implements a MessagePack encoder/decoder over Go's
// native any/reflect value model, with a registry for user-defined
// extension types and both in-memory and file-backed streaming handles.
//
// # Basic usage
//
//	data, err := cmsgpack.Encode(map[string]any{"id": 7, "tags": []any{"a", "b"}})
//	if err != nil {
//	    return err
//	}
//
//	v, err := cmsgpack.Decode(data)
package cmsgpack

import (
	"github.com/svenboertjens/cmsgpack/internal/buffer"
	"github.com/svenboertjens/cmsgpack/internal/codec"
	"github.com/svenboertjens/cmsgpack/internal/options"
)

// Option configures an Encode, Decode, Stream, or FileStream call.
type Option = options.Option[*config]

// config is the target type the public Option functions mutate. It stays
// unexported; callers only ever see the Option values WithExtensions,
// WithStrKeys, and WithMaxDepth produce.
type config struct {
	extensions *Extensions
	strKeys    bool
	maxDepth   int
}

func newConfig(opts []Option) (*config, error) {
	c := &config{}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *config) toCodecOptions() codec.Options {
	o := codec.Options{StrKeys: c.strKeys, MaxDepth: c.maxDepth}
	if c.extensions != nil {
		o.Extensions = c.extensions.registry
	}

	return o
}

// WithExtensions attaches an Extensions registry to an Encode, Decode,
// Stream, or FileStream call, so registered host types round-trip as
// MessagePack ext values instead of failing with an unsupported-kind error.
func WithExtensions(ext *Extensions) Option {
	return options.NoError(func(c *config) { c.extensions = ext })
}

// WithStrKeys requires every map key to be a string, both on encode (a
// non-string key is rejected) and decode (maps decode as map[string]any
// instead of map[any]any).
func WithStrKeys(strKeys bool) Option {
	return options.NoError(func(c *config) { c.strKeys = strKeys })
}

// WithMaxDepth bounds container nesting depth. depth <= 0 selects the
// package default (1024).
func WithMaxDepth(depth int) Option {
	return options.NoError(func(c *config) { c.maxDepth = depth })
}

// Encode serialises v into a freshly allocated byte slice.
func Encode(v any, opts ...Option) ([]byte, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return codec.Encode(v, c.toCodecOptions())
}

// encodeInto serialises v, appending the encoding to an existing buffer
// owned by the caller's Stream or FileStream.
func encodeInto(v any, buf *buffer.Buffer, c *config) error {
	return codec.EncodeInto(v, buf, c.toCodecOptions())
}

// Decode parses exactly one Value from data, ignoring any trailing bytes.
func Decode(data []byte, opts ...Option) (any, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return codec.Decode(data, c.toCodecOptions())
}

// decodeN parses exactly one Value from data and reports how many bytes it
// consumed, for Stream/FileStream to advance their read offsets by.
func decodeN(data []byte, c *config) (any, int, error) {
	return codec.DecodeN(data, c.toCodecOptions())
}
