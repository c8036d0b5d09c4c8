package ext

import (
	"github.com/svenboertjens/cmsgpack/compress"
	"github.com/svenboertjens/cmsgpack/errs"
)

// Compressed returns an (EncodeFunc, DecodeFunc) pair suitable for a
// Registry.Add registration: a raw byte payload ([]byte or string) is run
// through codec on the way out and reversed on the way in, so a registered
// host type gets compression for free without the core encoder/decoder
// knowing anything about it.
//
// codec is typically one of the built-ins from the compress package
// (compress.GetCodec), but any compress.Codec works.
func Compressed(codec compress.Codec) (enc func(v any) ([]byte, error), dec func(payload []byte) (any, error)) {
	enc = func(v any) ([]byte, error) {
		raw, err := toBytes(v)
		if err != nil {
			return nil, err
		}

		return codec.Compress(raw)
	}

	dec = func(payload []byte) (any, error) {
		raw, err := codec.Decompress(payload)
		if err != nil {
			return nil, err
		}

		return raw, nil
	}

	return enc, dec
}

func toBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, errs.NewTypeError("ext.Compressed: value must be []byte or string")
	}
}
