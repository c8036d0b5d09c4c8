package compress

import "fmt"

// Algorithm identifies a compression scheme a Codec implements.
type Algorithm uint8

const (
	AlgorithmNone Algorithm = iota + 1
	AlgorithmLZ4
	AlgorithmS2
	AlgorithmZstd
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "None"
	case AlgorithmLZ4:
		return "LZ4"
	case AlgorithmS2:
		return "S2"
	case AlgorithmZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}

// Compressor compresses an ext payload before it goes on the wire. It
// operates on arbitrary bytes handed to it by an ext.Compressed encoder, so
// any Bin/Str-shaped extension payload can opt into compression.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is owned by the caller; it is newly allocated,
	//     except NoOpCompressor's, which is the input slice itself
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Thread Safety: implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses data and returns the original result.
	//
	// Error conditions:
	//   - Returns error if data is corrupted or invalid
	//   - Returns error if data was compressed with an incompatible algorithm
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the given
// algorithm.
func CreateCodec(algorithm Algorithm) (Codec, error) {
	switch algorithm {
	case AlgorithmNone:
		return NewNoOpCompressor(), nil
	case AlgorithmZstd:
		return NewZstdCompressor(), nil
	case AlgorithmS2:
		return NewS2Compressor(), nil
	case AlgorithmLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("compress: unknown algorithm: %s", algorithm)
	}
}

var builtinCodecs = map[Algorithm]Codec{
	AlgorithmNone: NewNoOpCompressor(),
	AlgorithmZstd: NewZstdCompressor(),
	AlgorithmS2:   NewS2Compressor(),
	AlgorithmLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a shared built-in Codec for the given algorithm.
func GetCodec(algorithm Algorithm) (Codec, error) {
	if codec, ok := builtinCodecs[algorithm]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: unsupported algorithm: %s", algorithm)
}
