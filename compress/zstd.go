package compress

// ZstdCompressor provides Zstandard compression, favoring ratio over speed.
// Good fit for ext.Compressed payloads that are written once and read rarely
// — cold blobs, archived documents, anything where the extra compression
// time pays for itself in bytes saved on the wire.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
