// Package compress provides compression codecs for extension payloads.
//
// # Overview
//
// The codec's wire format has no compression concept of its own — Ext
// payloads are opaque bytes chosen entirely by the registered encode
// function. This package gives those encode functions something to reach
// for: a byte-slice-in, byte-slice-out Codec with several algorithm choices,
// intended for use from ext.Compressed (see the ext package) rather than
// from the core encoder/decoder.
//
// Supported algorithms:
//   - None: no compression, for testing or already-compressed payloads
//   - LZ4: fast decompression, moderate ratio
//   - S2: balanced speed and ratio
//   - Zstd: best ratio, higher CPU cost
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Choosing an algorithm
//
// | Workload               | Recommended | Reason                         |
// |-------------------------|-------------|---------------------------------|
// | Large text/JSON blobs   | Zstd        | Best ratio                      |
// | Latency-sensitive       | LZ4         | Fastest decompression           |
// | General purpose         | S2          | Balanced speed and ratio        |
// | Already-compressed data | None        | Avoid wasted CPU                |
//
// # Thread safety
//
// All Codec implementations in this package are safe for concurrent use;
// internal pools (LZ4, Zstd) are synchronized with sync.Pool.
package compress
