// This file intentionally carries no package comment of its own — see
// cmsgpack.go for the package doc. Entry points live across cmsgpack.go
// (Encode/Decode/Options), extensions.go (Extensions registry), stream.go
// (in-memory Stream), and filestream.go (file-backed FileStream). The ext
// subpackage holds the built-in Timestamp extension and the
// compression-backed Compressed helper; the compress subpackage holds the
// Codec implementations those helpers wrap.

package cmsgpack
