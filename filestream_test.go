package cmsgpack

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStreamEncodeDecodeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.msgpack")

	fs, err := OpenFileStream(path)
	require.NoError(t, err)
	defer fs.Close()

	require.NoError(t, fs.Encode("first"))
	require.NoError(t, fs.Encode(uint64(99)))

	v1, err := fs.Decode()
	require.NoError(t, err)
	require.Equal(t, "first", v1)

	v2, err := fs.Decode()
	require.NoError(t, err)
	require.Equal(t, uint64(99), v2)
}

func TestFileStreamIndependentReadersShareFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.msgpack")

	writer, err := OpenFileStream(path)
	require.NoError(t, err)
	require.NoError(t, writer.Encode("shared value"))
	require.NoError(t, writer.Close())

	readerA, err := OpenFileStream(path)
	require.NoError(t, err)
	defer readerA.Close()

	readerB, err := OpenFileStream(path)
	require.NoError(t, err)
	defer readerB.Close()

	vA, err := readerA.Decode()
	require.NoError(t, err)
	require.Equal(t, "shared value", vA)

	vB, err := readerB.Decode()
	require.NoError(t, err)
	require.Equal(t, "shared value", vB)
}

func TestFileStreamDecodeGrowsWindowAcrossChunkBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunked.msgpack")

	writer, err := OpenFileStream(path, WithChunkSize(4))
	require.NoError(t, err)

	big := make([]byte, 100)
	for i := range big {
		big[i] = byte(i)
	}
	require.NoError(t, writer.Encode(big))
	require.NoError(t, writer.Close())

	reader, err := OpenFileStream(path, WithChunkSize(4))
	require.NoError(t, err)
	defer reader.Close()

	v, err := reader.Decode()
	require.NoError(t, err)
	require.Equal(t, big, v)
}

func TestFileStreamDecodeOnEmptyFileReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.msgpack")

	fs, err := OpenFileStream(path)
	require.NoError(t, err)
	defer fs.Close()

	_, err = fs.Decode()
	require.Error(t, err)
}

func TestWithReadingOffsetSkipsLeadingValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offset.msgpack")

	writer, err := OpenFileStream(path)
	require.NoError(t, err)
	require.NoError(t, writer.Encode("skip me"))
	require.NoError(t, writer.Encode("read me"))
	require.NoError(t, writer.Close())

	probe, err := OpenFileStream(path)
	require.NoError(t, err)
	_, err = probe.Decode()
	require.NoError(t, err)
	skipTo := probe.Offset()
	require.NoError(t, probe.Close())

	reader, err := OpenFileStream(path, WithReadingOffset(skipTo))
	require.NoError(t, err)
	defer reader.Close()

	v, err := reader.Decode()
	require.NoError(t, err)
	require.Equal(t, "read me", v)
}
