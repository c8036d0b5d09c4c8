package compress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allCodecs(t *testing.T) map[Algorithm]Codec {
	t.Helper()

	codecs := make(map[Algorithm]Codec)
	for _, alg := range []Algorithm{AlgorithmNone, AlgorithmLZ4, AlgorithmS2, AlgorithmZstd} {
		c, err := CreateCodec(alg)
		require.NoError(t, err)
		codecs[alg] = c
	}

	return codecs
}

func TestRoundTripAllAlgorithms(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, repeated: " +
		"the quick brown fox jumps over the lazy dog")

	for alg, codec := range allCodecs(t) {
		t.Run(alg.String(), func(t *testing.T) {
			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, decompressed)
		})
	}
}

func TestEmptyPayloadRoundTrips(t *testing.T) {
	for alg, codec := range allCodecs(t) {
		t.Run(alg.String(), func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestNoOpCompressorIsIdentity(t *testing.T) {
	codec, err := CreateCodec(AlgorithmNone)
	require.NoError(t, err)

	data := []byte{1, 2, 3}
	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, compressed)
}

func TestCreateCodecRejectsUnknownAlgorithm(t *testing.T) {
	_, err := CreateCodec(Algorithm(255))
	require.Error(t, err)
}

func TestGetCodecReturnsConsistentCodec(t *testing.T) {
	c1, err := GetCodec(AlgorithmLZ4)
	require.NoError(t, err)

	c2, err := GetCodec(AlgorithmLZ4)
	require.NoError(t, err)

	require.Equal(t, c1, c2)
}

func TestGetCodecRejectsUnknownAlgorithm(t *testing.T) {
	_, err := GetCodec(Algorithm(255))
	require.Error(t, err)
}
