package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AllAlgorithmsRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, repeated: the quick brown fox jumps over the lazy dog")

	for _, algo := range []Algorithm{None, Zstd, S2, LZ4} {
		t.Run(algo.String(), func(t *testing.T) {
			codec, err := New(algo)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)

			assert.Equal(t, payload, decompressed)
		})
	}
}

func TestNew_UnsupportedAlgorithm(t *testing.T) {
	_, err := New(Algorithm(200))
	assert.Error(t, err)
}

func TestNoOpCompressor_ReturnsInputUnchanged(t *testing.T) {
	data := []byte("passthrough")
	c := NewNoOpCompressor()

	compressed, err := c.Compress(data)
	require.NoError(t, err)
	assert.Equal(t, data, compressed)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestAlgorithm_String(t *testing.T) {
	assert.Equal(t, "zstd", Zstd.String())
	assert.Contains(t, Algorithm(99).String(), "99")
}
