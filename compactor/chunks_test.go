package compactor

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeChunksRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	words := maskLike[uint32](rng, 10_000)

	for _, workers := range []int{0, 1, 4} {
		chunks, err := EncodeChunks(words, 1024, workers)
		require.NoError(t, err)
		require.Len(t, chunks, 10)
		assert.Equal(t, 10_000-9*1024, chunks[9].Count)
		assert.Equal(t, len(words), TotalWords(chunks))

		got, err := DecodeChunks[uint32](chunks, workers)
		require.NoError(t, err)
		if diff := cmp.Diff(words, got); diff != "" {
			t.Fatalf("workers=%d: mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestEncodeChunksMatchesEncode(t *testing.T) {
	words := append(halfHalf(), withLiterals()...)
	chunks, err := EncodeChunks(words, 32, 2)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	want0, s0 := Compact(halfHalf())
	assert.Equal(t, Chunk{Count: 32, Strategy: s0, Data: want0}, chunks[0])

	total := 0
	for _, ch := range chunks {
		total += len(ch.Data)
	}
	assert.Equal(t, total, TotalBytes(chunks))
}

func TestEncodeChunksInvalidSize(t *testing.T) {
	_, err := EncodeChunks([]uint32{1}, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)
	_, err = EncodeChunks([]uint32{1}, -5, 1)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)
}

func TestEncodeChunksEmpty(t *testing.T) {
	chunks, err := EncodeChunks([]uint64{}, 16, 0)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	words, err := DecodeChunks[uint64](chunks, 0)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestDecodeChunksReportsCorruptChunk(t *testing.T) {
	words := append(allOnes(64), allZeros(64)...)
	chunks, err := EncodeChunks(words, 32, 0)
	require.NoError(t, err)

	chunks[2].Data = flipBit(chunks[2].Data, 0)
	_, err = DecodeChunks[uint32](chunks, 0)
	assert.ErrorIs(t, err, ErrStrategyMismatch)
	assert.Contains(t, err.Error(), "chunk 2")
}

func TestDecodeChunksNegativeCount(t *testing.T) {
	_, err := DecodeChunks[uint32]([]Chunk{{Count: -1}}, 0)
	assert.ErrorIs(t, err, ErrCorrupt)
}
