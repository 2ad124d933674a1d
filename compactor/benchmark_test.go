package compactor

import (
	"math/rand"
	"testing"
)

func benchWords(n int) []uint32 {
	return maskLike[uint32](rand.New(rand.NewSource(1)), n)
}

func BenchmarkDetermineStrategy(b *testing.B) {
	words := benchWords(1 << 16)
	b.SetBytes(int64(len(words) * 4))

	for i := 0; i < b.N; i++ {
		_ = DetermineStrategy(words)
	}
}

func BenchmarkEncode(b *testing.B) {
	words := benchWords(1 << 16)
	dst := make([]byte, EstimateSize(words))
	c := NewCompactor[uint32]()

	b.ResetTimer()
	b.SetBytes(int64(len(words) * 4))

	for i := 0; i < b.N; i++ {
		if _, _, err := c.Encode(dst, words); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	words := benchWords(1 << 16)
	data, strategy := Compact(words)
	dst := make([]uint32, len(words))
	c := NewCompactor[uint32]()

	b.ResetTimer()
	b.SetBytes(int64(len(words) * 4))

	for i := 0; i < b.N; i++ {
		if err := c.Decode(data, dst, strategy); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeChunks(b *testing.B) {
	words := benchWords(1 << 20)

	b.ResetTimer()
	b.SetBytes(int64(len(words) * 4))

	for i := 0; i < b.N; i++ {
		if _, err := EncodeChunks(words, 1<<14, 0); err != nil {
			b.Fatal(err)
		}
	}
}
