package compactor

import (
	"encoding/binary"
	"errors"
	"testing"
)

// FuzzRoundTrip checks that any sequence of 32-bit words survives a round
// trip and that the encoded size matches the estimate.
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF})
	f.Add([]byte{1, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})

	f.Fuzz(func(t *testing.T, raw []byte) {
		words := make([]uint32, len(raw)/4)
		for i := range words {
			words[i] = binary.LittleEndian.Uint32(raw[i*4:])
		}

		data, strategy := Compact(words)
		if len(data) != EstimateSize(words) {
			t.Fatalf("encoded %d bytes, estimated %d", len(data), EstimateSize(words))
		}

		got, err := Expand[uint32](data, len(words), strategy)
		if err != nil {
			t.Fatalf("Expand: %v", err)
		}
		for i := range words {
			if got[i] != words[i] {
				t.Fatalf("word %d: got %#x, want %#x", i, got[i], words[i])
			}
		}
	})
}

// FuzzDecode checks that arbitrary input never panics and only fails with
// corrupt-stream errors.
func FuzzDecode(f *testing.F) {
	f.Add([]byte{0x00}, uint16(0), false)
	f.Add([]byte{0x01, 0x00, 0x00, 0x00, 0x00}, uint16(32), true)
	f.Add([]byte{0xFF, 0xFF, 0xFF}, uint16(3), true)

	f.Fuzz(func(t *testing.T, data []byte, count uint16, ones bool) {
		strategy := StrategyZeros
		if ones {
			strategy = StrategyOnes
		}
		_, err := Expand[uint32](data, int(count), strategy)
		if err != nil && !errors.Is(err, ErrCorrupt) {
			t.Fatalf("unexpected error class: %v", err)
		}
	})
}
