package mask

import (
	"fmt"

	"github.com/tanagraspace/bitmask-compactor/compactor"
)

// Compact returns the mask as a compacted chunk.
func (m *Mask) Compact() compactor.Chunk {
	data, strategy := compactor.Compact(m.words)
	return compactor.Chunk{Count: len(m.words), Strategy: strategy, Data: data}
}

// FromChunk expands a chunk produced by Compact into a mask of n values.
func FromChunk(ch compactor.Chunk, n int) (*Mask, error) {
	if ch.Count != NumWords(n) {
		return nil, fmt.Errorf("%w: chunk has %d words, %d values need %d", ErrLengthMismatch, ch.Count, n, NumWords(n))
	}
	words, err := compactor.Expand[uint32](ch.Data, ch.Count, ch.Strategy)
	if err != nil {
		return nil, err
	}
	return FromWords(words, n)
}
