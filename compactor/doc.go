// Package compactor losslessly shrinks sequences of fixed-width words that
// are dominated by two patterns: all bits zero and all bits one.
//
// The typical input is a bitmask that marks missing values with 0 and
// valid values with 1. Such masks consist mostly of long runs of all-0 and
// all-1 words, with a few mixed words at the edges of missing regions.
//
// Each word is encoded in one of three ways:
//   - the more frequent of all-0 / all-1 (the majority pattern): '0'
//   - the other one (the minority pattern): '10'
//   - anything else (a literal): '11' followed by the word itself
//
// The stream starts with a strategy bit telling which pattern is the
// majority and ends with the terminator '00'. The word count and the
// strategy are not stored in the stream; keep them next to it (see Chunk
// and WriteContainer).
//
// Basic usage:
//
//	// Compact a mask
//	data, strategy := compactor.Compact(mask)
//
//	// Expand it again
//	mask, err := compactor.Expand[uint32](data, len(mask), strategy)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// To encode into a caller-owned buffer, size it with EstimateSize and use
// Encode. A BitStream is the bit-level cursor the codec runs on; it never
// allocates and can be bound to any byte slice.
package compactor
