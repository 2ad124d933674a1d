package compactor

import "fmt"

// Encode compacts words into dst using a new Compactor.
// See Compactor.Encode.
func Encode[W Word](dst []byte, words []W) (int, Strategy, error) {
	return NewCompactor[W]().Encode(dst, words)
}

// Decode expands src into dst using a new Compactor.
// See Compactor.Decode.
func Decode[W Word](src []byte, dst []W, strategy Strategy) error {
	return NewCompactor[W]().Decode(src, dst, strategy)
}

// Compact returns the compact stream for words and the strategy used.
//
// The returned slice is exactly EstimateSize(words) bytes long.
func Compact[W Word](words []W) ([]byte, Strategy) {
	dst := make([]byte, EstimateSize(words))
	n, strategy, err := Encode(dst, words)
	if err != nil {
		// dst is sized from the same census Encode uses.
		panic(fmt.Sprintf("compactor: encode into exact-size buffer: %v", err))
	}
	return dst[:n], strategy
}

// Expand decodes count words of type W from src.
//
// Parameters:
//   - src: compact stream produced by Encode or Compact
//   - count: number of words that were encoded
//   - strategy: strategy returned by the encoder
//
// Returns the decoded words or an error wrapping ErrCorrupt.
func Expand[W Word](src []byte, count int, strategy Strategy) ([]W, error) {
	if count < 0 {
		return nil, fmt.Errorf("compactor: negative word count %d", count)
	}
	words := make([]W, count)
	if err := Decode(src, words, strategy); err != nil {
		return nil, err
	}
	return words, nil
}
