package compactor

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidChunkSize is returned when a chunk size is not positive.
var ErrInvalidChunkSize = errors.New("compactor: chunk size must be positive")

// Chunk is one independently compacted run of words together with the
// metadata needed to decode it.
type Chunk struct {
	Count    int      // number of encoded words
	Strategy Strategy // strategy returned by the encoder
	Data     []byte   // compact stream
}

// EncodeChunks splits words into chunks of chunkWords words (the last one
// may be shorter) and compacts them in parallel.
//
// workers limits the number of goroutines; workers <= 0 uses GOMAXPROCS.
// Each chunk is encoded by its own Compactor, so no state is shared.
func EncodeChunks[W Word](words []W, chunkWords, workers int) ([]Chunk, error) {
	if chunkWords <= 0 {
		return nil, ErrInvalidChunkSize
	}
	if len(words) == 0 {
		return []Chunk{}, nil
	}

	parts := lo.Chunk(words, chunkWords)
	chunks := make([]Chunk, len(parts))

	var g errgroup.Group
	g.SetLimit(workerLimit(workers))
	for i, part := range parts {
		i, part := i, part
		g.Go(func() error {
			comp := NewCompactor[W]()
			dst := make([]byte, EstimateSize(part))
			n, strategy, err := comp.Encode(dst, part)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			chunks[i] = Chunk{Count: len(part), Strategy: strategy, Data: dst[:n]}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// DecodeChunks expands chunks in parallel and concatenates the words in
// chunk order.
func DecodeChunks[W Word](chunks []Chunk, workers int) ([]W, error) {
	offsets := make([]int, len(chunks)+1)
	for i, ch := range chunks {
		if ch.Count < 0 {
			return nil, fmt.Errorf("chunk %d: %w: negative word count", i, ErrCorrupt)
		}
		offsets[i+1] = offsets[i] + ch.Count
	}

	words := make([]W, offsets[len(chunks)])

	var g errgroup.Group
	g.SetLimit(workerLimit(workers))
	for i, ch := range chunks {
		i, ch := i, ch
		g.Go(func() error {
			dst := words[offsets[i]:offsets[i+1]]
			if err := NewCompactor[W]().Decode(ch.Data, dst, ch.Strategy); err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return words, nil
}

// TotalWords returns the number of words stored in chunks.
func TotalWords(chunks []Chunk) int {
	return lo.SumBy(chunks, func(ch Chunk) int { return ch.Count })
}

// TotalBytes returns the number of compact stream bytes stored in chunks.
func TotalBytes(chunks []Chunk) int {
	return lo.SumBy(chunks, func(ch Chunk) int { return len(ch.Data) })
}

func workerLimit(workers int) int {
	if workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return workers
}
