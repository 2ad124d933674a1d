package main

import (
	"fmt"

	"github.com/tanagraspace/bitmask-compactor/compactor"
)

// bytesToWords reads little-endian words of type W from data.
// len(data) must be a multiple of the word size.
func bytesToWords[W compactor.Word](data []byte) []W {
	size := compactor.WidthOf[W]() / 8
	words := make([]W, len(data)/size)
	for i := range words {
		var v uint64
		for j := size - 1; j >= 0; j-- {
			v = v<<8 | uint64(data[i*size+j])
		}
		words[i] = W(v)
	}
	return words
}

// wordsToBytes writes words as little-endian bytes.
func wordsToBytes[W compactor.Word](words []W) []byte {
	size := compactor.WidthOf[W]() / 8
	data := make([]byte, len(words)*size)
	for i, w := range words {
		v := uint64(w)
		for j := 0; j < size; j++ {
			data[i*size+j] = byte(v >> (8 * j))
		}
	}
	return data
}

func checkInput(data []byte, width int) error {
	if width != 8 && width != 16 && width != 32 && width != 64 {
		return fmt.Errorf("width must be 8, 16, 32 or 64, got %d", width)
	}
	if len(data) == 0 {
		return fmt.Errorf("input is empty")
	}
	if size := width / 8; len(data)%size != 0 {
		return fmt.Errorf("input size (%d) not divisible by word size (%d)", len(data), size)
	}
	return nil
}

func compactWords[W compactor.Word](data []byte, chunkWords, workers int) ([]compactor.Chunk, error) {
	return compactor.EncodeChunks(bytesToWords[W](data), chunkWords, workers)
}

func expandWords[W compactor.Word](chunks []compactor.Chunk, workers int) ([]byte, error) {
	words, err := compactor.DecodeChunks[W](chunks, workers)
	if err != nil {
		return nil, err
	}
	return wordsToBytes(words), nil
}

func censusWords[W compactor.Word](data []byte) compactor.Census {
	return compactor.TakeCensus(bytesToWords[W](data))
}

// compactBytes splits data into words of the given width and compacts them.
func compactBytes(data []byte, width, chunkWords, workers int) ([]compactor.Chunk, error) {
	if err := checkInput(data, width); err != nil {
		return nil, err
	}
	switch width {
	case 8:
		return compactWords[uint8](data, chunkWords, workers)
	case 16:
		return compactWords[uint16](data, chunkWords, workers)
	case 32:
		return compactWords[uint32](data, chunkWords, workers)
	default:
		return compactWords[uint64](data, chunkWords, workers)
	}
}

// expandChunks decodes chunks of words of the given width back to bytes.
func expandChunks(chunks []compactor.Chunk, width, workers int) ([]byte, error) {
	switch width {
	case 8:
		return expandWords[uint8](chunks, workers)
	case 16:
		return expandWords[uint16](chunks, workers)
	case 32:
		return expandWords[uint32](chunks, workers)
	case 64:
		return expandWords[uint64](chunks, workers)
	default:
		return nil, fmt.Errorf("unsupported word width %d", width)
	}
}

func censusBytes(data []byte, width int) (compactor.Census, error) {
	if err := checkInput(data, width); err != nil {
		return compactor.Census{}, err
	}
	switch width {
	case 8:
		return censusWords[uint8](data), nil
	case 16:
		return censusWords[uint16](data), nil
	case 32:
		return censusWords[uint32](data), nil
	default:
		return censusWords[uint64](data), nil
	}
}
