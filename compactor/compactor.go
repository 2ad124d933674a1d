package compactor

import (
	"errors"
	"fmt"
	"math/bits"
)

// Version is the library version.
const Version = "1.0.0"

var (
	// ErrCorrupt is wrapped by every error that reports a malformed
	// compact stream.
	ErrCorrupt = errors.New("compactor: corrupt stream")

	// ErrStrategyMismatch is returned when the strategy bit of a stream
	// differs from the strategy supplied by the caller.
	ErrStrategyMismatch = fmt.Errorf("%w: strategy bit mismatch", ErrCorrupt)

	// ErrBadTerminator is returned when the two bits after the last word
	// are not '00'.
	ErrBadTerminator = fmt.Errorf("%w: bad terminator", ErrCorrupt)

	// ErrTruncated is returned when a stream ends before all words and the
	// terminator were read.
	ErrTruncated = fmt.Errorf("%w: truncated", ErrCorrupt)
)

// Word is the set of fixed-width unsigned integers the codec works on.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// WidthOf returns the width in bits of W.
func WidthOf[W Word]() int {
	return bits.OnesCount64(uint64(^W(0)))
}

// Strategy records which special pattern is encoded with a single bit.
type Strategy uint8

const (
	// StrategyZeros: all-zero words are the majority.
	StrategyZeros Strategy = 0
	// StrategyOnes: all-one words are the majority.
	StrategyOnes Strategy = 1
)

func (s Strategy) String() string {
	switch s {
	case StrategyZeros:
		return "zeros"
	case StrategyOnes:
		return "ones"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// patterns returns the (majority, minority) words for strategy s.
func patterns[W Word](s Strategy) (W, W) {
	if s == StrategyOnes {
		return ^W(0), 0
	}
	return 0, ^W(0)
}

// Census holds the number of all-zero, all-one, and other words in a
// sequence.
type Census struct {
	Zeros    int
	Ones     int
	Literals int
}

// TakeCensus scans words once and counts each kind.
func TakeCensus[W Word](words []W) Census {
	all0 := W(0)
	all1 := ^all0

	var c Census
	for _, v := range words {
		switch v {
		case all0:
			c.Zeros++
		case all1:
			c.Ones++
		default:
			c.Literals++
		}
	}
	return c
}

// Words returns the total number of words counted.
func (c Census) Words() int {
	return c.Zeros + c.Ones + c.Literals
}

// Strategy returns StrategyOnes only if all-one words strictly outnumber
// all-zero words. Ties go to StrategyZeros.
func (c Census) Strategy() Strategy {
	if c.Ones > c.Zeros {
		return StrategyOnes
	}
	return StrategyZeros
}

// Bits returns the exact length in bits of the compact stream for the
// counted words at the given word width, terminator included.
//
// Cost per word:
//   - majority pattern: 1 bit  ('0')
//   - minority pattern: 2 bits ('10')
//   - literal: 2 + width bits  ('11' || word)
func (c Census) Bits(width int) int {
	majority, minority := c.Zeros, c.Ones
	if c.Strategy() == StrategyOnes {
		majority, minority = c.Ones, c.Zeros
	}
	return 1 + majority + 2*minority + (2+width)*c.Literals + 2
}

// Bytes returns Bits rounded up to whole bytes.
func (c Census) Bytes(width int) int {
	return (c.Bits(width) + 7) / 8
}

// DetermineStrategy returns the strategy that encodes the more frequent of
// all-zero and all-one words with a single bit.
func DetermineStrategy[W Word](words []W) Strategy {
	return TakeCensus(words).Strategy()
}

// EstimateBits returns the exact number of bits Encode produces for words.
func EstimateBits[W Word](words []W) int {
	return TakeCensus(words).Bits(WidthOf[W]())
}

// EstimateSize returns the exact number of bytes Encode reports for words.
// Use it to size a destination buffer before encoding.
func EstimateSize[W Word](words []W) int {
	return TakeCensus(words).Bytes(WidthOf[W]())
}

// Stats describes the last operation of a Compactor.
type Stats struct {
	Strategy Strategy
	Words    int
	Majority int
	Minority int
	Literals int
	Bits     int
}

// Compactor encodes and decodes word sequences of type W.
//
// A Compactor reuses its BitStream between calls and is not safe for
// concurrent use. Independent sequences can be processed in parallel with
// one Compactor each.
type Compactor[W Word] struct {
	stream BitStream
	stats  Stats
}

// NewCompactor creates a new compactor.
func NewCompactor[W Word]() *Compactor[W] {
	return &Compactor[W]{}
}

// Width returns the word width in bits.
func (c *Compactor[W]) Width() int {
	return WidthOf[W]()
}

// Stats returns the statistics of the last Encode or Decode.
func (c *Compactor[W]) Stats() Stats {
	return c.stats
}

// Reset clears statistics and unbinds the stream.
func (c *Compactor[W]) Reset() {
	c.stream.Bind(nil)
	c.stats = Stats{}
}
