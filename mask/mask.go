// Package mask builds validity bitmasks for floating-point fields with
// missing values.
//
// A mask has one bit per value: 1 for a valid value and 0 for a missing
// one. Bit i lives in word i/32 at position i%32 (least significant bit
// first). Fields with large missing regions produce masks made mostly of
// all-0 and all-1 words, which package compactor stores in a few bits.
package mask

import (
	"errors"
	"fmt"
	"math/bits"
)

// WordBits is the number of mask bits per word.
const WordBits = 32

// ErrLengthMismatch is returned when a mask does not cover a field.
var ErrLengthMismatch = errors.New("mask: length mismatch")

// Mask is a fixed-length validity bitmask.
type Mask struct {
	words  []uint32
	length int // number of values covered
}

// New creates a mask of n values, all marked missing.
func New(n int) (*Mask, error) {
	if n < 0 {
		return nil, errors.New("mask: length must not be negative")
	}
	return &Mask{
		words:  make([]uint32, NumWords(n)),
		length: n,
	}, nil
}

// FromWords wraps existing mask words covering n values. The words are
// not copied.
func FromWords(words []uint32, n int) (*Mask, error) {
	if n < 0 || len(words) != NumWords(n) {
		return nil, fmt.Errorf("%w: %d words cannot cover %d values", ErrLengthMismatch, len(words), n)
	}
	if r := n % WordBits; r != 0 && words[len(words)-1]>>r != 0 {
		return nil, fmt.Errorf("mask: bits set past value %d", n)
	}
	return &Mask{words: words, length: n}, nil
}

// NumWords returns the number of words needed for n values.
func NumWords(n int) int {
	return (n + WordBits - 1) / WordBits
}

// Len returns the number of values covered.
func (m *Mask) Len() int {
	return m.length
}

// Words returns the underlying words. Bits past Len are zero.
func (m *Mask) Words() []uint32 {
	return m.words
}

// Valid reports whether value i is valid.
// Positions outside the mask are reported as missing.
func (m *Mask) Valid(i int) bool {
	if i < 0 || i >= m.length {
		return false
	}
	return m.words[i/WordBits]>>(i%WordBits)&1 == 1
}

// Set marks value i as valid or missing.
func (m *Mask) Set(i int, valid bool) {
	if i < 0 || i >= m.length {
		return
	}
	if valid {
		m.words[i/WordBits] |= 1 << (i % WordBits)
	} else {
		m.words[i/WordBits] &^= 1 << (i % WordBits)
	}
}

// CountValid returns the number of valid values.
func (m *Mask) CountValid() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount32(w)
	}
	return n
}
