package compactor

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrShortBuffer is returned when a write would go past the bound memory.
	ErrShortBuffer = errors.New("compactor: buffer too small")

	// ErrEndOfStream is returned when a read would go past the bound memory.
	ErrEndOfStream = errors.New("compactor: no more bits to read")
)

// BitStream reads or writes a bit sequence in memory owned by the caller.
//
// The stream never allocates or copies. Bits are buffered in a 64-bit
// accumulator and moved to or from memory one 64-bit word at a time.
//
// Bit Ordering:
//   - The first bit written becomes the least significant bit of the word
//   - Words are stored little-endian
//
// so the resulting byte stream is LSB-first within each byte.
//
// A BitStream has a single owner. Use one stream per goroutine.
type BitStream struct {
	mem  []byte
	pos  int    // byte offset of the next word to load or store
	buf  uint64 // incoming/outgoing bits
	bits int    // number of buffered bits (0 <= bits < 64)
}

// NewBitStream creates a stream bound to mem.
func NewBitStream(mem []byte) *BitStream {
	s := &BitStream{}
	s.Bind(mem)
	return s
}

// Bind makes the stream use mem and rewinds it.
//
// Only the first 8*len(mem) bits are addressable. mem must stay valid for
// as long as the stream is used.
func (s *BitStream) Bind(mem []byte) {
	s.mem = mem
	s.Rewind()
}

// Rewind positions the stream at the beginning for reading or writing.
// Memory contents are left untouched.
func (s *BitStream) Rewind() {
	s.pos = 0
	s.buf = 0
	s.bits = 0
}

// Len returns the number of addressable bits.
func (s *BitStream) Len() int {
	return len(s.mem) * 8
}

// TellWrite returns the bit offset of the next bit to be written.
func (s *BitStream) TellWrite() int {
	return s.pos*8 + s.bits
}

// TellRead returns the bit offset of the next bit to be read.
func (s *BitStream) TellRead() int {
	return s.pos*8 - s.bits
}

// WriteBit appends a single bit. Any non-zero value writes a 1.
func (s *BitStream) WriteBit(bit int) error {
	if s.TellWrite() >= s.Len() {
		return ErrShortBuffer
	}

	if bit != 0 {
		s.buf |= 1 << s.bits
	}
	s.bits++

	if s.bits == 64 {
		s.store()
		s.buf = 0
		s.bits = 0
	}
	return nil
}

// WriteBits appends the low count bits of value, least significant first.
func (s *BitStream) WriteBits(value uint64, count int) error {
	if count < 0 || count > 64 {
		return fmt.Errorf("compactor: cannot write %d bits at once", count)
	}
	if s.TellWrite()+count > s.Len() {
		return fmt.Errorf("%w: need %d bits, have %d", ErrShortBuffer, count, s.Len()-s.TellWrite())
	}

	for i := 0; i < count; i++ {
		// Range was checked above.
		_ = s.WriteBit(int(value>>i) & 1)
	}
	return nil
}

// ReadBit reads and consumes a single bit.
func (s *BitStream) ReadBit() (int, error) {
	if s.TellRead() >= s.Len() {
		return 0, ErrEndOfStream
	}

	if s.bits == 0 {
		s.load()
	}
	bit := int(s.buf & 1)
	s.buf >>= 1
	s.bits--
	return bit, nil
}

// ReadBits reads count bits and returns them with the first bit read in
// the least significant position.
func (s *BitStream) ReadBits(count int) (uint64, error) {
	if count < 0 || count > 64 {
		return 0, fmt.Errorf("compactor: cannot read %d bits at once", count)
	}
	if s.TellRead()+count > s.Len() {
		return 0, fmt.Errorf("%w: need %d bits, have %d", ErrEndOfStream, count, s.Len()-s.TellRead())
	}

	var value uint64
	for i := 0; i < count; i++ {
		bit, _ := s.ReadBit()
		value |= uint64(bit) << i
	}
	return value, nil
}

// Flush writes any buffered bits and aligns the stream on the next word
// boundary. Unused high bits of the last word are zero.
//
// If the memory ends inside the last word, only the existing bytes are
// written.
func (s *BitStream) Flush() error {
	if s.bits == 0 {
		return nil
	}
	if s.TellWrite() > s.Len() {
		return ErrShortBuffer
	}

	s.store()
	s.buf = 0
	s.bits = 0
	return nil
}

// store writes the accumulator at the current word and advances.
func (s *BitStream) store() {
	rest := s.mem[s.pos:]
	if len(rest) >= 8 {
		binary.LittleEndian.PutUint64(rest, s.buf)
	} else {
		var word [8]byte
		binary.LittleEndian.PutUint64(word[:], s.buf)
		copy(rest, word[:])
	}
	s.pos += 8
}

// load fills the accumulator from the current word and advances.
// A trailing partial word is zero-extended.
func (s *BitStream) load() {
	rest := s.mem[s.pos:]
	if len(rest) >= 8 {
		s.buf = binary.LittleEndian.Uint64(rest)
	} else {
		var word [8]byte
		copy(word[:], rest)
		s.buf = binary.LittleEndian.Uint64(word[:])
	}
	s.pos += 8
	s.bits = 64
}
