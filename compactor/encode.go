package compactor

import "fmt"

// Encode compacts words into dst and returns the number of useful bytes
// written along with the strategy that was used.
//
// Stream layout:
//
//	strategy bit || code(word 0) || ... || code(word N-1) || '00'
//
// where code(w) is
//   - '0'         if w is the majority pattern
//   - '10'        if w is the minority pattern
//   - '11' || w   otherwise, w written least significant bit first
//
// dst must hold at least EstimateSize(words) bytes. Encoding pads the last
// 64-bit word with zeros, so bytes of dst past the returned length, up to
// the next multiple of 8, may be overwritten.
//
// The word count and strategy are not recorded in the stream; callers
// must keep both to decode.
func (c *Compactor[W]) Encode(dst []byte, words []W) (int, Strategy, error) {
	width := c.Width()
	census := TakeCensus(words)
	strategy := census.Strategy()
	numBits := census.Bits(width)
	n := (numBits + 7) / 8

	if len(dst) < n {
		return 0, strategy, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, len(dst))
	}

	s := &c.stream
	s.Bind(dst)

	if err := s.WriteBit(int(strategy)); err != nil {
		return 0, strategy, err
	}

	majority, minority := patterns[W](strategy)
	for _, v := range words {
		if err := c.encodeWord(v, majority, minority, width); err != nil {
			return 0, strategy, err
		}
	}

	// Terminator '00'
	if err := s.WriteBits(0, 2); err != nil {
		return 0, strategy, err
	}

	if s.TellWrite() != numBits {
		return 0, strategy, fmt.Errorf("compactor: wrote %d bits, expected %d", s.TellWrite(), numBits)
	}

	if err := s.Flush(); err != nil {
		return 0, strategy, err
	}

	c.stats = Stats{
		Strategy: strategy,
		Words:    len(words),
		Literals: census.Literals,
		Bits:     numBits,
	}
	if strategy == StrategyOnes {
		c.stats.Majority, c.stats.Minority = census.Ones, census.Zeros
	} else {
		c.stats.Majority, c.stats.Minority = census.Zeros, census.Ones
	}

	return n, strategy, nil
}

func (c *Compactor[W]) encodeWord(v, majority, minority W, width int) error {
	s := &c.stream

	switch v {
	case majority:
		return s.WriteBit(0)
	case minority:
		return s.WriteBits(0b01, 2) // '1' then '0'
	default:
		if err := s.WriteBits(0b11, 2); err != nil {
			return err
		}
		return s.WriteBits(uint64(v), width)
	}
}
