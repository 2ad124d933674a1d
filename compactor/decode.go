package compactor

import (
	"errors"
	"fmt"
)

// Decode expands a compact stream produced by Encode into dst.
//
// len(dst) is the number of words to decode and strategy must be the one
// Encode returned; neither can be recovered from the stream itself.
//
// Per word:
//   - '0'       -> majority pattern
//   - '10'      -> minority pattern
//   - '11' || w -> literal w
//
// After len(dst) words the terminator '00' must follow. Any violation
// returns an error wrapping ErrCorrupt and the content of dst is undefined.
func (c *Compactor[W]) Decode(src []byte, dst []W, strategy Strategy) error {
	if strategy != StrategyZeros && strategy != StrategyOnes {
		return fmt.Errorf("compactor: invalid strategy %d", uint8(strategy))
	}

	width := c.Width()
	s := &c.stream
	s.Bind(src)
	c.stats = Stats{Strategy: strategy}

	bit, err := s.ReadBit()
	if err != nil {
		return truncated(err, "strategy")
	}
	if Strategy(bit) != strategy {
		return fmt.Errorf("%w: stream has %v, want %v", ErrStrategyMismatch, Strategy(bit), strategy)
	}

	majority, minority := patterns[W](strategy)
	for i := range dst {
		lead, err := s.ReadBit()
		if err != nil {
			return truncated(err, fmt.Sprintf("word %d", i))
		}
		if lead == 0 {
			dst[i] = majority
			c.stats.Majority++
			continue
		}

		second, err := s.ReadBit()
		if err != nil {
			return truncated(err, fmt.Sprintf("word %d", i))
		}
		if second == 0 {
			dst[i] = minority
			c.stats.Minority++
			continue
		}

		v, err := s.ReadBits(width)
		if err != nil {
			return truncated(err, fmt.Sprintf("word %d", i))
		}
		dst[i] = W(v)
		c.stats.Literals++
	}

	term, err := s.ReadBits(2)
	if err != nil {
		return truncated(err, "terminator")
	}
	if term != 0 {
		return fmt.Errorf("%w: got %02b after %d words", ErrBadTerminator, term, len(dst))
	}

	c.stats.Words = len(dst)
	c.stats.Bits = s.TellRead()
	return nil
}

func truncated(err error, at string) error {
	if errors.Is(err, ErrEndOfStream) {
		return fmt.Errorf("%w: at %s", ErrTruncated, at)
	}
	return fmt.Errorf("compactor: reading %s: %w", at, err)
}
