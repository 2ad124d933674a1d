package mask

import (
	"fmt"
	"math"
)

// LargeMagnitude is the magnitude at or above which a value counts as
// missing in ModeLargeMagnitude.
const LargeMagnitude = 1e35

// Float is the set of element types masks are built for.
type Float interface {
	~float32 | ~float64
}

// Mode selects how missing values are recognised.
type Mode int

const (
	ModeNone           Mode = iota // no missing values
	ModeNaN                        // NaN
	ModeLargeMagnitude             // |v| >= LargeMagnitude
	ModeValue                      // a specific fill value
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeNaN:
		return "nan"
	case ModeLargeMagnitude:
		return "large-magnitude"
	case ModeValue:
		return "value"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// HasNaN reports whether data contains a NaN.
func HasNaN[F Float](data []F) bool {
	for _, v := range data {
		if v != v {
			return true
		}
	}
	return false
}

// HasLargeMagnitude reports whether data contains a value with
// |v| >= LargeMagnitude.
func HasLargeMagnitude[F Float](data []F) bool {
	for _, v := range data {
		if isLarge(v) {
			return true
		}
	}
	return false
}

// HasValue reports whether data contains value exactly.
func HasValue[F Float](data []F, value F) bool {
	for _, v := range data {
		if v == value {
			return true
		}
	}
	return false
}

func isLarge[F Float](v F) bool {
	return math.Abs(float64(v)) >= LargeMagnitude
}

// Probe returns the first mode, in the order NaN, large magnitude, fill
// value, that finds a missing value in data. It returns ModeNone if none
// does.
func Probe[F Float](data []F, fill F) Mode {
	switch {
	case HasNaN(data):
		return ModeNaN
	case HasLargeMagnitude(data):
		return ModeLargeMagnitude
	case HasValue(data, fill):
		return ModeValue
	default:
		return ModeNone
	}
}

// Predicate returns the function that reports whether a value is missing
// under mode. fill is only used by ModeValue.
func Predicate[F Float](mode Mode, fill F) (func(F) bool, error) {
	switch mode {
	case ModeNone:
		return func(F) bool { return false }, nil
	case ModeNaN:
		return func(v F) bool { return v != v }, nil
	case ModeLargeMagnitude:
		return isLarge[F], nil
	case ModeValue:
		return func(v F) bool { return v == fill }, nil
	default:
		return nil, fmt.Errorf("mask: unknown mode %d", int(mode))
	}
}

// Build returns the mask of data, marking values for which missing
// returns true as missing.
func Build[F Float](data []F, missing func(F) bool) *Mask {
	m, _ := New(len(data))
	for i, v := range data {
		if !missing(v) {
			m.words[i/WordBits] |= 1 << (i % WordBits)
		}
	}
	return m
}

// BuildMode is Build with the predicate for mode.
func BuildMode[F Float](data []F, mode Mode, fill F) (*Mask, error) {
	missing, err := Predicate(mode, fill)
	if err != nil {
		return nil, err
	}
	return Build(data, missing), nil
}

// Restore writes fill at every position m marks as missing.
//
// It is the inverse of Build after a lossy round trip has replaced the
// missing values with arbitrary numbers.
func Restore[F Float](data []F, m *Mask, fill F) error {
	if m.Len() != len(data) {
		return fmt.Errorf("%w: mask covers %d values, data has %d", ErrLengthMismatch, m.Len(), len(data))
	}
	for i := range data {
		if !m.Valid(i) {
			data[i] = fill
		}
	}
	return nil
}
