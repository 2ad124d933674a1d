package mask

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanagraspace/bitmask-compactor/compactor"
)

func TestNewMask(t *testing.T) {
	m, err := New(70)
	require.NoError(t, err)
	assert.Equal(t, 70, m.Len())
	assert.Len(t, m.Words(), 3)
	assert.Equal(t, 0, m.CountValid())

	_, err = New(-1)
	assert.Error(t, err)
}

func TestMaskSetValid(t *testing.T) {
	m, _ := New(40)

	m.Set(0, true)
	m.Set(33, true)
	assert.True(t, m.Valid(0))
	assert.True(t, m.Valid(33))
	assert.False(t, m.Valid(1))
	assert.Equal(t, []uint32{0x1, 0x2}, m.Words())

	m.Set(0, false)
	assert.False(t, m.Valid(0))

	// Out of range is ignored and reported missing.
	m.Set(40, true)
	m.Set(-1, true)
	assert.False(t, m.Valid(40))
	assert.False(t, m.Valid(-1))
	assert.Equal(t, 1, m.CountValid())
}

func TestFromWords(t *testing.T) {
	m, err := FromWords([]uint32{0xFFFFFFFF, 0x3}, 34)
	require.NoError(t, err)
	assert.Equal(t, 34, m.CountValid())

	_, err = FromWords([]uint32{0xFFFFFFFF}, 34)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = FromWords([]uint32{0xFFFFFFFF, 0x7}, 34)
	assert.Error(t, err, "bit 34 is past the end")
}

func TestHasNaN(t *testing.T) {
	nan32 := float32(math.NaN())
	assert.True(t, HasNaN([]float32{1, nan32, 3}))
	assert.False(t, HasNaN([]float32{1, 2, 3}))
	assert.True(t, HasNaN([]float64{math.NaN()}))
	assert.False(t, HasNaN([]float64{}))
}

func TestHasLargeMagnitude(t *testing.T) {
	assert.True(t, HasLargeMagnitude([]float32{1, -1e36}))
	assert.True(t, HasLargeMagnitude([]float64{1e35}))
	assert.False(t, HasLargeMagnitude([]float64{9.9e34, -9.9e34}))
	assert.True(t, HasLargeMagnitude([]float64{math.Inf(-1)}))
}

func TestHasValue(t *testing.T) {
	assert.True(t, HasValue([]float32{1, -999, 3}, -999))
	assert.False(t, HasValue([]float64{1, 2}, -999))
}

func TestProbe(t *testing.T) {
	assert.Equal(t, ModeNaN, Probe([]float64{1, math.NaN(), 1e36, -999}, -999))
	assert.Equal(t, ModeLargeMagnitude, Probe([]float64{1, 1e36, -999}, -999))
	assert.Equal(t, ModeValue, Probe([]float32{1, -999}, -999))
	assert.Equal(t, ModeNone, Probe([]float32{1, 2}, -999))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "nan", ModeNaN.String())
	assert.Equal(t, "large-magnitude", ModeLargeMagnitude.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func TestPredicateUnknownMode(t *testing.T) {
	_, err := Predicate[float32](Mode(9), 0)
	assert.Error(t, err)
}

func TestBuildMode(t *testing.T) {
	data := []float32{1, -999, 2, -999, 3}
	m, err := BuildMode(data, ModeValue, -999)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0b10101}, m.Words())
	assert.Equal(t, 3, m.CountValid())

	m, err = BuildMode(data, ModeNone, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0b11111}, m.Words())
}

func TestBuildNaN(t *testing.T) {
	data := make([]float64, 100)
	for i := 40; i < 70; i++ {
		data[i] = math.NaN()
	}
	m, err := BuildMode(data, ModeNaN, 0)
	require.NoError(t, err)

	assert.Equal(t, 70, m.CountValid())
	assert.True(t, m.Valid(39))
	assert.False(t, m.Valid(40))
	assert.False(t, m.Valid(69))
	assert.True(t, m.Valid(70))
	// Bits 96-99 valid, trailing bits zero.
	assert.Equal(t, uint32(0xF), m.Words()[3])
}

func TestRestore(t *testing.T) {
	data := []float64{1, math.NaN(), 3, 1e36}
	m, err := BuildMode(data, ModeLargeMagnitude, 0)
	require.NoError(t, err)

	lossy := []float64{1.01, 2, 2.99, 7}
	require.NoError(t, Restore(lossy, m, 1e36))
	assert.Equal(t, []float64{1.01, 2, 2.99, 1e36}, lossy)

	assert.ErrorIs(t, Restore(lossy[:3], m, 0), ErrLengthMismatch)
}

func TestMaskCompactRoundTrip(t *testing.T) {
	// A field with a large missing region compacts to a few bytes.
	data := make([]float32, 100_000)
	for i := 20_000; i < 60_000; i++ {
		data[i] = -999
	}
	m, err := BuildMode(data, ModeValue, -999)
	require.NoError(t, err)

	ch := m.Compact()
	assert.Equal(t, len(m.Words()), ch.Count)
	assert.Equal(t, compactor.StrategyOnes, ch.Strategy)
	assert.Less(t, len(ch.Data), 1000)

	got, err := FromChunk(ch, len(data))
	require.NoError(t, err)
	assert.Equal(t, m.Words(), got.Words())
	assert.Equal(t, 60_000, got.CountValid())
}

func TestFromChunkCountMismatch(t *testing.T) {
	m, _ := New(64)
	ch := m.Compact()
	_, err := FromChunk(ch, 65)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}
