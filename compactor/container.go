package compactor

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Container format
//
//	magic "BMCP" | version (1 byte) | word width in bits (1 byte) |
//	chunk count (uvarint) | chunk...
//
// and each chunk is
//
//	word count (uvarint) | strategy (1 byte) | data length (uvarint) | data
const (
	containerMagic   = "BMCP"
	ContainerVersion = 1

	maxChunkWords = 1 << 40
)

var (
	// ErrBadMagic is returned when a container does not start with the
	// expected magic bytes.
	ErrBadMagic = errors.New("compactor: not a compactor container")

	// ErrUnsupportedVersion is returned for containers written by a newer
	// format revision.
	ErrUnsupportedVersion = errors.New("compactor: unsupported container version")
)

// MarshalBinary encodes the chunk and its metadata.
func (ch Chunk) MarshalBinary() ([]byte, error) {
	if ch.Count < 0 {
		return nil, fmt.Errorf("compactor: negative word count %d", ch.Count)
	}
	return ch.appendBinary(nil), nil
}

// UnmarshalBinary decodes a chunk written by MarshalBinary.
func (ch *Chunk) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	if err := ch.readFrom(r, 0); err != nil {
		return err
	}
	if r.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes after chunk", ErrCorrupt, r.Len())
	}
	return nil
}

func (ch Chunk) appendBinary(b []byte) []byte {
	b = binary.AppendUvarint(b, uint64(ch.Count))
	b = append(b, byte(ch.Strategy))
	b = binary.AppendUvarint(b, uint64(len(ch.Data)))
	return append(b, ch.Data...)
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

// readFrom decodes one chunk. If width is non-zero the data length is
// checked against the bounds a stream of Count words can have.
func (ch *Chunk) readFrom(r byteReader, width int) error {
	count, err := binary.ReadUvarint(r)
	if err != nil {
		return chunkReadErr(err, "word count")
	}
	strategy, err := r.ReadByte()
	if err != nil {
		return chunkReadErr(err, "strategy")
	}
	if strategy > byte(StrategyOnes) {
		return fmt.Errorf("%w: invalid strategy byte %d", ErrCorrupt, strategy)
	}
	size, err := binary.ReadUvarint(r)
	if err != nil {
		return chunkReadErr(err, "data length")
	}

	if count > maxChunkWords {
		return fmt.Errorf("%w: word count %d too large", ErrCorrupt, count)
	}
	if width > 0 {
		minSize := (3 + count + 7) / 8
		maxSize := (3 + count*uint64(2+width) + 7) / 8
		if size < minSize || size > maxSize {
			return fmt.Errorf("%w: %d bytes cannot hold %d words", ErrCorrupt, size, count)
		}
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return err
	}
	if uint64(len(data)) != size {
		return fmt.Errorf("%w: chunk data has %d of %d bytes", ErrTruncated, len(data), size)
	}

	ch.Count = int(count)
	ch.Strategy = Strategy(strategy)
	ch.Data = data
	return nil
}

func chunkReadErr(err error, field string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: missing %s", ErrTruncated, field)
	}
	return fmt.Errorf("%w: reading %s: %w", ErrCorrupt, field, err)
}

// WriteContainer writes chunks of words of the given width to w.
func WriteContainer(w io.Writer, width int, chunks []Chunk) error {
	if !validWidth(width) {
		return fmt.Errorf("compactor: unsupported word width %d", width)
	}

	bw := bufio.NewWriter(w)
	hdr := append([]byte(containerMagic), ContainerVersion, byte(width))
	hdr = binary.AppendUvarint(hdr, uint64(len(chunks)))
	if _, err := bw.Write(hdr); err != nil {
		return err
	}

	var buf []byte
	for i, ch := range chunks {
		if ch.Count < 0 {
			return fmt.Errorf("chunk %d: negative word count %d", i, ch.Count)
		}
		buf = ch.appendBinary(buf[:0])
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadContainer reads a container written by WriteContainer and returns
// the word width in bits and the chunks.
func ReadContainer(r io.Reader) (int, []Chunk, error) {
	br := bufio.NewReader(r)

	var hdr [len(containerMagic) + 2]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, nil, ErrBadMagic
		}
		return 0, nil, err
	}
	if string(hdr[:len(containerMagic)]) != containerMagic {
		return 0, nil, ErrBadMagic
	}
	if v := hdr[len(containerMagic)]; v != ContainerVersion {
		return 0, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	width := int(hdr[len(containerMagic)+1])
	if !validWidth(width) {
		return 0, nil, fmt.Errorf("%w: invalid word width %d", ErrCorrupt, width)
	}

	n, err := binary.ReadUvarint(br)
	if err != nil {
		return 0, nil, chunkReadErr(err, "chunk count")
	}

	var chunks []Chunk
	for i := uint64(0); i < n; i++ {
		var ch Chunk
		if err := ch.readFrom(br, width); err != nil {
			return 0, nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		chunks = append(chunks, ch)
	}
	if chunks == nil {
		chunks = []Chunk{}
	}
	return width, chunks, nil
}

func validWidth(width int) bool {
	switch width {
	case 8, 16, 32, 64:
		return true
	}
	return false
}
