package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// Signature is the fixed 8-byte PNG file header.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// Chunk type tags written by Encode.
const (
	TypeIHDR = "IHDR"
	TypeIDAT = "IDAT"
	TypeIEND = "IEND"
)

// Chunk is one length-prefixed, CRC-suffixed section of a PNG stream.
type Chunk struct {
	Type string
	Data []byte
}

// CRC returns the CRC-32 (IEEE) of the type tag followed by the payload.
func (c Chunk) CRC() uint32 {
	crc := crc32.NewIEEE()
	crc.Write([]byte(c.Type))
	crc.Write(c.Data)
	return crc.Sum32()
}

// writeChunk emits length, tag, payload and CRC, all integers big-endian.
func writeChunk(w io.Writer, c Chunk) error {
	if len(c.Type) != 4 {
		return fmt.Errorf("pngenc: chunk type %q is not 4 bytes", c.Type)
	}
	if uint64(len(c.Data)) > 1<<31-1 {
		return fmt.Errorf("pngenc: %s payload too large (%d bytes)", c.Type, len(c.Data))
	}

	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(len(c.Data)))
	copy(hdr[4:8], c.Type)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.Write(c.Data); err != nil {
		return err
	}

	var tail [4]byte
	binary.BigEndian.PutUint32(tail[:], c.CRC())
	_, err := w.Write(tail[:])
	return err
}

var (
	// ErrSignature is returned when a stream does not start with Signature.
	ErrSignature = errors.New("pngenc: bad signature")
	// ErrChecksum is returned when a chunk's stored CRC does not match.
	ErrChecksum = errors.New("pngenc: chunk checksum mismatch")
	// ErrTruncated is returned when the stream ends before IEND.
	ErrTruncated = errors.New("pngenc: truncated stream")
)

// RawChunk is a chunk as read from a stream, with its stored checksum.
type RawChunk struct {
	Chunk
	Stored uint32
}

// Valid reports whether the stored checksum matches the recomputed one.
func (c RawChunk) Valid() bool {
	return c.Stored == c.CRC()
}

// ReadRawChunks reads the signature and every chunk up to and including IEND
// without judging checksums.
func ReadRawChunks(r io.Reader) ([]RawChunk, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if sig != Signature {
		return nil, ErrSignature
	}

	var chunks []RawChunk
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return chunks, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		n := binary.BigEndian.Uint32(hdr[0:4])
		if n > 1<<31-1 {
			return chunks, fmt.Errorf("pngenc: chunk length %d out of range", n)
		}

		// The buffer grows with the bytes actually read, so a forged length
		// cannot force a large allocation.
		c := RawChunk{Chunk: Chunk{Type: string(hdr[4:8])}}
		var payload bytes.Buffer
		if got, err := io.CopyN(&payload, r, int64(n)); err != nil {
			return chunks, fmt.Errorf("%w: %s payload: %d of %d bytes: %v", ErrTruncated, c.Type, got, n, err)
		}
		c.Data = payload.Bytes()
		var tail [4]byte
		if _, err := io.ReadFull(r, tail[:]); err != nil {
			return chunks, fmt.Errorf("%w: %s crc: %v", ErrTruncated, c.Type, err)
		}
		c.Stored = binary.BigEndian.Uint32(tail[:])
		chunks = append(chunks, c)

		if c.Type == TypeIEND {
			return chunks, nil
		}
	}
}

// ReadChunks reads a PNG stream and fails on the first chunk whose checksum
// does not match.
func ReadChunks(r io.Reader) ([]Chunk, error) {
	raw, err := ReadRawChunks(r)
	if err != nil {
		return nil, err
	}
	chunks := make([]Chunk, len(raw))
	for i, c := range raw {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %s (chunk %d) stored %08x, computed %08x",
				ErrChecksum, c.Type, i, c.Stored, c.CRC())
		}
		chunks[i] = c.Chunk
	}
	return chunks, nil
}
