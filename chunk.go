package ringicon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/k1LoW/errors"
)

// Signature is the fixed 8-byte PNG file signature.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	ChunkTypeIHDR = "IHDR"
	ChunkTypeIDAT = "IDAT"
	ChunkTypeIEND = "IEND"
)

const (
	// length + type + crc
	chunkOverhead = 12
	headerLen     = 13

	bitDepth8      = 8
	colorTypeRGB   = 2
	methodDefault  = 0
	interlaceNone  = 0
	maxChunkLength = 1<<31 - 1
)

// Chunk is a length-prefixed, CRC-32 checksummed PNG segment.
type Chunk struct {
	Type string
	Data []byte
	CRC  uint32 // CRC as stored in the stream
}

// Checksum computes the CRC-32 over the chunk type and data.
func (c *Chunk) Checksum() uint32 {
	h := crc32.NewIEEE()
	_, _ = h.Write([]byte(c.Type))
	_, _ = h.Write(c.Data)
	return h.Sum32()
}

// Valid reports whether the stored CRC matches the chunk contents.
func (c *Chunk) Valid() bool {
	return c.CRC == c.Checksum()
}

func writeChunk(w io.Writer, typ string, data []byte) error {
	if len(typ) != 4 {
		return fmt.Errorf("invalid chunk type %q", typ)
	}
	if len(data) > maxChunkLength {
		return fmt.Errorf("chunk %s too large: %d bytes", typ, len(data))
	}
	c := &Chunk{Type: typ, Data: data}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(len(data)))
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, typ); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(buf[:], c.Checksum())
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	return nil
}

// ReadChunks splits a PNG stream into chunks, checking the signature, every CRC
// and that the framing accounts for every byte of b.
func ReadChunks(b []byte) (_ []*Chunk, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if !bytes.HasPrefix(b, Signature) {
		return nil, fmt.Errorf("not a png file: bad signature")
	}
	var chunks []*Chunk
	off := len(Signature)
	for off < len(b) {
		if len(b)-off < chunkOverhead {
			return nil, fmt.Errorf("truncated chunk at offset %d", off)
		}
		n := binary.BigEndian.Uint32(b[off : off+4])
		if n > maxChunkLength || int(n) > len(b)-off-chunkOverhead {
			return nil, fmt.Errorf("chunk at offset %d declares %d bytes, only %d remain", off, n, len(b)-off-chunkOverhead)
		}
		typ := string(b[off+4 : off+8])
		data := b[off+8 : off+8+int(n)]
		c := &Chunk{
			Type: typ,
			Data: data,
			CRC:  binary.BigEndian.Uint32(b[off+8+int(n) : off+chunkOverhead+int(n)]),
		}
		if !c.Valid() {
			return nil, fmt.Errorf("chunk %s at offset %d: crc mismatch (stored %08x, computed %08x)", typ, off, c.CRC, c.Checksum())
		}
		chunks = append(chunks, c)
		off += chunkOverhead + int(n)
		if typ == ChunkTypeIEND && off != len(b) {
			return nil, fmt.Errorf("%d trailing bytes after IEND", len(b)-off)
		}
	}
	if len(chunks) == 0 || chunks[len(chunks)-1].Type != ChunkTypeIEND {
		return nil, fmt.Errorf("missing IEND chunk")
	}
	return chunks, nil
}

// Header is the decoded IHDR payload.
type Header struct {
	Width             uint32 `json:"width"`
	Height            uint32 `json:"height"`
	BitDepth          byte   `json:"bit_depth"`
	ColorType         byte   `json:"color_type"`
	CompressionMethod byte   `json:"compression_method"`
	FilterMethod      byte   `json:"filter_method"`
	InterlaceMethod   byte   `json:"interlace_method"`
}

func newHeader(size int) *Header {
	return &Header{
		Width:             uint32(size),
		Height:            uint32(size),
		BitDepth:          bitDepth8,
		ColorType:         colorTypeRGB,
		CompressionMethod: methodDefault,
		FilterMethod:      methodDefault,
		InterlaceMethod:   interlaceNone,
	}
}

func (h *Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, headerLen)
	binary.BigEndian.PutUint32(b[0:4], h.Width)
	binary.BigEndian.PutUint32(b[4:8], h.Height)
	b[8] = h.BitDepth
	b[9] = h.ColorType
	b[10] = h.CompressionMethod
	b[11] = h.FilterMethod
	b[12] = h.InterlaceMethod
	return b, nil
}

// Truecolor8 reports whether the header describes 8-bit RGB without interlacing, the only form this package writes.
func (h *Header) Truecolor8() bool {
	return h.BitDepth == bitDepth8 && h.ColorType == colorTypeRGB &&
		h.CompressionMethod == methodDefault && h.FilterMethod == methodDefault &&
		h.InterlaceMethod == interlaceNone
}

// ParseHeader decodes an IHDR chunk.
func ParseHeader(c *Chunk) (_ *Header, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if c == nil || c.Type != ChunkTypeIHDR {
		return nil, fmt.Errorf("not an IHDR chunk")
	}
	if len(c.Data) != headerLen {
		return nil, fmt.Errorf("IHDR must be %d bytes, got %d", headerLen, len(c.Data))
	}
	return &Header{
		Width:             binary.BigEndian.Uint32(c.Data[0:4]),
		Height:            binary.BigEndian.Uint32(c.Data[4:8]),
		BitDepth:          c.Data[8],
		ColorType:         c.Data[9],
		CompressionMethod: c.Data[10],
		FilterMethod:      c.Data[11],
		InterlaceMethod:   c.Data[12],
	}, nil
}
