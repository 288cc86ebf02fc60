package ringicon

import (
	"bytes"
	"fmt"
	"io"

	"github.com/k1LoW/errors"
	"github.com/klauspost/compress/zlib"
)

// Encode writes r as a non-interlaced 8-bit truecolor PNG: signature, IHDR, a single IDAT and IEND.
func Encode(w io.Writer, r *Raster) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if r == nil || r.size <= 0 {
		return fmt.Errorf("raster is empty")
	}
	ihdr, err := newHeader(r.size).MarshalBinary()
	if err != nil {
		return err
	}
	idat, err := compress(r.Scanlines())
	if err != nil {
		return fmt.Errorf("failed to compress scanlines: %w", err)
	}
	if _, err := w.Write(Signature); err != nil {
		return fmt.Errorf("failed to write signature: %w", err)
	}
	for _, c := range []struct {
		typ  string
		data []byte
	}{
		{ChunkTypeIHDR, ihdr},
		{ChunkTypeIDAT, idat},
		{ChunkTypeIEND, nil},
	} {
		if err := writeChunk(w, c.typ, c.data); err != nil {
			return fmt.Errorf("failed to write %s chunk: %w", c.typ, err)
		}
	}
	return nil
}

// MarshalPNG returns the encoded PNG bytes of r.
func MarshalPNG(r *Raster) (_ []byte, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compress(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(b); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
