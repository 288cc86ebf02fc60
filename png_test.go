package ringicon

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zlib"
)

func TestMarshalPNGSize4(t *testing.T) {
	r := Render(4)
	b, err := MarshalPNG(r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b[:8], []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}) {
		t.Fatalf("bad signature % x", b[:8])
	}
	chunks, err := ReadChunks(b)
	if err != nil {
		t.Fatal(err)
	}
	h, err := ParseHeader(chunks[0])
	if err != nil {
		t.Fatal(err)
	}
	want := &Header{Width: 4, Height: 4, BitDepth: 8, ColorType: 2}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Errorf("IHDR mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Equal(chunks[0].Data, []byte{0, 0, 0, 4, 0, 0, 0, 4, 8, 2, 0, 0, 0}) {
		t.Errorf("IHDR data = % x", chunks[0].Data)
	}

	zr, err := zlib.NewReader(bytes.NewReader(chunks[1].Data))
	if err != nil {
		t.Fatal(err)
	}
	var raw bytes.Buffer
	if _, err := raw.ReadFrom(zr); err != nil {
		t.Fatal(err)
	}
	if raw.Len() != 52 {
		t.Errorf("decompressed IDAT = %d bytes, want 52", raw.Len())
	}
	if !bytes.Equal(raw.Bytes(), r.Scanlines()) {
		t.Error("decompressed IDAT differs from the raster scanlines")
	}
}

func TestMarshalPNGChunkIntegrity(t *testing.T) {
	for _, size := range []int{1, 4, 16, 192, 512} {
		b, err := MarshalPNG(Render(size))
		if err != nil {
			t.Fatal(err)
		}
		chunks, err := ReadChunks(b)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		var types []string
		total := len(Signature)
		for _, c := range chunks {
			types = append(types, c.Type)
			if !c.Valid() {
				t.Errorf("size %d: chunk %s crc mismatch", size, c.Type)
			}
			total += chunkOverhead + len(c.Data)
		}
		if diff := cmp.Diff([]string{"IHDR", "IDAT", "IEND"}, types); diff != "" {
			t.Errorf("size %d: chunk order (-want +got):\n%s", size, diff)
		}
		if total != len(b) {
			t.Errorf("size %d: framing accounts for %d bytes, file has %d", size, total, len(b))
		}
		if len(chunks[2].Data) != 0 {
			t.Errorf("size %d: IEND carries %d bytes", size, len(chunks[2].Data))
		}
		// the stored length field covers the data only
		if n := binary.BigEndian.Uint32(b[8:12]); n != headerLen {
			t.Errorf("size %d: IHDR length field = %d", size, n)
		}
	}
}

func TestMarshalPNGRoundTrip(t *testing.T) {
	for _, size := range []int{1, 4, 16, 192, 512} {
		r := Render(size)
		b, err := MarshalPNG(r)
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(bytes.NewReader(b))
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if cfg.Width != size || cfg.Height != size {
			t.Errorf("size %d: decoded %dx%d", size, cfg.Width, cfg.Height)
		}
		img, err := png.Decode(bytes.NewReader(b))
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		// image/png decodes 8-bit truecolor without alpha into *image.RGBA
		if _, ok := img.(*image.RGBA); !ok {
			t.Errorf("size %d: decoded as %T, want *image.RGBA", size, img)
		}
		if !SamePixels(r, img) {
			t.Errorf("size %d: decoded pixels differ from the raster", size)
		}
	}
}

type failWriter struct {
	n int
}

var errWrite = errors.New("disk full")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, errWrite
	}
	w.n--
	return len(p), nil
}

func TestEncodeWriteError(t *testing.T) {
	for n := 0; n < 5; n++ {
		err := Encode(&failWriter{n: n}, Render(4))
		if !errors.Is(err, errWrite) {
			t.Errorf("after %d writes: got %v, want %v", n, err, errWrite)
		}
	}
}

func TestEncodeEmptyRaster(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, nil); err == nil {
		t.Error("Encode(nil) succeeded")
	}
}
