package ringicon

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/k1LoW/errors"
	"golang.org/x/sync/errgroup"
)

type Status string

const (
	StatusIdentical Status = "identical"
	StatusSimilar   Status = "similar"
	StatusStale     Status = "stale"
	StatusBroken    Status = "broken"
	StatusMissing   Status = "missing"
)

// OK reports whether the icon on disk can be kept as it is.
func (s Status) OK() bool {
	return s == StatusIdentical || s == StatusSimilar
}

// Report is the verification result of one icon.
type Report struct {
	Icon     Icon
	Status   Status
	Distance int   // perceptual hash distance, set for similar and stale icons
	Err      error // why an icon is broken or missing
}

// Verify checks every icon on disk against a fresh render. Reports are returned in icon order.
// The returned error is only set for failures unrelated to the icons' contents, such as cancellation.
func (g *Generator) Verify(ctx context.Context) (_ []*Report, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	reports := make([]*Report, len(g.icons))
	eg, ctx := errgroup.WithContext(ctx)
	for i, icon := range g.icons {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := verifyIcon(icon)
			reports[i] = r
			attrs := []any{slog.Int("size", icon.Size), slog.String("path", icon.Path), slog.String("status", string(r.Status))}
			if r.Err != nil {
				attrs = append(attrs, slog.String("error", r.Err.Error()))
			}
			g.logger.Info("verified icon", attrs...)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	g.logger.Info("verify completed", slog.Int("icons", len(g.icons)))
	return reports, nil
}

func verifyIcon(icon Icon) *Report {
	r := &Report{Icon: icon}
	b, err := os.ReadFile(icon.Path)
	if err != nil {
		r.Status = StatusMissing
		if !os.IsNotExist(err) {
			r.Status = StatusBroken
		}
		r.Err = err
		return r
	}
	want := LoadRaster(icon.Size)
	if fresh, err := MarshalPNG(want); err == nil && bytes.Equal(fresh, b) {
		r.Status = StatusIdentical
		return r
	}
	if err := checkStructure(b, icon.Size); err != nil {
		r.Status = StatusBroken
		r.Err = err
		return r
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		r.Status = StatusBroken
		r.Err = fmt.Errorf("failed to decode: %w", err)
		return r
	}
	if SamePixels(want, img) {
		r.Status = StatusIdentical
		return r
	}
	d, err := Distance(want.Image(), img)
	if err != nil {
		r.Status = StatusBroken
		r.Err = err
		return r
	}
	r.Distance = d
	r.Status = StatusStale
	if d < similarityThreshold {
		r.Status = StatusSimilar
	}
	return r
}

// checkStructure validates chunk framing, chunk order and the IHDR of an icon file.
func checkStructure(b []byte, size int) error {
	chunks, err := ReadChunks(b)
	if err != nil {
		return err
	}
	if chunks[0].Type != ChunkTypeIHDR {
		return fmt.Errorf("first chunk is %s, want IHDR", chunks[0].Type)
	}
	h, err := ParseHeader(chunks[0])
	if err != nil {
		return err
	}
	if h.Width != uint32(size) || h.Height != uint32(size) {
		return fmt.Errorf("icon is %dx%d, want %dx%d", h.Width, h.Height, size, size)
	}
	if !h.Truecolor8() {
		return fmt.Errorf("icon is not 8-bit truecolor (bit depth %d, color type %d)", h.BitDepth, h.ColorType)
	}
	return nil
}
