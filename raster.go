package ringicon

import (
	"image"
	"image/color"
	"math"
)

// RGB is a truecolor pixel without alpha.
type RGB struct {
	R, G, B uint8
}

var (
	// Background is the dark fill behind the ring.
	Background = RGB{10, 10, 12}
	// Foreground is the glow color at the crest of the ring.
	Foreground = RGB{168, 216, 255}
)

const (
	radiusXRatio = 0.28
	radiusYRatio = 0.38
	bandInner    = 0.6
	bandOuter    = 1.0
	bandCrest    = 0.8
	bandHalf     = 0.2
	glowStrength = 0.8
)

const filterNone byte = 0

// Raster is a square image stored as PNG scanlines: every row starts with a filter byte followed by RGB triples.
type Raster struct {
	size int
	rows [][]byte
}

// Render shades a size x size raster with the glowing ring. size must be positive.
func Render(size int) *Raster {
	cx, cy := size/2, size/2
	rx, ry := float64(size)*radiusXRatio, float64(size)*radiusYRatio
	rows := make([][]byte, size)
	for y := 0; y < size; y++ {
		row := make([]byte, 1, rowLen(size))
		row[0] = filterNone
		for x := 0; x < size; x++ {
			dx, dy := float64(x-cx), float64(y-cy)
			dist := math.Sqrt(dx*dx/(rx*rx) + dy*dy/(ry*ry))
			c := shade(dist)
			row = append(row, c.R, c.G, c.B)
		}
		rows[y] = row
	}
	return &Raster{size: size, rows: rows}
}

// shade maps a normalized elliptical distance to a color.
// Inside the band the glow falls off linearly from the crest to both edges.
func shade(dist float64) RGB {
	if !(dist > bandInner && dist < bandOuter) {
		return Background
	}
	blend := 1 - math.Abs(dist-bandCrest)/bandHalf
	return RGB{
		R: mix(Background.R, Foreground.R, blend),
		G: mix(Background.G, Foreground.G, blend),
		B: mix(Background.B, Foreground.B, blend),
	}
}

// mix truncates toward zero; blend is within [0, 1] so the result never leaves [bg, fg].
func mix(bg, fg uint8, blend float64) uint8 {
	return uint8(float64(bg) + float64(int(fg)-int(bg))*blend*glowStrength)
}

func rowLen(size int) int {
	return 1 + 3*size
}

func (r *Raster) Size() int {
	return r.size
}

// Rows returns the scanlines including their filter bytes.
func (r *Raster) Rows() [][]byte {
	return r.rows
}

// Scanlines concatenates every row into the buffer that is compressed into IDAT.
func (r *Raster) Scanlines() []byte {
	b := make([]byte, 0, r.size*rowLen(r.size))
	for _, row := range r.rows {
		b = append(b, row...)
	}
	return b
}

func (r *Raster) At(x, y int) RGB {
	row := r.rows[y]
	i := 1 + 3*x
	return RGB{row[i], row[i+1], row[i+2]}
}

// Image converts the raster into an image.Image for decoding comparisons and perceptual hashing.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.size, r.size))
	for y := 0; y < r.size; y++ {
		for x := 0; x < r.size; x++ {
			c := r.At(x, y)
			img.SetRGBA(x, y, color.RGBA{c.R, c.G, c.B, 0xff})
		}
	}
	return img
}
