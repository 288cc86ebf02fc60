package ringicon

import (
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
	"github.com/k1LoW/errors"
)

// similarityThreshold is the largest perceptual hash distance still treated as the same icon.
const similarityThreshold = 5

// SamePixels reports whether img holds exactly the pixels of r, ignoring alpha.
func SamePixels(r *Raster, img image.Image) bool {
	b := img.Bounds()
	if b.Dx() != r.size || b.Dy() != r.size {
		return false
	}
	for y := 0; y < r.size; y++ {
		for x := 0; x < r.size; x++ {
			cr, cg, cb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			want := r.At(x, y)
			if uint8(cr>>8) != want.R || uint8(cg>>8) != want.G || uint8(cb>>8) != want.B {
				return false
			}
		}
	}
	return true
}

// Distance returns the perceptual hash distance between two images.
// Identical icons have distance 0.
func Distance(a, b image.Image) (_ int, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	aHash, err := goimagehash.PerceptionHash(a)
	if err != nil {
		return 0, fmt.Errorf("failed to compute perceptual hash: %w", err)
	}
	bHash, err := goimagehash.PerceptionHash(b)
	if err != nil {
		return 0, fmt.Errorf("failed to compute perceptual hash: %w", err)
	}
	return aHash.Distance(bHash)
}

// Similar reports whether two images are perceptually the same icon.
func Similar(a, b image.Image) bool {
	d, err := Distance(a, b)
	if err != nil {
		return false
	}
	return d < similarityThreshold
}
