package crop

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/rodchenko/avacrop/internal/profile"
)

// Image samples the percent-crop region out of src into a new bitmap of
// round(srcW*W/100) x round(srcH*H/100) pixels, each at least 1. src is
// never mutated.
func Image(src image.Image, pc *profile.PercentCrop) (*image.RGBA, error) {
	if pc == nil {
		return nil, profile.ErrInvalidCrop
	}
	if err := pc.Validate(); err != nil {
		return nil, err
	}

	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	dstW := roundDim(float64(srcW) * pc.Width / 100)
	dstH := roundDim(float64(srcH) * pc.Height / 100)

	// Built field by field: image.Rect would canonicalize a positive
	// offset against the zero Max and discard it.
	var sr image.Rectangle
	sr.Min = image.Pt(
		b.Min.X+int(math.Round(float64(srcW)*pc.X/100)),
		b.Min.Y+int(math.Round(float64(srcH)*pc.Y/100)),
	)
	sr.Max = sr.Min.Add(image.Pt(dstW, dstH))
	sr = sr.Intersect(b)
	if sr.Empty() {
		sr = image.Rect(b.Min.X, b.Min.Y, b.Min.X+1, b.Min.Y+1)
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, sr, xdraw.Src, nil)
	return dst, nil
}

func roundDim(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}
