package encoder

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

const maxColors = 256

// posterize reduces channel depth in place. The reduced space is what the
// palette is built over: rgb565-style without alpha, rgba4444-style when a
// transparency slot has to be paid for with color fidelity.
func posterize(img *image.RGBA, transparent bool) {
	pix := img.Pix
	if transparent {
		for i := 0; i < len(pix); i += 4 {
			pix[i] &= 0xf0
			pix[i+1] &= 0xf0
			pix[i+2] &= 0xf0
			pix[i+3] &= 0xf0
		}
		return
	}
	for i := 0; i < len(pix); i += 4 {
		pix[i] &= 0xf8
		pix[i+1] &= 0xfc
		pix[i+2] &= 0xf8
		pix[i+3] = 0xff
	}
}

// buildPalette runs a median cut over every pixel of every frame pooled
// into one composite image, yielding the single shared palette. In
// transparent mode index 0 is the reserved fully-transparent slot.
func buildPalette(frames []*image.RGBA, transparent bool) color.Palette {
	if len(frames) == 0 {
		return color.Palette{color.RGBA{}}
	}

	fb := frames[0].Bounds()
	composite := image.NewRGBA(image.Rect(0, 0, fb.Dx(), fb.Dy()*len(frames)))
	stride := len(frames[0].Pix)
	for i, f := range frames {
		copy(composite.Pix[i*stride:(i+1)*stride], f.Pix)
	}

	colors := maxColors
	if transparent {
		colors--
	}

	q := quantize.MedianCutQuantizer{}
	raw := q.Quantize(make([]color.Color, 0, colors), composite)

	if !transparent {
		if len(raw) == 0 {
			raw = append(raw, color.RGBA{A: 0xff})
		}
		return color.Palette(raw)
	}

	pal := color.Palette{color.RGBA{}}
	for _, c := range raw {
		if len(pal) >= maxColors {
			break
		}
		pal = append(pal, c)
	}
	if len(pal) == 1 {
		pal = append(pal, color.RGBA{A: 0xff})
	}
	return pal
}
