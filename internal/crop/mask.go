package crop

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// circle is a hard-edged alpha mask for the inscribed circle.
type circle struct {
	center image.Point
	radius int
}

func (c *circle) ColorModel() color.Model { return color.AlphaModel }

func (c *circle) Bounds() image.Rectangle {
	return image.Rect(c.center.X-c.radius, c.center.Y-c.radius, c.center.X+c.radius, c.center.Y+c.radius)
}

func (c *circle) At(x, y int) color.Color {
	dx, dy := x-c.center.X, y-c.center.Y
	if dx*dx+dy*dy <= c.radius*c.radius {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

// CircleMask returns a copy of src with everything outside the inscribed
// circle replaced by opaque black, or by full transparency when
// transparent is set. Dimensions are preserved; src is never mutated.
func CircleMask(src image.Image, transparent bool) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if !transparent {
		bg := imaging.New(w, h, color.NRGBA{A: 255})
		draw.Draw(dst, dst.Bounds(), bg, image.Point{}, draw.Src)
	}

	radius := w
	if h < radius {
		radius = h
	}
	radius /= 2

	mask := &circle{center: image.Pt(w/2, h/2), radius: radius}
	draw.DrawMask(dst, dst.Bounds(), src, b.Min, mask, image.Point{}, draw.Over)
	return dst
}
