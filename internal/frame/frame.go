package frame

import (
	"image"
	"image/gif"
)

// Disposal tells how the canvas is treated once a frame has been shown,
// before the next patch is drawn.
type Disposal uint8

const (
	DisposalNone       Disposal = iota // unspecified, same as keep
	DisposalKeep                       // do not dispose
	DisposalBackground                 // restore to background (blank)
	DisposalPrevious                   // restore to the pre-patch state
)

// RawFrame is one decoded GIF frame as it sits on the wire: a patch that
// may cover only part of the logical screen, plus placement and timing.
type RawFrame struct {
	Patch    image.Image
	Bounds   image.Rectangle // placement within the logical screen
	Delay    int             // hundredths of a second
	Disposal Disposal
}

// Frame is a fully composited logical-screen bitmap. Bounds keeps the
// changed region of the originating patch for debugging; correctness
// never depends on it.
type Frame struct {
	Image  *image.RGBA
	Delay  int
	Bounds image.Rectangle
}

// FromGIF converts a decoded GIF into raw frames plus the logical screen
// dimensions.
func FromGIF(g *gif.GIF) ([]RawFrame, int, int) {
	width, height := g.Config.Width, g.Config.Height
	if width == 0 || height == 0 {
		// Some encoders leave the logical screen descriptor empty.
		for _, img := range g.Image {
			if b := img.Bounds(); b.Max.X > width {
				width = b.Max.X
			}
			if b := img.Bounds(); b.Max.Y > height {
				height = b.Max.Y
			}
		}
	}

	raws := make([]RawFrame, len(g.Image))
	for i, img := range g.Image {
		raws[i] = RawFrame{
			Patch:    img,
			Bounds:   img.Bounds(),
			Delay:    delayAt(g.Delay, i),
			Disposal: fromGIFDisposal(disposalAt(g.Disposal, i)),
		}
	}
	return raws, width, height
}

func delayAt(delays []int, i int) int {
	if i < len(delays) {
		return delays[i]
	}
	return 0
}

func disposalAt(disposals []byte, i int) byte {
	if i < len(disposals) {
		return disposals[i]
	}
	return 0
}

func fromGIFDisposal(d byte) Disposal {
	switch d {
	case gif.DisposalNone:
		return DisposalKeep
	case gif.DisposalBackground:
		return DisposalBackground
	case gif.DisposalPrevious:
		return DisposalPrevious
	default:
		return DisposalNone
	}
}
