// Package encoder turns a profile's cropped frames into a complete
// animated-GIF byte stream: one shared ≤256-color palette over all frames,
// nearest-color index mapping, no inter-frame deltas in the output.
package encoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"

	"github.com/rodchenko/avacrop/internal/system"
)

var ErrNoFrames = errors.New("no frames to encode")

// Frame is one already-cropped (and optionally masked) bitmap with its
// display delay in hundredths of a second.
type Frame struct {
	Image *image.RGBA
	Delay int
}

type Options struct {
	Transparent bool
}

// EncodeGIF encodes all frames with one shared palette. onProgress, when
// non-nil, fires once per completed frame in order.
func EncodeGIF(frames []Frame, opts Options, onProgress func(done int)) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	bounds := frames[0].Image.Bounds()
	reduced := make([]*image.RGBA, len(frames))
	for i, f := range frames {
		if f.Image.Bounds() != bounds {
			return nil, fmt.Errorf("frame %d bounds %v differ from %v", i, f.Image.Bounds(), bounds)
		}
		r := system.GetImage(bounds)
		copy(r.Pix, f.Image.Pix)
		posterize(r, opts.Transparent)
		reduced[i] = r
	}
	defer func() {
		for _, r := range reduced {
			system.PutImage(r)
		}
	}()

	pal := buildPalette(reduced, opts.Transparent)

	out := &gif.GIF{
		Image:    make([]*image.Paletted, 0, len(frames)),
		Delay:    make([]int, 0, len(frames)),
		Disposal: make([]byte, 0, len(frames)),
		Config: image.Config{
			ColorModel: pal,
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
		},
		LoopCount: 0,
	}

	// Reduced-depth pixels repeat heavily, so one index cache serves all
	// frames of the profile.
	cache := make(map[uint32]uint8)
	for i, r := range reduced {
		p := image.NewPaletted(bounds, pal)
		mapFrame(p, r, pal, opts.Transparent, cache)
		out.Image = append(out.Image, p)
		out.Delay = append(out.Delay, frames[i].Delay)
		// Frames are fully composited already; the output never patches.
		out.Disposal = append(out.Disposal, gif.DisposalNone)
		if onProgress != nil {
			onProgress(i + 1)
		}
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}
	return buf.Bytes(), nil
}

func mapFrame(dst *image.Paletted, src *image.RGBA, pal color.Palette, transparent bool, cache map[uint32]uint8) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[(y-b.Min.Y)*src.Stride:]
		drow := dst.Pix[(y-b.Min.Y)*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, a := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
			if transparent && a < 0x80 {
				drow[x] = 0
				continue
			}
			key := uint32(r)<<24 | uint32(g)<<16 | uint32(bl)<<8 | uint32(a)
			idx, ok := cache[key]
			if !ok {
				idx = uint8(pal.Index(color.RGBA{R: r, G: g, B: bl, A: a}))
				cache[key] = idx
			}
			drow[x] = idx
		}
	}
}
