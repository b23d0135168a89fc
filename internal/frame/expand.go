package frame

import (
	"image"
	"image/draw"

	"github.com/rodchenko/avacrop/internal/system"
)

// Expand reconstructs the full logical-screen bitmap for every raw frame.
// Expansion is strictly sequential: each frame's canvas depends on the
// previous frame's disposal outcome.
func Expand(raws []RawFrame, width, height int) []Frame {
	frames := make([]Frame, 0, len(raws))
	if len(raws) == 0 {
		return frames
	}

	bounds := image.Rect(0, 0, width, height)
	canvas := system.GetImage(bounds)
	defer system.PutImage(canvas)
	prev := system.GetImage(bounds)
	defer system.PutImage(prev)

	for _, rf := range raws {
		// pre-patch state, in case this frame asks to be reverted
		copy(prev.Pix, canvas.Pix)

		// Source-over compositing: transparent patch pixels leave the
		// canvas untouched, opaque ones overwrite.
		draw.Draw(canvas, rf.Bounds, rf.Patch, rf.Patch.Bounds().Min, draw.Over)

		snapshot := image.NewRGBA(bounds)
		copy(snapshot.Pix, canvas.Pix)
		frames = append(frames, Frame{Image: snapshot, Delay: rf.Delay, Bounds: rf.Bounds})

		switch rf.Disposal {
		case DisposalNone, DisposalKeep:
			// canvas stays as drawn
		case DisposalBackground:
			for i := range canvas.Pix {
				canvas.Pix[i] = 0
			}
		case DisposalPrevious:
			// prev is blank before any frame has drawn, so reverting the
			// first frame leaves an empty canvas.
			copy(canvas.Pix, prev.Pix)
		}
	}
	return frames
}
