package source

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func gifBytes(t *testing.T, w, h, frames int) []byte {
	t.Helper()
	pal := color.Palette{color.RGBA{A: 255}, color.RGBA{R: 255, A: 255}, color.RGBA{G: 255, A: 255}}
	g := &gif.GIF{Config: image.Config{Width: w, Height: h}}
	for i := 0; i < frames; i++ {
		p := image.NewPaletted(image.Rect(0, 0, w, h), pal)
		for j := range p.Pix {
			p.Pix[j] = uint8(1 + i%2)
		}
		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, 3)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeStill(t *testing.T) {
	media, err := Decode(pngBytes(t, 100, 60))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if media.Kind != Static {
		t.Error("expected static media")
	}
	if media.MediaType != "image/png" {
		t.Errorf("expected image/png, got %s", media.MediaType)
	}
	if media.Width != 100 || media.Height != 60 {
		t.Errorf("expected 100x60, got %dx%d", media.Width, media.Height)
	}
	if media.Still == nil {
		t.Error("expected a still bitmap")
	}
	if len(media.Frames) != 0 {
		t.Error("still media must not carry frames")
	}
}

func TestDecodeAnimated(t *testing.T) {
	media, err := Decode(gifBytes(t, 20, 10, 4))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if media.Kind != Animated {
		t.Error("expected animated media")
	}
	if media.MediaType != "image/gif" {
		t.Errorf("expected image/gif, got %s", media.MediaType)
	}
	if len(media.Frames) != 4 {
		t.Fatalf("expected 4 expanded frames, got %d", len(media.Frames))
	}
	for i, f := range media.Frames {
		b := f.Image.Bounds()
		if b.Dx() != 20 || b.Dy() != 10 {
			t.Errorf("frame %d: expected logical screen 20x10, got %dx%d", i, b.Dx(), b.Dy())
		}
		if f.Delay != 3 {
			t.Errorf("frame %d: expected delay 3, got %d", i, f.Delay)
		}
	}
	if media.Still == nil {
		t.Error("animated media should expose its first frame as the still")
	}
}

func TestDecodeUnsupported(t *testing.T) {
	if _, err := Decode([]byte("definitely not an image")); err == nil {
		t.Fatal("expected an error")
	}
}
