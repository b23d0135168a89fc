// Package source loads an uploaded file into immutable session media:
// either one still bitmap or a fully expanded animation frame sequence.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/rodchenko/avacrop/internal/frame"
)

var ErrUnsupportedMediaType = errors.New("unsupported media type")

type Kind int

const (
	Static Kind = iota
	Animated
)

// Media is replaced wholesale on every upload and never mutated in place.
type Media struct {
	Kind      Kind
	MediaType string
	Width     int
	Height    int
	Still     image.Image
	Frames    []frame.Frame
}

var mediaTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Load reads and decodes a media file. GIFs come back as an expanded
// frame sequence; everything else decodes to a single still.
func Load(path string) (*Media, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path, defaultDPI)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode sniffs the format from the byte stream itself; the file
// extension is never trusted.
func Decode(data []byte) (*Media, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	mediaType, ok := mediaTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, format)
	}

	if mediaType == "image/gif" {
		return decodeGIF(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	return &Media{
		Kind:      Static,
		MediaType: mediaType,
		Width:     b.Dx(),
		Height:    b.Dy(),
		Still:     img,
	}, nil
}

func decodeGIF(data []byte) (*Media, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}

	raws, width, height := frame.FromGIF(g)
	frames := frame.Expand(raws, width, height)

	m := &Media{
		Kind:      Animated,
		MediaType: "image/gif",
		Width:     width,
		Height:    height,
		Frames:    frames,
	}
	if len(frames) > 0 {
		m.Still = frames[0].Image
	}
	return m, nil
}
