package source

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

const defaultDPI = 150

// loadPDF renders the document's first page into static media. Multi-page
// documents are valid input; only page one is offered for cropping.
func loadPDF(path string, dpi int) (*Media, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("pdf %s has no pages", path)
	}

	img, err := doc.ImageDPI(0, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("render pdf page: %w", err)
	}

	b := img.Bounds()
	return &Media{
		Kind:      Static,
		MediaType: "application/pdf",
		Width:     b.Dx(),
		Height:    b.Dy(),
		Still:     img,
	}, nil
}

// LoadPDF renders a PDF at an explicit DPI.
func LoadPDF(path string, dpi int) (*Media, error) {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return loadPDF(path, dpi)
}
