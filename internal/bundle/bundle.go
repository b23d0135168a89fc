// Package bundle packs named export payloads into a single zip archive.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// BlobPair couples one profile's rendered bytes with its file name stem.
// A nil Payload marks a profile that failed or was skipped; it is counted
// but never written.
type BlobPair struct {
	Name    string
	Payload []byte
}

// Extension maps a media type to the archive entry extension.
func Extension(mediaType string) string {
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}

// Archive bundles all non-nil payloads. Name collisions are resolved in
// encounter order by appending _1, _2, ...
func Archive(pairs []BlobPair, ext string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestSpeed)
	})

	seen := make(map[string]int)
	for _, p := range pairs {
		if p.Payload == nil {
			continue
		}
		name := p.Name
		if n := seen[p.Name]; n > 0 {
			name = fmt.Sprintf("%s_%d", p.Name, n)
		}
		seen[p.Name]++

		w, err := zw.Create(name + ext)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("create archive entry %s: %w", name, err)
		}
		if _, err := w.Write(p.Payload); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write archive entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
