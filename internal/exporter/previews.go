package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/rodchenko/avacrop/internal/config"
	"github.com/rodchenko/avacrop/internal/crop"
	"github.com/rodchenko/avacrop/internal/profile"
	"github.com/rodchenko/avacrop/internal/source"
)

const previewSize = 128

// WritePreviews renders a thumbnail per profile into dir. For animated
// media the first expanded frame stands in for the whole animation.
// Profiles without a crop are skipped quietly, matching export.
func (e *Exporter) WritePreviews(media *source.Media, profiles []profile.Profile, opts config.ExportOptions, dir string) error {
	if media == nil || media.Still == nil {
		return ErrNoSource
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create preview dir: %w", err)
	}

	seen := make(map[string]int)
	for _, p := range profiles {
		img, err := crop.Image(media.Still, p.Crop)
		if err != nil {
			e.logger.Debug("preview skipped", "profile", p.FileStem(), "err", err)
			continue
		}
		if opts.CircularCrop {
			img = crop.CircleMask(img, opts.Transparent)
		}

		name := p.FileStem()
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		seen[p.FileStem()]++

		thumb := imaging.Thumbnail(img, previewSize, previewSize, imaging.Lanczos)
		path := filepath.Join(dir, name+"_preview.png")
		if err := imaging.Save(thumb, path); err != nil {
			return fmt.Errorf("save preview %s: %w", path, err)
		}
		e.logger.Debug("preview written", "path", path)
	}
	return nil
}
