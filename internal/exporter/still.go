package exporter

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/rodchenko/avacrop/internal/bundle"
	"github.com/rodchenko/avacrop/internal/config"
	"github.com/rodchenko/avacrop/internal/crop"
	"github.com/rodchenko/avacrop/internal/profile"
	"github.com/rodchenko/avacrop/internal/source"
)

// exportStills renders every profile against the single still bitmap.
// Profile outputs are independent, so they encode in parallel; the
// result slice keeps list order for stable collision numbering.
func (e *Exporter) exportStills(media *source.Media, profiles []profile.Profile, opts config.ExportOptions) ([]bundle.BlobPair, error) {
	blobs := make([]bundle.BlobPair, len(profiles))

	var g errgroup.Group
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}
	for i, p := range profiles {
		g.Go(func() error {
			payload, err := encodeStill(media.Still, p, media.MediaType, opts)
			if err != nil {
				e.logger.Debug("still export failed", "profile", p.FileStem(), "err", err)
				payload = nil
			}
			blobs[i] = bundle.BlobPair{Name: p.FileStem(), Payload: payload}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blobs, nil
}

func encodeStill(src image.Image, p profile.Profile, mediaType string, opts config.ExportOptions) ([]byte, error) {
	img, err := crop.Image(src, p.Crop)
	if err != nil {
		return nil, err
	}

	var out image.Image = img
	if opts.CircularCrop {
		out = crop.CircleMask(img, opts.Transparent)
	}

	format := imaging.PNG
	var encOpts []imaging.EncodeOption
	if mediaType == "image/jpeg" {
		format = imaging.JPEG
		encOpts = append(encOpts, imaging.JPEGQuality(92))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, format, encOpts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
