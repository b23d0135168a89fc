// Package exporter drives the per-profile export pipeline and owns the
// worker boundary for CPU-heavy GIF encoding.
package exporter

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/rodchenko/avacrop/internal/bundle"
	"github.com/rodchenko/avacrop/internal/config"
	"github.com/rodchenko/avacrop/internal/profile"
	"github.com/rodchenko/avacrop/internal/source"
)

var (
	ErrNoSource   = errors.New("no source media loaded")
	ErrNoProfiles = errors.New("no profiles to export")
)

// ProgressFunc receives completed and total work units during animated
// exports. Still exports finish without progress callbacks.
type ProgressFunc func(done, total int)

// Result is one finished export batch. Skipped profiles are absent from
// the archive but reported here instead of disappearing silently.
type Result struct {
	Archive      []byte
	Exported     int
	Skipped      int
	SkippedNames []string
}

type Exporter struct {
	logger *log.Logger

	// Workers caps still-export parallelism; zero means unbounded.
	Workers int
}

func New(logger *log.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export renders every profile against the source media and bundles the
// results. Per-profile failures degrade to skipped entries; pipeline-level
// failures abort before any archive bytes exist.
func (e *Exporter) Export(media *source.Media, profiles []profile.Profile, opts config.ExportOptions, onProgress ProgressFunc) (*Result, error) {
	if media == nil {
		return nil, ErrNoSource
	}
	if len(profiles) == 0 {
		return nil, ErrNoProfiles
	}

	// The worker must never observe mutations made after this point.
	profiles = profile.CloneAll(profiles)

	var (
		blobs []bundle.BlobPair
		err   error
	)
	switch media.Kind {
	case source.Animated:
		blobs, err = e.exportGIFs(media, profiles, opts, onProgress)
	default:
		blobs, err = e.exportStills(media, profiles, opts)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for i, b := range blobs {
		if b.Payload == nil {
			res.Skipped++
			res.SkippedNames = append(res.SkippedNames, profiles[i].FileStem())
			e.logger.Warn("profile skipped", "profile", profiles[i].FileStem())
			continue
		}
		res.Exported++
	}

	res.Archive, err = bundle.Archive(blobs, bundle.Extension(media.MediaType))
	if err != nil {
		return nil, fmt.Errorf("bundle export: %w", err)
	}
	return res, nil
}
