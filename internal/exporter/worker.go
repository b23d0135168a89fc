package exporter

import (
	"fmt"

	"github.com/rodchenko/avacrop/internal/bundle"
	"github.com/rodchenko/avacrop/internal/config"
	"github.com/rodchenko/avacrop/internal/crop"
	"github.com/rodchenko/avacrop/internal/encoder"
	"github.com/rodchenko/avacrop/internal/frame"
	"github.com/rodchenko/avacrop/internal/profile"
	"github.com/rodchenko/avacrop/internal/source"
)

// The worker boundary is a single goroutine fed by value and drained over
// one event channel. The stream is zero or more progressEvents followed by
// exactly one terminal event (finishedEvent or errorEvent).

type workerEvent interface{ workerEvent() }

type progressEvent struct {
	Done  int
	Total int
}

type finishedEvent struct {
	Blobs []bundle.BlobPair
}

type errorEvent struct {
	Err error
}

func (progressEvent) workerEvent() {}
func (finishedEvent) workerEvent() {}
func (errorEvent) workerEvent()    {}

type gifRequest struct {
	frames   []frame.Frame
	profiles []profile.Profile
	opts     config.ExportOptions
}

func (e *Exporter) exportGIFs(media *source.Media, profiles []profile.Profile, opts config.ExportOptions, onProgress ProgressFunc) ([]bundle.BlobPair, error) {
	req := gifRequest{frames: media.Frames, profiles: profiles, opts: opts}
	events := make(chan workerEvent)
	go runGIFWorker(req, events)

	total := len(media.Frames) * len(profiles)
	for ev := range events {
		switch ev := ev.(type) {
		case progressEvent:
			if onProgress != nil {
				onProgress(ev.Done, ev.Total)
			}
		case finishedEvent:
			if onProgress != nil {
				onProgress(total, total)
			}
			return ev.Blobs, nil
		case errorEvent:
			// Coarse failure: the whole GIF export attempt is lost, not
			// a single profile.
			return nil, fmt.Errorf("gif export worker: %w", ev.Err)
		}
	}
	return nil, fmt.Errorf("gif export worker: event stream closed without a terminal event")
}

func runGIFWorker(req gifRequest, events chan<- workerEvent) {
	defer close(events)
	defer func() {
		if r := recover(); r != nil {
			events <- errorEvent{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	total := len(req.frames) * len(req.profiles)
	done := 0

	blobs := make([]bundle.BlobPair, 0, len(req.profiles))
	for _, p := range req.profiles {
		payload, err := encodeProfileGIF(req.frames, p, req.opts, func() {
			done++
			events <- progressEvent{Done: done, Total: total}
		})
		if err != nil {
			// Recoverable per profile: a nil payload keeps the batch going.
			payload = nil
		}
		blobs = append(blobs, bundle.BlobPair{Name: p.FileStem(), Payload: payload})
	}

	events <- finishedEvent{Blobs: blobs}
}

func encodeProfileGIF(frames []frame.Frame, p profile.Profile, opts config.ExportOptions, tick func()) ([]byte, error) {
	if p.Crop == nil {
		return nil, profile.ErrInvalidCrop
	}

	encFrames := make([]encoder.Frame, 0, len(frames))
	for _, f := range frames {
		img, err := crop.Image(f.Image, p.Crop)
		if err != nil {
			return nil, err
		}
		if opts.CircularCrop {
			img = crop.CircleMask(img, opts.Transparent)
		}
		encFrames = append(encFrames, encoder.Frame{Image: img, Delay: f.Delay})
	}

	return encoder.EncodeGIF(encFrames, encoder.Options{Transparent: opts.Transparent}, func(int) {
		tick()
	})
}
