// Package convert runs single-image conversion jobs: load, select a channel,
// write the 3-channel result.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"channelprep/internal/channel"
	"channelprep/internal/colorspace"
	"channelprep/internal/cvlab"
	"channelprep/internal/detect"
	"channelprep/internal/raster"
)

// Job converts one source image into one destination image.
type Job struct {
	Src     string
	Dst     string
	Channel colorspace.Channel
}

// Options controls how a job selects its channel.
type Options struct {
	Select channel.Func // nil uses channel.Select
}

// Result describes a converted image.
type Result struct {
	Width  int
	Height int
	Mean   float64 // mean of the emitted channel
	StdDev float64
}

// Run executes the job. Read failures return *ImageReadError and write
// failures *ImageWriteError; both are per-file conditions a batch can count
// and move past. An unsupported channel is returned as
// *colorspace.UnsupportedChannelError before anything is read.
func Run(job Job, opts Options) (*Result, error) {
	if !job.Channel.Valid() {
		return nil, &colorspace.UnsupportedChannelError{Channel: string(job.Channel)}
	}

	src, err := cvlab.Load(job.Src)
	if err != nil {
		return nil, &ImageReadError{Path: job.Src, Err: err}
	}

	sel := opts.Select
	if sel == nil {
		sel = channel.Select
	}

	out, err := sel(src, job.Channel)
	if err != nil {
		return nil, fmt.Errorf("converting %s to %s: %w", job.Src, job.Channel, err)
	}
	if err := detect.CheckInput(out); err != nil {
		return nil, fmt.Errorf("converting %s to %s: %w", job.Src, job.Channel, err)
	}

	if err := os.MkdirAll(filepath.Dir(job.Dst), 0o755); err != nil {
		return nil, &ImageWriteError{Path: job.Dst, Err: err}
	}
	if err := raster.Save(job.Dst, out); err != nil {
		return nil, &ImageWriteError{Path: job.Dst, Err: err}
	}

	// Replicated planes are identical, so plane 0 is the channel.
	mean, std := out.Plane(0).Stats()

	return &Result{
		Width:  out.Width,
		Height: out.Height,
		Mean:   mean,
		StdDev: std,
	}, nil
}

// IsFileError reports whether err is a per-file read or write failure.
func IsFileError(err error) bool {
	var re *ImageReadError
	var we *ImageWriteError
	return errors.As(err, &re) || errors.As(err, &we)
}
