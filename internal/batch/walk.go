package batch

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sync"

	"channelprep/internal/channel"
	"channelprep/internal/colorspace"
	"channelprep/internal/convert"

	"golang.org/x/sync/errgroup"
)

// Tally counts per-file outcomes.
type Tally struct {
	Succeeded int
	Failed    int // read or write failures
	Skipped   int // unreadable inputs the dataset converter passes over
}

// Add returns the element-wise sum of t and o.
func (t Tally) Add(o Tally) Tally {
	return Tally{
		Succeeded: t.Succeeded + o.Succeeded,
		Failed:    t.Failed + o.Failed,
		Skipped:   t.Skipped + o.Skipped,
	}
}

// WalkConfig configures a recursive directory conversion.
type WalkConfig struct {
	InputDir  string
	OutputDir string
	Exts      []string // nil uses DefaultExts
	Channel   colorspace.Channel
	Naming    convert.Naming
	Select    channel.Func // nil uses channel.Select
	Workers   int          // <= 1 runs jobs sequentially in walk order
	Logger    *log.Logger  // per-file diagnostics; nil discards
	Verbose   bool         // also log every converted file
}

// WalkResult summarizes a walk.
type WalkResult struct {
	Tally
	Files     int
	OutputDir string // absolute output root
}

// Walk converts every matching file under InputDir into the mirrored path
// under OutputDir. Existing output content is left in place. A missing input
// root, an empty match set or an unsupported channel stops the run before any
// job executes; per-file failures are counted and the walk continues.
func Walk(cfg WalkConfig) (*WalkResult, error) {
	if !cfg.Channel.Valid() {
		return nil, &colorspace.UnsupportedChannelError{Channel: string(cfg.Channel)}
	}

	exts := cfg.Exts
	if len(exts) == 0 {
		exts = DefaultExts
	}

	files, err := Discover(cfg.InputDir, exts)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s with extensions %v", ErrNoImages, cfg.InputDir, NormalizeExts(exts))
	}

	outAbs, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	jobs, err := planJobs(cfg, files)
	if err != nil {
		return nil, err
	}

	opts := convert.Options{Select: cfg.Select}
	result := &WalkResult{Files: len(files), OutputDir: outAbs}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			res, err := convert.Run(job, opts)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Succeeded++
				if cfg.Verbose {
					logger.Printf("[+] %s -> %s (%dx%d, mean %.1f, sd %.1f)",
						job.Src, job.Dst, res.Width, res.Height, res.Mean, res.StdDev)
				}
			case convert.IsFileError(err):
				result.Failed++
				logger.Printf("[x] Failed: %s: %v", job.Src, err)
			default:
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	return result, nil
}

// planJobs maps every discovered file to its mirrored output path. It runs
// before any job starts so a path error never leaves workers behind.
func planJobs(cfg WalkConfig, files []string) ([]convert.Job, error) {
	jobs := make([]convert.Job, 0, len(files))
	for _, src := range files {
		rel, err := filepath.Rel(cfg.InputDir, src)
		if err != nil {
			return nil, fmt.Errorf("relative path for %s: %w", src, err)
		}
		jobs = append(jobs, convert.Job{
			Src:     src,
			Dst:     cfg.Naming.OutputPath(cfg.OutputDir, rel),
			Channel: cfg.Channel,
		})
	}
	return jobs, nil
}
