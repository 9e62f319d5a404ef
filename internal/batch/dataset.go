package batch

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"channelprep/internal/channel"
	"channelprep/internal/colorspace"
	"channelprep/internal/convert"
)

// Splits are the fixed dataset partitions, processed in this order.
var Splits = []string{"train", "valid", "test"}

const (
	imagesDir = "images"
	labelsDir = "labels"
)

// DatasetConfig configures a dataset-split conversion.
type DatasetConfig struct {
	SourceDir string
	OutputDir string // removed and rebuilt on every run
	Channel   colorspace.Channel
	Select    channel.Func // nil uses channel.Select
	Logger    *log.Logger  // progress lines; nil discards
}

// SplitResult is the outcome for one split.
type SplitResult struct {
	Split  string
	Images int
	Labels int
	Tally
}

// DatasetResult summarizes a dataset conversion.
type DatasetResult struct {
	Splits []SplitResult
	Total  Tally
}

// ConvertDataset rebuilds OutputDir from SourceDir: labels are copied
// verbatim, images are converted to the chosen channel and written as PNG.
// Unreadable images are skipped. Any existing OutputDir is deleted first, so
// nothing may read it while this runs.
func ConvertDataset(cfg DatasetConfig) (*DatasetResult, error) {
	if !cfg.Channel.Valid() {
		return nil, &colorspace.UnsupportedChannelError{Channel: string(cfg.Channel)}
	}
	if err := checkDir(cfg.SourceDir); err != nil {
		return nil, err
	}
	if err := checkDisjoint(cfg.SourceDir, cfg.OutputDir); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("removing %s: %w", cfg.OutputDir, err)
	}

	result := &DatasetResult{}
	for _, split := range Splits {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, split, imagesDir), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s images: %w", split, err)
		}
		n, err := copyTree(
			filepath.Join(cfg.SourceDir, split, labelsDir),
			filepath.Join(cfg.OutputDir, split, labelsDir),
		)
		if err != nil {
			return nil, fmt.Errorf("copying %s labels: %w", split, err)
		}
		result.Splits = append(result.Splits, SplitResult{Split: split, Labels: n})
	}

	opts := convert.Options{Select: cfg.Select}
	for i := range result.Splits {
		sr := &result.Splits[i]
		if err := convertSplit(cfg, sr, opts, logger); err != nil {
			return result, err
		}
		result.Total = result.Total.Add(sr.Tally)
	}

	return result, nil
}

func convertSplit(cfg DatasetConfig, sr *SplitResult, opts convert.Options, logger *log.Logger) error {
	imgDir := filepath.Join(cfg.SourceDir, sr.Split, imagesDir)
	outDir := filepath.Join(cfg.OutputDir, sr.Split, imagesDir)

	entries, err := os.ReadDir(imgDir)
	if err != nil {
		return fmt.Errorf("listing %s images: %w", sr.Split, err)
	}
	sr.Images = len(entries)

	desc := fmt.Sprintf("%s-%s", sr.Split, cfg.Channel)
	logger.Printf("Processing %s: %d entries", desc, len(entries))

	for _, e := range entries {
		name := e.Name()
		job := convert.Job{
			Src:     filepath.Join(imgDir, name),
			Dst:     filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name))+convert.LosslessExt),
			Channel: cfg.Channel,
		}

		_, err := convert.Run(job, opts)
		switch err.(type) {
		case nil:
			sr.Succeeded++
		case *convert.ImageReadError:
			sr.Skipped++
		case *convert.ImageWriteError:
			sr.Failed++
			logger.Printf("%s: write failed: %v", desc, err)
		default:
			return err
		}
	}

	logger.Printf("%s: converted %d, skipped %d, failed %d", desc, sr.Succeeded, sr.Skipped, sr.Failed)
	return nil
}

// checkDisjoint refuses an output root that is, or contains, the source root,
// since the output is deleted before conversion.
func checkDisjoint(src, dst string) error {
	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(dstAbs, srcAbs)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return fmt.Errorf("output directory %s would delete source %s", dst, src)
	}
	return nil
}

// copyTree copies the directory src to dst byte-for-byte, keeping file modes.
// It returns the number of files copied.
func copyTree(src, dst string) (int, error) {
	if err := checkDir(src); err != nil {
		return 0, err
	}

	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		}

		if err := copyFile(path, target, info.Mode().Perm()); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

func copyFile(src, dst string, perm fs.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
