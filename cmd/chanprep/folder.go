package main

import (
	"fmt"
	"log"

	"channelprep/internal/batch"
	"channelprep/internal/channel"
	"channelprep/internal/colorspace"
	"channelprep/internal/config"
	"channelprep/internal/convert"

	"github.com/spf13/cobra"
)

func newFolderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder <input_dir> <output_dir>",
		Short: "Convert every image under a folder to a 3-channel linear-Lab channel (b* by default)",
		Long: `Recursively converts images under input_dir into output_dir, mirroring the
directory structure. L, a and b use the linear lightness/chroma approximation.
Files that cannot be read or written are reported and counted; the run continues.
Existing files in output_dir are kept.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolder(cmd, a, args)
		},
	}

	cmd.Flags().StringSlice("exts", batch.DefaultExts, "Comma-separated extensions to include (case-insensitive)")
	cmd.Flags().String("suffix", "_b3", "Suffix appended to the file stem")
	cmd.Flags().Bool("keep_ext", false, "Keep the original extension instead of writing PNG")
	cmd.Flags().String("channel", string(colorspace.Bb), "Channel to extract")
	cmd.Flags().IntP("workers", "j", 1, "Number of parallel workers")
	cmd.Flags().BoolP("verbose", "v", false, "Log every converted file")
	return cmd
}

func runFolder(cmd *cobra.Command, a *app, args []string) error {
	flags := cmd.Flags()
	exts, _ := flags.GetStringSlice("exts")
	suffix, _ := flags.GetString("suffix")
	keepExt, _ := flags.GetBool("keep_ext")
	channelName, _ := flags.GetString("channel")
	workers, _ := flags.GetInt("workers")
	verbose, _ := flags.GetBool("verbose")

	if !flags.Changed("exts") {
		exts = a.prefs.Strings(config.KeyExts, exts)
	}
	if !flags.Changed("suffix") {
		suffix = a.prefs.String(config.KeySuffix, suffix)
	}
	if !flags.Changed("keep_ext") {
		keepExt = a.prefs.Bool(config.KeyKeepExt, keepExt)
	}
	if !flags.Changed("workers") {
		workers = a.prefs.Int(config.KeyWorkers, workers)
	}

	ch, err := colorspace.Parse(channelName)
	if err != nil {
		return err
	}

	res, err := batch.Walk(batch.WalkConfig{
		InputDir:  args[0],
		OutputDir: args[1],
		Exts:      exts,
		Channel:   ch,
		Naming:    convert.Naming{Suffix: suffix, KeepExt: keepExt},
		Select:    channel.SelectLinear,
		Workers:   workers,
		Logger:    log.New(cmd.ErrOrStderr(), "", 0),
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "[✓] Done. Converted: %d, Failed: %d\n", res.Succeeded, res.Failed)
	fmt.Fprintf(out, "Output folder: %s\n", res.OutputDir)
	return nil
}
