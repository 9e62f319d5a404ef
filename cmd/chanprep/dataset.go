package main

import (
	"fmt"
	"log"

	"channelprep/internal/batch"
	"channelprep/internal/colorspace"
	"channelprep/internal/config"

	"github.com/spf13/cobra"
)

func newDatasetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset <dataset_dir> <output_dir>",
		Short: "Rebuild a train/valid/test dataset with images converted to one channel",
		Long: `Deletes output_dir, copies every split's labels verbatim and converts every
split's images to the chosen channel as PNG. Unreadable images are skipped.
L, a and b use OpenCV's CIELAB conversion.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDataset(cmd, a, args)
		},
	}

	cmd.Flags().String("channel", string(colorspace.Cr), "Channel to extract")
	return cmd
}

func runDataset(cmd *cobra.Command, a *app, args []string) error {
	channelName, _ := cmd.Flags().GetString("channel")
	if !cmd.Flags().Changed("channel") {
		channelName = a.prefs.String(config.KeyChannel, channelName)
	}

	ch, err := colorspace.Parse(channelName)
	if err != nil {
		return err
	}

	res, err := batch.ConvertDataset(batch.DatasetConfig{
		SourceDir: args[0],
		OutputDir: args[1],
		Channel:   ch,
		Logger:    log.New(cmd.ErrOrStderr(), "", 0),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, s := range res.Splits {
		fmt.Fprintf(out, "%-6s images: %d converted, %d skipped, %d failed; labels: %d copied\n",
			s.Split, s.Succeeded, s.Skipped, s.Failed, s.Labels)
	}
	fmt.Fprintf(out, "[✓] Done. Converted: %d, Skipped: %d, Failed: %d\n",
		res.Total.Succeeded, res.Total.Skipped, res.Total.Failed)
	fmt.Fprintf(out, "Output folder: %s\n", args[1])
	return nil
}
