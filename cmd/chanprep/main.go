// Command chanprep converts images to single-channel colour representations
// packaged as 3-channel images for detectors trained on 3-channel input.
package main

import (
	"fmt"
	"log"
	"os"

	"channelprep/internal/config"
	"channelprep/internal/version"

	"github.com/spf13/cobra"
)

// app holds state shared by the subcommands.
type app struct {
	configPath string
	prefs      *config.Prefs
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "chanprep",
		Short:         "Convert RGB images to 3-channel single-channel images for detection datasets",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.prefs = prefs
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "Preferences file")

	rootCmd.AddCommand(
		newFolderCmd(a),
		newDatasetCmd(a),
		newChannelsCmd(),
		newConfigCmd(a),
	)
	return rootCmd
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[!] %v\n", err)
		os.Exit(1)
	}
}
