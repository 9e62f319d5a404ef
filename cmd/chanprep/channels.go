package main

import (
	"fmt"
	"text/tabwriter"

	"channelprep/internal/colorspace"

	"github.com/spf13/cobra"
)

func newChannelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List the supported channel identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CHANNEL\tFAMILY")
			for _, c := range colorspace.All() {
				fmt.Fprintf(w, "%s\t%s\n", c, c.Family())
			}
			return w.Flush()
		},
	}
}
