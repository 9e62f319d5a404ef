package main

import (
	"fmt"
	"strings"

	"channelprep/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change default settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", a.prefs.Path())
			for _, line := range a.prefs.Entries() {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a preference (" + strings.Join(config.Keys(), ", ") + ")",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.prefs.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := a.prefs.Save(); err != nil {
				return fmt.Errorf("saving preferences: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}
