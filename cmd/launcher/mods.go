package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hoi-launcher/shell/pkg/mods"
)

func modsCmd(configDir *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "mods",
		Short: "List installed mods through the host",
		Long: `Ask the configured host for the installed mods and print them.

Unlike the mods page, which falls back to placeholders, this command
fails when no host strategy yields a usable list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *configDir, func(a *app) error {
				return printMods(cmd, a, asJSON)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func printMods(cmd *cobra.Command, a *app, asJSON bool) error {
	entries, err := a.bridge.Invoke(cmd.Context(), mods.ListCommand)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintf(out, "No mods found. Mods are read from %s\n", mods.ModsDirHint)
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.DisplayName(), e.DisplayPath())
	}
	return tw.Flush()
}
