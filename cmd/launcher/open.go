package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func openCmd(configDir *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "open [page]",
		Short: "Render the launcher document",
		Long: `Render the launcher document, optionally with a page loaded, and
write the HTML to stdout or a file. The mods page reads the mod list from
the configured host and shows placeholders when it is unreachable.

Examples:
  launcher open
  launcher open settings
  launcher open mods --out mods.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := ""
			if len(args) == 1 {
				page = args[0]
			}
			return withApp(cmd, *configDir, func(a *app) error {
				if err := a.shell.Start(cmd.Context(), page); err != nil {
					return err
				}

				var w io.Writer = cmd.OutOrStdout()
				if out != "" {
					f, err := os.Create(out)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				return a.shell.WriteHTML(w)
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")
	return cmd
}
