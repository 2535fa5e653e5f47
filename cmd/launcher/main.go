package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	lerrors "github.com/hoi-launcher/shell/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		lerrors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "launcher",
		Short: "Mod launcher shell",
		Long: `The launcher serves the mod launcher front end: a home view with
settings and mods pages loaded on demand, a theme that follows the OS
until the user picks one, and a mod list read from the native host.

Configuration is read from launcher.json or launcher.yaml in the
config directory, then overridden by LAUNCHER_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory containing launcher.json or launcher.yaml")

	rootCmd.AddCommand(
		serveCmd(&configDir),
		openCmd(&configDir),
		modsCmd(&configDir),
		themeCmd(&configDir),
		hostCmd(&configDir),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
