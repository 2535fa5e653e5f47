package main

import (
	"fmt"

	"github.com/spf13/cobra"

	lerrors "github.com/hoi-launcher/shell/internal/errors"
	"github.com/hoi-launcher/shell/pkg/theme"
)

func themeCmd(configDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the launcher theme",
		Long: `Show the effective theme and where it comes from.

  launcher theme             show the theme
  launcher theme set dark    persist an explicit choice
  launcher theme toggle      flip and persist
  launcher theme reset       forget the choice and follow the OS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *configDir, func(a *app) error {
				a.theme.Init(cmd.Context())
				st := a.theme.State()
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", st.Value(), st.Source())
				return nil
			})
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:       "set <light|dark>",
			Short:     "Persist an explicit theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(theme.Light), string(theme.Dark)},
			RunE: func(cmd *cobra.Command, args []string) error {
				t, ok := theme.Parse(args[0])
				if !ok {
					return lerrors.New(lerrors.CodeUsage).
						WithDetailf("unknown theme %q", args[0]).
						WithSuggestion("Use light or dark")
				}
				return withApp(cmd, *configDir, func(a *app) error {
					a.theme.Init(cmd.Context())
					a.theme.Apply(cmd.Context(), t.IsDark(), true)
					success("Theme set to %s", t)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Flip the theme and persist it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, *configDir, func(a *app) error {
					a.theme.Init(cmd.Context())
					a.theme.Toggle(cmd.Context())
					success("Theme set to %s", a.theme.State().Value())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Forget the explicit theme and follow the OS",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, *configDir, func(a *app) error {
					if err := a.store.Delete(cmd.Context(), theme.PreferenceKey); err != nil {
						return err
					}
					success("Theme follows the OS")
					return nil
				})
			},
		},
	)
	return cmd
}

// withApp assembles the launcher for a one-shot command.
func withApp(cmd *cobra.Command, configDir string, fn func(a *app) error) error {
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	ctx, stop := withSignals(cmd.Context())
	defer stop()
	cmd.SetContext(ctx)

	a, err := newApp(ctx, cfg, newLogger(cfg, cmd.ErrOrStderr()), appOptions...)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// appOptions are applied to every one-shot assembly. Tests replace them.
var appOptions []appOption
