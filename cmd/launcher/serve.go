package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func serveCmd(configDir *string) *cobra.Command {
	var (
		port int
		host string
		page string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the launcher front end",
		Long: `Serve the launcher over HTTP.

Unless host.url is configured, the development host is mounted at
/host and answers set_theme and list_mods from the configured catalog.

Examples:
  launcher serve
  launcher serve --port=8080
  launcher serve --page=mods`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}

			ctx, stop := withSignals(cmd.Context())
			defer stop()

			logger := newLogger(cfg, os.Stderr)
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			// Listen before starting the shell: a deep link to mods reaches
			// the development host on this same server.
			ln, err := net.Listen("tcp", cfg.Address())
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return a.server().Serve(ctx, ln)
			})
			g.Go(func() error {
				<-ctx.Done()
				return a.lazy.Close()
			})

			if err := a.shell.Start(ctx, page); err != nil {
				warn("could not open page %q: %v", page, err)
			}

			logger.Info("launcher ready", "url", cfg.URL(), "host", cfg.HostURL())
			return g.Wait()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().StringVar(&page, "page", "", "Page to open at start (settings or mods)")

	return cmd
}

// withSignals returns a context cancelled on interrupt.
func withSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
