package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func hostCmd(configDir *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "host",
		Short: "Run the development host on its own",
		Long: `Run the development host as a separate process, standing in for the
native host. Point host.url (or LAUNCHER_HOST_URL) of a launcher at it:

  launcher host --addr 127.0.0.1:7411
  LAUNCHER_HOST_URL=ws://127.0.0.1:7411/host launcher serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			ctx, stop := withSignals(cmd.Context())
			defer stop()

			logger := newLogger(cfg, os.Stderr)
			r := chi.NewRouter()
			r.Use(chimw.Recoverer)
			r.Handle("/host", newDevHost(cfg, logger))
			r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("ok"))
			})

			srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("development host listening", "url", "ws://"+addr+"/host", "mods", len(cfg.Host.Catalog))
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7411", "Address to listen on")
	return cmd
}
