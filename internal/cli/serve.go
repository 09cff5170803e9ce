package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leeforge/modkit/icon"
	"github.com/leeforge/modkit/inspector"
	"github.com/leeforge/modkit/utils"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr   string
		routes bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plugin inspector over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = s.Close(ctx)
			}()

			srv := inspector.New(inspector.Config{
				Registry:      s.registry,
				Notifications: s.notes,
				Icons:         icon.NewLoader(a.fs, a.cfg.Paths.Plugins, a.cfg.Plugins.IconSize),
				Logger:        s.logger,
			})
			if routes {
				return utils.PrintRoutes(cmd.OutOrStdout(), srv.Routes())
			}

			if addr == "" {
				addr = a.cfg.Inspector.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default inspector.addr)")
	cmd.Flags().BoolVar(&routes, "routes", false, "print the routes and exit")
	return cmd
}
