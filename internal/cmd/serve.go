package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/opmodel/mfe/internal/alert"
	"github.com/opmodel/mfe/internal/cmdtypes"
	"github.com/opmodel/mfe/internal/cmdutil"
	"github.com/opmodel/mfe/internal/output"
	"github.com/opmodel/mfe/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		hf    cmdutil.HostFlags
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the host API",
		Long: `Run the host runtime and expose it over HTTP.

The API serves module descriptors, the global state container, page
metadata, alerts, link rewriting and module queries, plus a server-sent
event stream of changes at /api/events.

Examples:
  # Serve on server.addr from config
  mfe serve

  # Reload descriptors when module.yaml files change
  mfe serve --addr :9000 --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sh, err := cmdutil.NewShell(gc)
			if err != nil {
				cmdutil.PrintError("loading modules", err)
				return cmdtypes.ExitFor(err, true)
			}
			for _, d := range sh.Registry().All() {
				output.ModuleLogger(d.ModuleName).Info("module loaded",
					"page", output.Placeholder(d.PageName), "api", output.Placeholder(d.APIBaseURL))
			}

			unsubscribe := sh.Alerts().Subscribe(func(a alert.Alert) {
				if a.Show {
					output.Info(output.FormatAlert(string(a.Color), a.Title, a.Content))
				}
			})
			defer unsubscribe()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := cmdutil.HostAddr(gc, hf.Addr)
			srv := server.New(sh)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.ListenAndServe(gctx, addr)
			})
			if watch {
				g.Go(func() error {
					err := sh.Watch(gctx)
					if err != nil && gctx.Err() == nil {
						return err
					}
					return nil
				})
			}

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				cmdutil.PrintError("host stopped", err)
				return cmdtypes.ExitFor(err, true)
			}
			return nil
		},
	}

	hf.AddTo(cmd)
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload module descriptors on change")
	return cmd
}
