package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/mfe/internal/cmdtypes"
	"github.com/opmodel/mfe/internal/cmdutil"
	"github.com/opmodel/mfe/internal/output"
	"github.com/opmodel/mfe/internal/query"
	"github.com/opmodel/mfe/internal/shell"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var rf cmdutil.RequestFlags

	cmd := &cobra.Command{
		Use:   "fetch <module> <endpoint>",
		Short: "Call a module's API",
		Long: `Call an endpoint on behalf of a module.

Relative endpoints resolve against the module's apiBaseUrl, falling back to
the configured default. The persisted bearer token is attached when present.

Examples:
  # GET relative to the module's API base
  mfe fetch billing /invoices

  # POST a JSON body
  mfe fetch billing /invoices -X POST -d '{"amount": 10}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := rf.ParseHeaders()
			if err != nil {
				return cmdtypes.ExitFor(err, false)
			}

			sh, err := cmdutil.NewShell(gc)
			if err != nil {
				cmdutil.PrintError("loading modules", err)
				return cmdtypes.ExitFor(err, true)
			}
			mod, err := sh.Module(args[0])
			if err != nil {
				cmdutil.PrintError("fetch failed", err)
				return cmdtypes.ExitFor(err, true)
			}

			opts := []shell.QueryOption{shell.WithMethod(rf.Method)}
			if rf.Data != "" {
				if !json.Valid([]byte(rf.Data)) {
					err := fmt.Errorf("--data is not valid JSON")
					return cmdtypes.ExitFor(err, false)
				}
				opts = append(opts, shell.WithBody(json.RawMessage(rf.Data)))
			}
			for k, v := range headers {
				opts = append(opts, shell.WithHeader(k, v))
			}

			var res query.Result
			title := fmt.Sprintf("Fetching %s", args[1])
			_ = output.RunWithSpinner(cmd.Context(), title, func(ctx context.Context) error {
				res = mod.Query(ctx, rf.Key, args[1], opts...)
				return nil
			})
			if res.Err != nil {
				cmdutil.PrintError("fetch failed", res.Err)
				return cmdtypes.ExitFor(res.Err, true)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(res.Data))
			return err
		},
	}

	rf.AddTo(cmd)
	return cmd
}
