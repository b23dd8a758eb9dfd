package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/mfe/internal/cmdtypes"
	"github.com/opmodel/mfe/internal/cmdutil"
	"github.com/opmodel/mfe/internal/output"
)

// NewStateCmd creates the state command group. Its subcommands talk to a
// running host started with 'mfe serve'.
func NewStateCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect and edit a running host's state",
		Long: `Read and modify the global state container of a running host.

The host is reached at --addr, defaulting to server.addr from config.`,
	}

	cmd.AddCommand(
		newStateGetCmd(gc),
		newStateSetCmd(gc),
		newStateResetCmd(gc),
	)

	return cmd
}

func newStateGetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		hf cmdutil.HostFlags
		of cmdutil.OutputFlags
	)

	cmd := &cobra.Command{
		Use:   "get [module]",
		Short: "Show the whole state or one module's slice",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				of.Format = string(output.FormatYAML)
			}
			format, err := of.Parse()
			if err != nil {
				return cmdtypes.ExitFor(err, false)
			}

			module := ""
			if len(args) == 1 {
				module = args[0]
			}

			client := cmdutil.NewHostClient(cmdutil.HostAddr(gc, hf.Addr), nil)
			state, err := client.State(cmd.Context(), module)
			if err != nil {
				cmdutil.PrintError("reading state", err)
				return cmdtypes.ExitFor(err, true)
			}

			return cmdutil.Emit(cmd.OutOrStdout(), format, state, func() *output.Table {
				t := output.NewTable("KEY", "VALUE")
				for _, k := range sortedKeys(state) {
					t.Row(k, fmt.Sprint(state[k]))
				}
				return t
			})
		},
	}

	hf.AddTo(cmd)
	of.AddTo(cmd)
	return cmd
}

func newStateSetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var hf cmdutil.HostFlags

	cmd := &cobra.Command{
		Use:   "set <module> <key=value>...",
		Short: "Merge values into a module's slice",
		Long: `Shallow-merge key=value pairs into a module's state slice.

Values that parse as JSON keep their type; anything else is stored as a string.

Examples:
  mfe state set billing count=3 filter=open
  mfe state set billing tags='["a","b"]'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			partial, err := cmdutil.ParseAssignments(args[1:])
			if err != nil {
				cmdutil.PrintError("parsing values", err)
				return cmdtypes.ExitFor(err, true)
			}

			client := cmdutil.NewHostClient(cmdutil.HostAddr(gc, hf.Addr), nil)
			state, err := client.MergeState(cmd.Context(), args[0], partial)
			if err != nil {
				cmdutil.PrintError("updating state", err)
				return cmdtypes.ExitFor(err, true)
			}

			output.ModuleLogger(args[0]).Info("state updated", "keys", len(state))
			return cmdutil.Emit(cmd.OutOrStdout(), output.FormatYAML, state, nil)
		},
	}

	hf.AddTo(cmd)
	return cmd
}

func newStateResetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var hf cmdutil.HostFlags

	cmd := &cobra.Command{
		Use:   "reset <module>",
		Short: "Remove a module's slice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := cmdutil.NewHostClient(cmdutil.HostAddr(gc, hf.Addr), nil)
			if err := client.ResetState(cmd.Context(), args[0]); err != nil {
				cmdutil.PrintError("resetting state", err)
				return cmdtypes.ExitFor(err, true)
			}
			output.ModuleLogger(args[0]).Info(output.FormatCheckmark("state reset"))
			return nil
		},
	}

	hf.AddTo(cmd)
	return cmd
}
