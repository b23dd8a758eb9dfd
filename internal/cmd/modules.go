package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/mfe/internal/cmdtypes"
	"github.com/opmodel/mfe/internal/cmdutil"
	"github.com/opmodel/mfe/internal/config"
	"github.com/opmodel/mfe/internal/descriptor"
	"github.com/opmodel/mfe/internal/output"
)

// NewModulesCmd creates the modules command group.
func NewModulesCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "modules",
		Aliases: []string{"mod"},
		Short:   "Inspect module descriptors",
		Long:    `Commands for listing and validating the module descriptors the host loads.`,
	}

	cmd.AddCommand(
		newModulesListCmd(gc),
		newModulesVetCmd(gc),
	)

	return cmd
}

func newModulesListCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var of cmdutil.OutputFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered modules",
		Long: `List the modules found in the modules directory.

Examples:
  # Table of modules
  mfe modules list

  # As JSON
  mfe modules list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := of.Parse()
			if err != nil {
				return cmdtypes.ExitFor(err, false)
			}

			reg, err := discover(gc)
			if err != nil {
				cmdutil.PrintError("discovering modules", err)
				return cmdtypes.ExitFor(err, true)
			}

			descs := reg.All()
			return cmdutil.Emit(cmd.OutOrStdout(), format, descs, func() *output.Table {
				t := output.NewTable("MODULE", "PAGE NAME", "PAGE TITLE", "API BASE")
				for _, d := range descs {
					t.Row(d.ModuleName, output.Placeholder(d.PageName),
						output.Placeholder(d.PageTitle), output.Placeholder(d.APIBaseURL))
				}
				return t
			})
		},
	}

	of.AddTo(cmd)
	return cmd
}

func newModulesVetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate module descriptors",
		Long: `Validate every module descriptor in the modules directory.

Checks performed:
  1. Each module.yaml parses and has no unknown fields
  2. Each descriptor matches the schema (moduleName format, apiBaseUrl URL)
  3. moduleName is unique across modules`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := discover(gc)
			if err != nil {
				cmdutil.PrintError("module validation failed", err)
				return cmdtypes.ExitFor(err, true)
			}

			out := cmd.OutOrStdout()
			for _, d := range reg.All() {
				fmt.Fprintln(out, output.FormatModuleLine(d.ModuleName, output.FormatCheckmark(d.Path)))
			}
			fmt.Fprintln(out, output.FormatCheckmark(
				pluralize(reg.Len(), "module", "modules")+" valid"))
			return nil
		},
	}
}

func discover(gc *cmdtypes.GlobalConfig) (*descriptor.Registry, error) {
	dir := config.DefaultModulesDir
	if gc.Config != nil && gc.Config.ModulesDir != "" {
		dir = gc.Config.ModulesDir
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return nil, err
	}
	return descriptor.Discover(expanded)
}
