package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/mfe/internal/cmdtypes"
	"github.com/opmodel/mfe/internal/cmdutil"
)

// NewLinkCmd creates the link command.
func NewLinkCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		text  string
		props []string
	)

	cmd := &cobra.Command{
		Use:   "link <module> <to>",
		Short: "Rewrite a module-relative link",
		Long: `Rewrite a destination relative to a module's route prefix.

Examples:
  # Prints /billing/invoices
  mfe link billing invoices

  # Render an anchor with attributes
  mfe link billing /invoices --html "Invoices" --prop class=nav`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := cmdutil.NewShell(gc)
			if err != nil {
				cmdutil.PrintError("loading modules", err)
				return cmdtypes.ExitFor(err, true)
			}
			mod, err := sh.Module(args[0])
			if err != nil {
				cmdutil.PrintError("rewriting link", err)
				return cmdtypes.ExitFor(err, true)
			}

			if !cmd.Flags().Changed("html") {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), mod.Href(args[1]))
				return err
			}

			attrs, err := parseProps(props)
			if err != nil {
				return cmdtypes.ExitFor(err, false)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), mod.Link(args[1], attrs).HTML(text))
			return err
		},
	}

	cmd.Flags().StringVar(&text, "html", "", "Render an anchor element with this text")
	cmd.Flags().StringArrayVar(&props, "prop", nil, "Anchor attribute as key=value (can be repeated)")
	return cmd
}

func parseProps(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	values, err := cmdutil.ParseAssignments(pairs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out, nil
}
