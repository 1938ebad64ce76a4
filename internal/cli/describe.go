package cli

import (
	"github.com/spf13/cobra"

	"github.com/syssam/weave/compiler/gen"
	"github.com/syssam/weave/compiler/load"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(rootOpts *RootOptions) *cobra.Command {
	var tables string

	cmd := &cobra.Command{
		Use:   "describe <schema>",
		Short: "Show the augmented columns and hook contributions of each table",
		Long: `Describe applies every behavior to its table and prints the resulting
column set, then lists for each hook point the behaviors contributing
code and the number of declarations or statements they add.

Nothing is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []gen.Option{gen.WithLogger(rootOpts.Logger(cmd.ErrOrStderr()))}
			if tables != "" {
				opts = append(opts, gen.WithTables(tables))
			}
			c, err := newConfig(opts...)
			if err != nil {
				return err
			}
			doc, err := load.Load(args[0])
			if err != nil {
				return classify("load schema", err)
			}
			g, err := gen.NewGraph(c, doc)
			if err != nil {
				return classify("build graph", err)
			}
			if err := g.Describe(cmd.OutOrStdout()); err != nil {
				return classify("describe", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tables, "tables", "", "glob pattern selecting the tables to describe")

	return cmd
}
