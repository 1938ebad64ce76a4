package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/syssam/weave/compiler/load"
)

// Dialects lists the databases inspect can read.
var Dialects = []string{load.MySQL, load.Postgres, load.SQLite}

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	Schema  string
	Tables  string
	Package string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <dialect> <dsn>",
		Short: "Print a definition file for the tables of a live database",
		Long: `Inspect reads the tables of a database and prints them as a YAML
definition document. The output carries no behaviors; edit it to attach
them, then pass it to generate.

Supported dialects: mysql, postgres, sqlite.`,
		Example: `  weave inspect sqlite "file:app.db?mode=ro" > schema.yaml
  weave inspect postgres "postgres://localhost/app?sslmode=disable" --schema public --tables 'user*'`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialect, dsn := args[0], args[1]
			if !slices.Contains(Dialects, dialect) {
				return NewExitError(ExitCommandError, fmt.Sprintf("unsupported dialect %q: must be one of %v", dialect, Dialects))
			}
			log := rootOpts.Logger(cmd.ErrOrStderr())

			var iopts []load.InspectOption
			if opts.Schema != "" {
				iopts = append(iopts, load.WithSchemaName(opts.Schema))
			}
			if opts.Tables != "" {
				iopts = append(iopts, load.WithTableFilter(opts.Tables))
			}
			doc, err := load.Inspect(cmd.Context(), dialect, dsn, iopts...)
			if err != nil {
				return WrapExitError(ExitCommandError, "inspect", err)
			}
			doc.Package = opts.Package
			log.Debug("inspected database", "dialect", dialect, "tables", len(doc.Tables))
			return doc.Encode(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "database schema to inspect (default: the connection's)")
	cmd.Flags().StringVar(&opts.Tables, "tables", "", "glob pattern selecting the tables to include")
	cmd.Flags().StringVar(&opts.Package, "package", "", "package name written to the document")

	return cmd
}
