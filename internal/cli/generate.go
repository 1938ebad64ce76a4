package cli

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/syssam/weave/compiler/gen"
	"github.com/syssam/weave/compiler/load"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	Target      string
	Package     string
	Tables      string
	Incremental bool
	Workers     int
}

// options converts the flags into generator options.
func (o *GenerateOptions) options(log *slog.Logger) []gen.Option {
	opts := []gen.Option{
		gen.WithTarget(o.Target),
		gen.WithIncremental(o.Incremental),
		gen.WithWorkers(o.Workers),
		gen.WithLogger(log),
	}
	if o.Package != "" {
		opts = append(opts, gen.WithPackage(o.Package))
	}
	if o.Tables != "" {
		opts = append(opts, gen.WithTables(o.Tables))
	}
	return opts
}

// addFlags registers the generator flags on cmd.
func (o *GenerateOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Target, "target", "o", "./model", "output directory of generated files")
	cmd.Flags().StringVar(&o.Package, "package", "", "package name of generated files (default: the document's, or model)")
	cmd.Flags().StringVar(&o.Tables, "tables", "", "glob pattern selecting the tables to generate")
	cmd.Flags().BoolVar(&o.Incremental, "incremental", false, "skip files whose content did not change")
	cmd.Flags().IntVar(&o.Workers, "workers", runtime.GOMAXPROCS(0), "number of tables generated in parallel")
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <schema>",
		Short: "Generate model code from table definitions",
		Long: `Generate one Go file per table of the definition file or directory.

Definitions may be written in YAML, JSON or CUE. A directory is read in
lexical order and every definition file directly under it is loaded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := rootOpts.Logger(cmd.ErrOrStderr())
			report, err := runGenerate(cmd.Context(), opts, args[0], log)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}
	opts.addFlags(cmd)

	return cmd
}

func runGenerate(ctx context.Context, opts *GenerateOptions, path string, log *slog.Logger) (*gen.Report, error) {
	c, err := newConfig(opts.options(log)...)
	if err != nil {
		return nil, err
	}
	doc, err := load.Load(path)
	if err != nil {
		return nil, classify("load schema", err)
	}
	g, err := gen.NewGraph(c, doc)
	if err != nil {
		return nil, classify("build graph", err)
	}
	report, err := gen.NewGenerator(g).Generate(ctx)
	if err != nil {
		return nil, classify("generate", err)
	}
	return report, nil
}

// newConfig applies every option and reports all flag errors at once.
func newConfig(opts ...gen.Option) (*gen.Config, error) {
	c, err := gen.NewConfig()
	if err != nil {
		return nil, err
	}
	if err := c.ApplyAll(opts...); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid flags", err)
	}
	return c, nil
}
