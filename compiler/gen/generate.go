package gen

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/weave/compiler/load"
)

// Report summarizes a generation run.
type Report struct {
	RunID   string
	Written []string
	Skipped []string
	Removed []string
}

// Generator runs the per-table generation passes of a graph.
type Generator struct {
	graph   *Graph
	builder *ClassBuilder
	log     *slog.Logger
}

// NewGenerator returns a generator for g.
func NewGenerator(g *Graph) *Generator {
	return &Generator{
		graph:   g,
		builder: &ClassBuilder{Package: g.Package, Header: g.Header},
		log:     g.logger(),
	}
}

// Generate runs one pass per table, in parallel, and writes the results.
// Nothing is written unless every table renders successfully.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	if g.graph.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	runID := newRunID()
	log := g.log.With(slog.String("run_id", runID))

	outputs := make([]*output, len(g.graph.Nodes))
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(max(g.graph.Workers, 1))
	for i, n := range g.graph.Nodes {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := g.pass(log, n)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return g.write(log, runID, outputs)
}

// pass generates the file of one table: augmentation, then every hook
// point, then assembly.
func (g *Generator) pass(log *slog.Logger, n *Node) (*output, error) {
	start := time.Now()
	table := n.Table.Name
	log.Debug("generating table", slog.String("table", table), slog.Any("behaviors", n.BehaviorNames()))
	if err := n.Augment(); err != nil {
		return nil, NewGenerationError(PhaseAugment, table, "", "augment schema", err)
	}
	contribs, err := Collect(n)
	if err != nil {
		return nil, NewGenerationError(PhaseContribute, table, "", "collect contributions", err)
	}
	out, err := render(table, n.Filename(), g.builder.Build(n, contribs))
	if err != nil {
		return nil, err
	}
	log.Debug("generated table",
		slog.String("table", table),
		slog.String("file", out.name),
		slog.Int("columns", n.Table.NumColumns()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

func (g *Generator) write(log *slog.Logger, runID string, outputs []*output) (*Report, error) {
	dir := g.graph.Target
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, NewGenerationError(PhaseWrite, "", "", "create output directory", err)
	}
	prev, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	next := newManifest(runID)
	next.Generated = time.Now().UTC()
	report := &Report{RunID: runID}
	for _, out := range outputs {
		next.Files[out.name] = digest(out.content)
		if g.graph.Incremental && prev.Unchanged(out.name, out.content) && out.exists(dir) {
			log.Debug("file unchanged", slog.String("table", out.table), slog.String("file", out.name))
			report.Skipped = append(report.Skipped, out.name)
			continue
		}
		if err := out.write(dir); err != nil {
			return nil, err
		}
		report.Written = append(report.Written, out.name)
	}
	// Files of tables that left the selection are removed only when the
	// run covers every table.
	if g.graph.Tables == nil {
		for _, name := range slices.Sorted(maps.Keys(prev.Files)) {
			if _, ok := next.Files[name]; ok {
				continue
			}
			if err := remove(dir, name); err != nil {
				return nil, err
			}
			report.Removed = append(report.Removed, name)
		}
	} else {
		for name, d := range prev.Files {
			if _, ok := next.Files[name]; !ok {
				next.Files[name] = d
			}
		}
	}
	if err := next.Write(dir); err != nil {
		return nil, err
	}
	log.Info("generation finished",
		slog.Int("written", len(report.Written)),
		slog.Int("skipped", len(report.Skipped)),
		slog.Int("removed", len(report.Removed)),
	)
	return report, nil
}

// Generate builds the graph of doc with opts and runs the generator.
func Generate(ctx context.Context, doc *load.Document, opts ...Option) (*Report, error) {
	c, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	g, err := NewGraph(c, doc)
	if err != nil {
		return nil, err
	}
	return NewGenerator(g).Generate(ctx)
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// String implements the fmt.Stringer interface.
func (r *Report) String() string {
	return fmt.Sprintf("%d written, %d unchanged, %d removed", len(r.Written), len(r.Skipped), len(r.Removed))
}
